package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
)

type FileResponse struct {
	ID         uint   `json:"id"`
	PlayerID   uint   `json:"player_id"`
	FilePath   string `json:"file_path"`
	FileType   string `json:"file_type"`
	UploadedAt string `json:"uploaded_at"`
}

func NewFileResponse(f *models.File) FileResponse {
	return FileResponse{
		ID:         f.ID,
		PlayerID:   f.PlayerID,
		FilePath:   f.FilePath,
		FileType:   f.FileType,
		UploadedAt: f.UploadedAt.UTC().Format(time.RFC3339),
	}
}
