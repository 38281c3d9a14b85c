package models

import "time"

// File is a document uploaded for a player. FilePath is relative to the upload root.
type File struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlayerID   uint      `gorm:"not null;index" json:"player_id"`
	FilePath   string    `gorm:"size:255;not null" json:"file_path"`
	FileType   string    `gorm:"size:50" json:"file_type"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
