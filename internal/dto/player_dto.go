package dto

import "github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"

type CreatePlayerRequest struct {
	FullName     string `json:"full_name"`
	Age          *int   `json:"age"`
	Position     string `json:"position"`
	Team         string `json:"team"`
	Phone        string `json:"phone"`
	ParentName   string `json:"parent_name"`
	MedicalNotes string `json:"medical_notes"`
}

// UpdatePlayerRequest leaves fields that are absent from the body unchanged.
type UpdatePlayerRequest struct {
	FullName     *string `json:"full_name"`
	Age          *int    `json:"age"`
	Position     *string `json:"position"`
	Team         *string `json:"team"`
	Phone        *string `json:"phone"`
	ParentName   *string `json:"parent_name"`
	MedicalNotes *string `json:"medical_notes"`
}

type PlayerResponse struct {
	ID           uint   `json:"id"`
	FullName     string `json:"full_name"`
	Age          int    `json:"age"`
	Position     string `json:"position"`
	Team         string `json:"team"`
	Phone        string `json:"phone"`
	ParentName   string `json:"parent_name"`
	MedicalNotes string `json:"medical_notes"`
}

func NewPlayerResponse(p *models.Player) PlayerResponse {
	return PlayerResponse{
		ID:           p.ID,
		FullName:     p.FullName,
		Age:          p.Age,
		Position:     p.Position,
		Team:         p.Team,
		Phone:        p.Phone,
		ParentName:   p.ParentName,
		MedicalNotes: p.MedicalNotes,
	}
}
