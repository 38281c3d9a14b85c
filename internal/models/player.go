package models

import "time"

// Player is a club member. Subscriptions and files reference it by PlayerID only;
// deleting a player leaves them in place.
type Player struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Age          int       `gorm:"not null" json:"age"`
	Position     string    `gorm:"size:50" json:"position"`
	Team         string    `gorm:"size:50" json:"team"`
	Phone        string    `gorm:"size:20" json:"phone"`
	ParentName   string    `gorm:"size:100" json:"parent_name"`
	MedicalNotes string    `gorm:"type:text" json:"medical_notes"`
	CreatedAt    time.Time `json:"created_at"`
}
