package models

import "time"

const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
	SubscriptionPending = "pending"
)

// ValidSubscriptionStatuses lists all valid subscription states.
var ValidSubscriptionStatuses = map[string]bool{
	SubscriptionActive: true, SubscriptionExpired: true, SubscriptionPending: true,
}

type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlayerID  uint      `gorm:"not null;index" json:"player_id"`
	Type      string    `gorm:"size:20;not null" json:"type"` // monthly, yearly or a custom note
	Amount    float64   `gorm:"not null" json:"amount"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Status    string    `gorm:"size:20;default:'active'" json:"status"`
}
