package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:255;not null" json:"action"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (AuditLog) TableName() string { return "audit_log" }
