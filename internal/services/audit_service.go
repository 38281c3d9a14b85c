package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// List returns the most recent audit entries, newest first.
func (s *AuditService) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []models.AuditLog
	err := s.db.WithContext(ctx).Order("timestamp DESC, id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func recordAudit(tx *gorm.DB, userID uint, action string) error {
	return tx.Create(&models.AuditLog{UserID: userID, Action: action}).Error
}

// recordAuditBestEffort is used after a write that has already committed.
func recordAuditBestEffort(db *gorm.DB, userID uint, action string) {
	if err := recordAudit(db, userID, action); err != nil {
		slog.Error("audit log write failed", "user_id", userID, "action", action, "error", err)
	}
}
