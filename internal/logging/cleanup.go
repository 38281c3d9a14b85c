package logging

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"gorm.io/gorm"
)

// Cleanup deletes system_logs older than retentionDays and returns the count.
func Cleanup(ctx context.Context, db *gorm.DB, now time.Time, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
