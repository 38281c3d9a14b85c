package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	db := s.db.WithContext(ctx)
	var stats dto.DashboardStats

	if err := db.Model(&models.Player{}).Count(&stats.PlayerCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionActive).
		Count(&stats.ActiveSubscriptions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(paid_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
