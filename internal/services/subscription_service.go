package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/invoice"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionService struct {
	db      *gorm.DB
	billing *repository.Billing
	issuer  *invoice.Issuer
	metrics *metrics.Metrics
}

func NewSubscriptionService(db *gorm.DB, billing *repository.Billing, issuer *invoice.Issuer, m *metrics.Metrics) *SubscriptionService {
	return &SubscriptionService{db: db, billing: billing, issuer: issuer, metrics: m}
}

// List returns every subscription with the name of its player. Subscriptions
// whose player was deleted are listed with an empty name.
func (s *SubscriptionService) List(ctx context.Context) ([]dto.SubscriptionResponse, error) {
	var subs []models.Subscription
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&subs).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.PlayerID)
	}

	names := make(map[uint]string, len(ids))
	if len(ids) > 0 {
		var players []models.Player
		if err := s.db.WithContext(ctx).Select("id", "full_name").Where("id IN ?", ids).Find(&players).Error; err != nil {
			return nil, err
		}
		for _, p := range players {
			names[p.ID] = p.FullName
		}
	}

	result := make([]dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		resp := dto.NewSubscriptionResponse(&subs[i])
		resp.PlayerName = names[subs[i].PlayerID]
		result = append(result, resp)
	}
	return result, nil
}

// Create stores a subscription together with its initial payment.
func (s *SubscriptionService) Create(ctx context.Context, userID uint, req *dto.CreateSubscriptionRequest) (*models.Subscription, *models.Payment, error) {
	amount, err := invoice.ParseAmount(req.Amount)
	if err != nil {
		return nil, nil, err
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, nil, err
	}
	if req.PlayerID == 0 {
		return nil, nil, fmt.Errorf("%w: player_id is required", invoice.ErrValidation)
	}

	if _, err := s.billing.GetPlayer(ctx, req.PlayerID); err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			return nil, nil, ErrPlayerNotFound
		}
		return nil, nil, err
	}

	sub := &models.Subscription{
		PlayerID:  req.PlayerID,
		Type:      strings.TrimSpace(req.Type),
		Amount:    amount.InexactFloat64(),
		StartDate: start,
		EndDate:   end,
		Status:    req.Status,
	}

	payment, err := s.issuer.Issue(ctx, sub)
	if err != nil {
		return nil, nil, err
	}

	s.metrics.SubscriptionsCreated.Inc()
	recordAuditBestEffort(s.db.WithContext(ctx), userID,
		fmt.Sprintf("Created subscription %d (%s)", sub.ID, payment.InvoiceNumber))
	return sub, payment, nil
}

// Delete removes a subscription and its payments.
func (s *SubscriptionService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		if err := tx.First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubscriptionNotFound
			}
			return err
		}
		if err := tx.Where("subscription_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return fmt.Errorf("failed to delete payments: %w", err)
		}
		if err := tx.Delete(&sub).Error; err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
		return recordAudit(tx, userID, fmt.Sprintf("Deleted subscription %d", id))
	})
}

func (s *SubscriptionService) Payments(ctx context.Context, id uint) ([]models.Payment, error) {
	if _, err := s.billing.GetSubscription(ctx, id); err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return s.billing.ListPayments(ctx, id)
}

// ExpireOverdue marks active subscriptions that ended before today as expired.
func (s *SubscriptionService) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	result := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionActive, today).
		Update("status", models.SubscriptionExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		s.metrics.SubscriptionsExpired.Add(float64(result.RowsAffected))
	}
	return result.RowsAffected, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and keeps the date.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", invoice.ErrValidation, field)
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", invoice.ErrValidation, field)
}
