// Package repository implements the invoice data access on top of GORM.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/invoice"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"gorm.io/gorm"
)

// Billing reads and writes players, subscriptions and payments.
type Billing struct {
	db *gorm.DB
}

var _ invoice.Store = (*Billing)(nil)

func NewBilling(db *gorm.DB) *Billing {
	return &Billing{db: db}
}

func (b *Billing) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := b.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &payment, nil
}

func (b *Billing) GetSubscription(ctx context.Context, id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := b.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

func (b *Billing) GetPlayer(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	if err := b.db.WithContext(ctx).First(&player, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &player, nil
}

func (b *Billing) CreateSubscriptionWithPayment(ctx context.Context, sub *models.Subscription, newPayment func(*models.Subscription) *models.Payment) (*models.Payment, error) {
	var payment *models.Payment
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("insert subscription: %w", err)
		}
		payment = newPayment(sub)
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return nil
	})
	if err != nil {
		sub.ID = 0
		return nil, err
	}
	return payment, nil
}

// ListPayments returns the payments of one subscription, oldest first.
func (b *Billing) ListPayments(ctx context.Context, subscriptionID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := b.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("payment_date ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invoice.ErrNotFound
	}
	return err
}
