package invoice

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
)

const defaultSubscriptionType = "Custom"

// Issuer creates subscriptions together with the payment that settles them.
type Issuer struct {
	store Store
	now   func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithClock replaces the wall clock used for payment dates and invoice numbers.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(store Store, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue validates sub, persists it and records the initial payment in full.
// On success sub.ID is set and the new payment is returned.
func (i *Issuer) Issue(ctx context.Context, sub *models.Subscription) (*models.Payment, error) {
	if err := prepare(sub); err != nil {
		return nil, err
	}

	now := i.now()
	payment, err := i.store.CreateSubscriptionWithPayment(ctx, sub, func(created *models.Subscription) *models.Payment {
		return InitialPayment(created, now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return payment, nil
}

// InitialPayment is the "paid in full at creation" payment for a persisted subscription.
func InitialPayment(sub *models.Subscription, now time.Time) *models.Payment {
	return &models.Payment{
		SubscriptionID: sub.ID,
		PaidAmount:     sub.Amount,
		PaymentDate:    now,
		PaymentMethod:  models.PaymentMethodManual,
		InvoiceNumber:  Number(now, sub.ID),
		QRCodeData:     "",
	}
}

func prepare(sub *models.Subscription) error {
	if sub.PlayerID == 0 {
		return fmt.Errorf("%w: player_id is required", ErrValidation)
	}
	if math.IsNaN(sub.Amount) || math.IsInf(sub.Amount, 0) || sub.Amount < 0 {
		return fmt.Errorf("%w: amount must be a non-negative number", ErrValidation)
	}
	if sub.StartDate.IsZero() || sub.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if sub.EndDate.Before(sub.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}
	if sub.Type == "" {
		sub.Type = defaultSubscriptionType
	}
	if sub.Status == "" {
		sub.Status = models.SubscriptionActive
	}
	if !models.ValidSubscriptionStatuses[sub.Status] {
		return fmt.Errorf("%w: invalid status: %s", ErrValidation, sub.Status)
	}
	return nil
}
