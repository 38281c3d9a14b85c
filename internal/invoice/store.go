package invoice

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
)

// Store is the data access the invoice core needs. Getters return an error
// wrapping ErrNotFound when the record does not exist.
type Store interface {
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	GetSubscription(ctx context.Context, id uint) (*models.Subscription, error)
	GetPlayer(ctx context.Context, id uint) (*models.Player, error)

	// CreateSubscriptionWithPayment inserts sub and, once its id is assigned,
	// the payment built by newPayment, in one transaction.
	CreateSubscriptionWithPayment(ctx context.Context, sub *models.Subscription, newPayment func(*models.Subscription) *models.Payment) (*models.Payment, error)
}
