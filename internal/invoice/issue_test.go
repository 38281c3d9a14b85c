package invoice

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscription(playerID uint, amount float64) *models.Subscription {
	return &models.Subscription{
		PlayerID:  playerID,
		Type:      "monthly",
		Amount:    amount,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "INV-1700000000-7", Number(time.Unix(1700000000, 0), 7))
}

func TestIssueCreatesInitialPayment(t *testing.T) {
	store := newMemStore()
	store.nextSubID = 7
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	issuer := NewIssuer(store, WithClock(fixedClock(now)))

	sub := newSubscription(3, 150.00)
	payment, err := issuer.Issue(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, uint(7), sub.ID)
	assert.Equal(t, uint(7), payment.SubscriptionID)
	assert.Equal(t, 150.00, payment.PaidAmount)
	assert.Equal(t, models.PaymentMethodManual, payment.PaymentMethod)
	assert.Equal(t, now, payment.PaymentDate)
	assert.Empty(t, payment.QRCodeData)
	assert.Regexp(t, regexp.MustCompile(`^INV-\d+-7$`), payment.InvoiceNumber)
	assert.Len(t, store.payments, 1)
}

func TestIssueSameSecondNumbersDiffer(t *testing.T) {
	store := newMemStore()
	issuer := NewIssuer(store, WithClock(fixedClock(time.Unix(1700000000, 0).UTC())))

	first, err := issuer.Issue(context.Background(), newSubscription(1, 50))
	require.NoError(t, err)
	second, err := issuer.Issue(context.Background(), newSubscription(2, 75))
	require.NoError(t, err)

	assert.Equal(t, "INV-1700000000-1", first.InvoiceNumber)
	assert.Equal(t, "INV-1700000000-2", second.InvoiceNumber)
}

func TestIssueAppliesDefaults(t *testing.T) {
	issuer := NewIssuer(newMemStore())

	sub := newSubscription(1, 0)
	sub.Type = ""
	_, err := issuer.Issue(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, "Custom", sub.Type)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
}

func TestIssueValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Subscription)
	}{
		{"negative amount", func(s *models.Subscription) { s.Amount = -1 }},
		{"missing player", func(s *models.Subscription) { s.PlayerID = 0 }},
		{"missing start date", func(s *models.Subscription) { s.StartDate = time.Time{} }},
		{"end before start", func(s *models.Subscription) { s.EndDate = s.StartDate.AddDate(0, 0, -1) }},
		{"unknown status", func(s *models.Subscription) { s.Status = "cancelled" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			sub := newSubscription(1, 10)
			tt.mutate(sub)

			_, err := NewIssuer(store).Issue(context.Background(), sub)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, store.subscriptions)
			assert.Empty(t, store.payments)
		})
	}
}

func TestIssueStoreFailureLeavesNothing(t *testing.T) {
	store := newMemStore()
	store.failPayments = true

	sub := newSubscription(1, 10)
	_, err := NewIssuer(store).Issue(context.Background(), sub)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Zero(t, sub.ID)
	assert.Empty(t, store.subscriptions)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: `150`, want: "150.00"},
		{raw: `150.5`, want: "150.50"},
		{raw: `"99.99"`, want: "99.99"},
		{raw: `" 12 "`, want: "12.00"},
		{raw: `0`, want: "0.00"},
		{raw: ``, wantErr: true},
		{raw: `null`, wantErr: true},
		{raw: `"abc"`, wantErr: true},
		{raw: `true`, wantErr: true},
		{raw: `-5`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150.00", FormatAmount(150))
	assert.Equal(t, "1234567.50", FormatAmount(1234567.5))
	assert.Equal(t, "0.10", FormatAmount(0.1))
}
