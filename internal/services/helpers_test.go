package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/invoice"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const adminID uint = 1

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func newSubscriptionService(t *testing.T, now time.Time) (*SubscriptionService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	billing := repository.NewBilling(db)
	issuer := invoice.NewIssuer(billing, invoice.WithClock(func() time.Time { return now }))
	return NewSubscriptionService(db, billing, issuer, metrics.New()), db
}

func createPlayer(t *testing.T, db *gorm.DB, name string) models.Player {
	t.Helper()
	p := models.Player{FullName: name, Age: 12, Team: "U13"}
	require.NoError(t, db.Create(&p).Error)
	return p
}
