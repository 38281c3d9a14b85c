package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	calls []time.Time
	err   error
}

func (f *fakeExpirer) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	f.calls = append(f.calls, now)
	return 3, f.err
}

func TestSchedulerRegistersJobs(t *testing.T) {
	s, err := NewScheduler(testutil.NewDB(t), &fakeExpirer{}, 30)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)

	s.Start()
	s.Stop()
}

func TestExpireSubscriptionsUsesClock(t *testing.T) {
	expirer := &fakeExpirer{}
	s, err := NewScheduler(testutil.NewDB(t), expirer, 30)
	require.NoError(t, err)
	now := time.Date(2024, 4, 10, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.ExpireSubscriptions(context.Background())
	expirer.err = errors.New("db down")
	s.ExpireSubscriptions(context.Background())

	assert.Equal(t, []time.Time{now, now}, expirer.calls)
}

func TestCleanupLogsHonoursRetention(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, age := range []int{2, 10} {
		require.NoError(t, db.Create(&models.SystemLog{
			ID:        uuid.New(),
			Timestamp: now.AddDate(0, 0, -age),
			Level:     "ERROR",
		}).Error)
	}

	s, err := NewScheduler(db, &fakeExpirer{}, 7)
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	s.CleanupLogs(context.Background())

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
