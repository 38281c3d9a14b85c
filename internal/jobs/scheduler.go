// Package jobs runs the periodic maintenance tasks of the server.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/logging"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	LogCleanupSchedule = "@daily"
	ExpirySchedule     = "@hourly"
)

// SubscriptionExpirer marks overdue subscriptions as expired.
type SubscriptionExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type Scheduler struct {
	cron          *cron.Cron
	db            *gorm.DB
	subscriptions SubscriptionExpirer
	retentionDays int
	now           func() time.Time
}

func NewScheduler(db *gorm.DB, subscriptions SubscriptionExpirer, retentionDays int) (*Scheduler, error) {
	s := &Scheduler{
		cron:          cron.New(cron.WithLocation(time.UTC)),
		db:            db,
		subscriptions: subscriptions,
		retentionDays: retentionDays,
		now:           func() time.Time { return time.Now().UTC() },
	}

	if _, err := s.cron.AddFunc(LogCleanupSchedule, func() { s.CleanupLogs(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule log cleanup: %w", err)
	}
	if _, err := s.cron.AddFunc(ExpirySchedule, func() { s.ExpireSubscriptions(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule subscription expiry: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "log_cleanup", LogCleanupSchedule, "expiry", ExpirySchedule)
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) CleanupLogs(ctx context.Context) {
	deleted, err := logging.Cleanup(ctx, s.db, s.now(), s.retentionDays)
	if err != nil {
		slog.Error("log cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("log cleanup completed", "deleted", deleted)
	}
}

func (s *Scheduler) ExpireSubscriptions(ctx context.Context) {
	expired, err := s.subscriptions.ExpireOverdue(ctx, s.now())
	if err != nil {
		slog.Error("subscription expiry failed", "error", err)
		return
	}
	if expired > 0 {
		slog.Info("subscriptions expired", "count", expired)
	}
}
