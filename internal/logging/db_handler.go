package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchSize = 50

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
type DBHandler struct {
	sink  *dbSink
	attrs []slog.Attr
}

// dbSink is shared by every handler derived through WithAttrs.
type dbSink struct {
	db       *gorm.DB
	fallback *slog.Logger
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewDBHandler(db *gorm.DB) *DBHandler {
	return newDBHandler(db, 5*time.Second)
}

func newDBHandler(db *gorm.DB, interval time.Duration) *DBHandler {
	sink := &dbSink{
		db:       db,
		fallback: slog.New(slog.NewJSONHandler(os.Stderr, nil)),
		buffer:   make([]models.SystemLog, 0, batchSize),
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go sink.flushLoop()
	return &DBHandler{sink: sink}
}

func (s *dbSink) flushLoop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *dbSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, batchSize)
	s.mu.Unlock()

	// Reporting through slog.Default would feed the failure back into this sink.
	if err := s.db.CreateInBatches(batch, batchSize).Error; err != nil {
		s.fallback.Error("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes pending records and waits for the flush loop to exit.
func (h *DBHandler) Stop() {
	h.sink.stopOnce.Do(func() {
		h.sink.ticker.Stop()
		close(h.sink.done)
	})
	<-h.sink.stopped
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time.UTC(),
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			if id, ok := uintValue(a.Value); ok {
				entry.UserID = &id
			}
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch a.Value.Kind() {
			case slog.KindFloat64:
				entry.LatencyMs = int(math.Round(a.Value.Float64()))
			case slog.KindInt64:
				entry.LatencyMs = int(a.Value.Int64())
			}
		default:
			extra[a.Key] = a.Value.Resolve().Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.mu.Lock()
	h.sink.buffer = append(h.sink.buffer, entry)
	needFlush := len(h.sink.buffer) >= batchSize
	h.sink.mu.Unlock()

	if needFlush {
		go h.sink.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{sink: h.sink, attrs: merged}
}

// WithGroup is a no-op: system_logs columns are flat.
func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}

func uintValue(v slog.Value) (uint, bool) {
	switch v.Kind() {
	case slog.KindUint64:
		return uint(v.Uint64()), true
	case slog.KindInt64:
		if v.Int64() >= 0 {
			return uint(v.Int64()), true
		}
	}
	return 0, false
}
