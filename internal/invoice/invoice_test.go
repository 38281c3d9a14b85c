package invoice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/go-pdf/fpdf"
)

// memStore is an in-memory Store.
type memStore struct {
	mu            sync.Mutex
	players       map[uint]*models.Player
	subscriptions map[uint]*models.Subscription
	payments      map[uint]*models.Payment
	nextSubID     uint
	nextPayID     uint
	failPayments  bool
}

func newMemStore() *memStore {
	return &memStore{
		players:       map[uint]*models.Player{},
		subscriptions: map[uint]*models.Subscription{},
		payments:      map[uint]*models.Payment{},
		nextSubID:     1,
		nextPayID:     1,
	}
}

func (s *memStore) GetPayment(_ context.Context, id uint) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) GetSubscription(_ context.Context, id uint) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *memStore) GetPlayer(_ context.Context, id uint) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) CreateSubscriptionWithPayment(_ context.Context, sub *models.Subscription, newPayment func(*models.Subscription) *models.Payment) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = s.nextSubID
	payment := newPayment(sub)
	if s.failPayments {
		sub.ID = 0
		return nil, fmt.Errorf("insert payment: disk full")
	}
	for _, existing := range s.payments {
		if existing.InvoiceNumber == payment.InvoiceNumber {
			sub.ID = 0
			return nil, fmt.Errorf("duplicate invoice number %s", payment.InvoiceNumber)
		}
	}

	s.nextSubID++
	cp := *sub
	s.subscriptions[sub.ID] = &cp
	payment.ID = s.nextPayID
	s.nextPayID++
	pcp := *payment
	s.payments[payment.ID] = &pcp
	return payment, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// recordingCanvas captures the text drawn by Compose in order.
type recordingCanvas struct {
	texts  []string
	images []string
	y      float64
}

func (c *recordingCanvas) SetFont(string, string, float64) {}
func (c *recordingCanvas) SetTextColor(int, int, int)      {}
func (c *recordingCanvas) SetFillColor(int, int, int)      {}
func (c *recordingCanvas) Rect(float64, float64, float64, float64, string) {
}
func (c *recordingCanvas) SetX(float64)            {}
func (c *recordingCanvas) SetY(y float64)          { c.y = y }
func (c *recordingCanvas) SetXY(_, y float64)      { c.y = y }
func (c *recordingCanvas) GetY() float64           { return c.y }
func (c *recordingCanvas) Ln(h float64)            { c.y += h }
func (c *recordingCanvas) PageNo() int             { return 1 }
func (c *recordingCanvas) MultiCell(_, _ float64, txt, _, _ string, _ bool) {
	c.texts = append(c.texts, txt)
}
func (c *recordingCanvas) CellFormat(_, h float64, txt, _ string, ln int, _ string, _ bool, _ int, _ string) {
	c.texts = append(c.texts, txt)
	if ln > 0 {
		c.y += h
	}
}
func (c *recordingCanvas) ImageOptions(name string, _, _, _, _ float64, _ bool, _ fpdf.ImageOptions, _ int, _ string) {
	c.images = append(c.images, name)
}
