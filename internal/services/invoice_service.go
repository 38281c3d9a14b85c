package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/invoice"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/metrics"
)

type InvoiceService struct {
	renderer *invoice.Renderer
	metrics  *metrics.Metrics
}

func NewInvoiceService(renderer *invoice.Renderer, m *metrics.Metrics) *InvoiceService {
	return &InvoiceService{renderer: renderer, metrics: m}
}

// Render produces the invoice document of a payment.
func (s *InvoiceService) Render(ctx context.Context, paymentID uint) (*invoice.Document, error) {
	start := time.Now()
	doc, err := s.renderer.Render(ctx, paymentID)
	switch {
	case err == nil:
		s.metrics.ObserveRender(start, "ok")
	case errors.Is(err, invoice.ErrNotFound):
		s.metrics.ObserveRender(start, "not_found")
		slog.Warn("invoice render: missing record", "payment_id", paymentID, "error", err)
	default:
		s.metrics.ObserveRender(start, "error")
		slog.Error("invoice render failed", "payment_id", paymentID, "error", err)
	}
	return doc, err
}
