package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the academy backend.
type Metrics struct {
	registry *prometheus.Registry

	InvoicesRendered     *prometheus.CounterVec
	InvoiceRenderSeconds prometheus.Histogram
	SubscriptionsCreated prometheus.Counter
	FilesUploaded        prometheus.Counter
	SubscriptionsExpired prometheus.Counter
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		InvoicesRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "academy_invoices_rendered_total",
				Help: "Invoice renders by result",
			},
			[]string{"result"},
		),
		InvoiceRenderSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "academy_invoice_render_seconds",
				Help:    "Time spent rendering an invoice PDF",
				Buckets: prometheus.DefBuckets,
			},
		),
		SubscriptionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "academy_subscriptions_created_total",
				Help: "Subscriptions created with their initial payment",
			},
		),
		FilesUploaded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "academy_files_uploaded_total",
				Help: "Player files uploaded",
			},
		),
		SubscriptionsExpired: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "academy_subscriptions_expired_total",
				Help: "Subscriptions moved to expired by the scheduler",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.InvoicesRendered,
		m.InvoiceRenderSeconds,
		m.SubscriptionsCreated,
		m.FilesUploaded,
		m.SubscriptionsExpired,
	)
	return m
}

// ObserveRender records one invoice render.
func (m *Metrics) ObserveRender(start time.Time, result string) {
	m.InvoicesRendered.WithLabelValues(result).Inc()
	m.InvoiceRenderSeconds.Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
