package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	SalesCompleted  *prometheus.CounterVec
	SalesCancelled  prometheus.Counter
	CheckoutFailed  *prometheus.CounterVec
	CouponsRejected *prometheus.CounterVec
	SaleTotalCents  prometheus.Histogram

	registry *prometheus.Registry
}

// New registers and returns the API metric collectors. Collectors live in
// their own registry so creating a second instance never double-registers.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestor",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gestor",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		SalesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestor",
			Name:      "sales_completed_total",
			Help:      "Total number of completed sales.",
		}, []string{"payment_method"}),
		SalesCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gestor",
			Name:      "sales_cancelled_total",
			Help:      "Total number of cancelled sales.",
		}),
		CheckoutFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestor",
			Name:      "checkout_failures_total",
			Help:      "Total number of failed checkouts by reason.",
		}, []string{"reason"}),
		CouponsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestor",
			Name:      "coupons_rejected_total",
			Help:      "Total number of coupon validations rejected by reason.",
		}, []string{"reason"}),
		SaleTotalCents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gestor",
			Name:      "sale_total_cents",
			Help:      "Distribution of completed sale totals in cents.",
			Buckets:   []float64{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000, 500000},
		}),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.SalesCompleted,
		m.SalesCancelled,
		m.CheckoutFailed,
		m.CouponsRejected,
		m.SaleTotalCents,
	)
	return m
}

// Handler returns the HTTP handler that exposes the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
