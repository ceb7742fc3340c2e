// Package metrics holds the Prometheus collectors for the site.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	global *Metrics
	once   sync.Once
)

// Metrics holds Prometheus metrics for the portfolio server.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	LightboxTransitions *prometheus.CounterVec
	SectionChanges      *prometheus.CounterVec

	ContactSubmissions *prometheus.CounterVec
	AnimationLoads     *prometheus.CounterVec
}

// New returns the process-wide metrics, registering them on first use.
//
// Metrics:
//   - portfolio_http_requests_total{method,route,status}
//   - portfolio_http_request_duration_seconds{method,route}
//   - portfolio_lightbox_transitions_total{action}
//   - portfolio_active_section_changes_total{section}
//   - portfolio_contact_submissions_total{result}
//   - portfolio_animation_loads_total{result}
func New() *Metrics {
	once.Do(func() {
		global = &Metrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_http_requests_total",
					Help: "Total HTTP requests by method, route pattern and status",
				},
				[]string{"method", "route", "status"},
			),
			RequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "portfolio_http_request_duration_seconds",
					Help:    "HTTP request latency by method and route pattern",
					Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
				},
				[]string{"method", "route"},
			),
			LightboxTransitions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_lightbox_transitions_total",
					Help: "Lightbox actions applied by visitors",
				},
				[]string{"action"},
			),
			SectionChanges: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_active_section_changes_total",
					Help: "Times a section became the active navigation section",
				},
				[]string{"section"},
			),
			ContactSubmissions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_contact_submissions_total",
					Help: "Contact form submissions by result (ok, invalid, error)",
				},
				[]string{"result"},
			),
			AnimationLoads: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portfolio_animation_loads_total",
					Help: "Animation JSON loads by result (hit, loaded, error)",
				},
				[]string{"result"},
			),
		}
	})
	return global
}
