// Package metrics exposes Prometheus counters for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// CodesGenerated counts successfully generated QR artifact pairs
	CodesGenerated prometheus.Counter

	// CodesScanned counts successfully decoded or classified payloads
	CodesScanned prometheus.Counter
}

// New creates and registers the service metrics.
func New() *Metrics {
	m := &Metrics{
		CodesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qrstudio_codes_generated_total",
			Help: "Total QR codes generated",
		}),
		CodesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qrstudio_codes_scanned_total",
			Help: "Total QR payloads scanned or classified",
		}),
	}

	prometheus.MustRegister(
		m.CodesGenerated,
		m.CodesScanned,
	)

	return m
}

// IncGenerated bumps the generated counter; safe on a nil receiver so services
// can run without metrics in tests
func (m *Metrics) IncGenerated() {
	if m == nil {
		return
	}
	m.CodesGenerated.Inc()
}

// IncScanned bumps the scanned counter
func (m *Metrics) IncScanned() {
	if m == nil {
		return
	}
	m.CodesScanned.Inc()
}

// Handler returns an http.Handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
