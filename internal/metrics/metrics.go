// Package metrics exposes the scan pipeline counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dealscan"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics methods are no-ops on a nil receiver.
type Metrics struct {
	scans         *prometheus.CounterVec
	storeFetches  *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	results       prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Finished scans by terminal status.",
		}, []string{"status"}),
		storeFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_fetch_total",
			Help:      "Store fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_fetch_duration_seconds",
			Help:      "Time spent fetching the listings of one store.",
			Buckets:   prometheus.DefBuckets,
		}),
		results: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_results_total",
			Help:      "Listings stored across all scans.",
		}),
	}

	reg.MustRegister(m.scans, m.storeFetches, m.fetchDuration, m.results)

	return m
}

func (m *Metrics) StoreFetched(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.storeFetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ScanFinished(status string, results int) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(status).Inc()
	m.results.Add(float64(results))
}
