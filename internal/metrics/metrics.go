// Package metrics exposes Prometheus instrumentation for the matching API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

// TierUnknown labels requests rejected before their tier was known
const TierUnknown = "unknown"

// Metrics groups the collectors used by the services. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	matchRequests *prometheus.CounterVec
	matchResults  prometheus.Histogram
	cacheLookups  *prometheus.CounterVec
	savedOps      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		matchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shadematch_match_requests_total",
			Help: "Match requests by tier and outcome",
		}, []string{"tier", "outcome"}),
		matchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shadematch_match_results",
			Help:    "Number of shades returned per match request",
			Buckets: []float64{0, 1, 2, 4, 8, 12},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shadematch_cache_lookups_total",
			Help: "Recommendation cache lookups by result",
		}, []string{"result"}),
		savedOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shadematch_saved_operations_total",
			Help: "Saved foundation operations by op and outcome",
		}, []string{"op", "outcome"}),
	}

	reg.MustRegister(m.matchRequests, m.matchResults, m.cacheLookups, m.savedOps)
	return m
}

// ObserveMatch records one match request
func (m *Metrics) ObserveMatch(tier, outcome string, results int) {
	if m == nil {
		return
	}
	m.matchRequests.WithLabelValues(tier, outcome).Inc()
	if outcome == OutcomeOK || outcome == OutcomeEmpty {
		m.matchResults.Observe(float64(results))
	}
}

// CacheHit records a recommendation served from cache
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss records a recommendation computed by the matcher
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveSaved records a saved-foundation operation
func (m *Metrics) ObserveSaved(op, outcome string) {
	if m == nil {
		return
	}
	m.savedOps.WithLabelValues(op, outcome).Inc()
}
