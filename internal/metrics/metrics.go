package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch and mutation outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeError        = "error"
	OutcomeDiscarded    = "discarded"
	OutcomeUnauthorized = "unauthorized"
)

var (
	once sync.Once

	resourceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "figaro",
			Name:      "resource_fetches_total",
			Help:      "Resource fetch completions by resource key and outcome.",
		},
		[]string{"resource", "outcome"},
	)

	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "figaro",
			Name:      "mutations_total",
			Help:      "Backend mutations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(resourceFetches, mutations)
	})
}

// IncFetch counts a completed fetch for a resource key.
func IncFetch(resource, outcome string) {
	resourceFetches.WithLabelValues(resource, outcome).Inc()
}

// IncMutation counts a mutation attempt.
func IncMutation(op, outcome string) {
	mutations.WithLabelValues(op, outcome).Inc()
}
