// Package provider — metrics.go registers the Prometheus metrics owned by
// the provider registry.
package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Factory outcome label values.
const (
	// outcomeOK marks a successful constructor lookup.
	outcomeOK = "ok"
	// outcomeUnknown marks a lookup for an unregistered provider name.
	outcomeUnknown = "unknown_provider"
)

// registryMetrics holds the Prometheus metrics owned by a Registry. Each
// Registry carries its own instance so that tests can inject a fresh
// prometheus.Registry without polluting the default one.
type registryMetrics struct {
	// createsTotal counts factory create calls, partitioned by capability,
	// requested provider name, and outcome.
	createsTotal *prometheus.CounterVec
}

// newRegistryMetrics registers the registry metrics against reg and returns
// the populated registryMetrics. promauto.With(reg) is used so each call
// registers into the provided registry rather than the global default.
func newRegistryMetrics(reg prometheus.Registerer) *registryMetrics {
	factory := promauto.With(reg)

	return &registryMetrics{
		createsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "provider",
			Name:      "creates_total",
			Help:      "Total number of provider factory create calls, partitioned by capability, provider name, and outcome.",
		}, []string{"capability", "provider", "outcome"}),
	}
}
