package provider

import (
	"slices"

	"github.com/prometheus/client_golang/prometheus"
)

// Capability identifies one of the three swappable backend roles.
type Capability string

const (
	// CapabilitySearch is full-text/semantic document search.
	CapabilitySearch Capability = "search"
	// CapabilityVector is vector similarity search.
	CapabilityVector Capability = "vector"
	// CapabilityAI is AI summarization and embedding generation.
	CapabilityAI Capability = "ai"
)

// Registry maps (capability, provider name) to constructor functions and
// acts as the factory for provider instances.
//
// Registration is a startup-phase activity: the embedding application calls
// the Register* methods once, single-threaded, before serving traffic — there
// is no import-time auto-registration and the registry does no locking of its
// own. After startup the maps are read-only and the New* methods are safe for
// concurrent use. Re-registering a name overwrites the previous binding
// (last registration wins), which lets tests substitute doubles for
// production backends.
type Registry struct {
	search map[string]func() SearchProvider
	vector map[string]func() VectorProvider
	ai     map[string]func() AIProvider

	metrics *registryMetrics
}

// NewRegistry constructs an empty registry. When reg is non-nil, creation
// metrics are registered against it; pass nil to disable instrumentation.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		search: make(map[string]func() SearchProvider),
		vector: make(map[string]func() VectorProvider),
		ai:     make(map[string]func() AIProvider),
	}
	if reg != nil {
		r.metrics = newRegistryMetrics(reg)
	}
	return r
}

// RegisterSearch binds name to a search provider constructor.
func (r *Registry) RegisterSearch(name string, ctor func() SearchProvider) {
	r.search[name] = ctor
}

// RegisterVector binds name to a vector provider constructor.
func (r *Registry) RegisterVector(name string, ctor func() VectorProvider) {
	r.vector[name] = ctor
}

// RegisterAI binds name to an AI provider constructor.
func (r *Registry) RegisterAI(name string, ctor func() AIProvider) {
	r.ai[name] = ctor
}

// NewSearch constructs the search provider registered under name. The
// instance is constructed only — callers must Initialize it before use.
func (r *Registry) NewSearch(name string) (SearchProvider, error) {
	ctor, ok := r.search[name]
	if !ok {
		r.observe(CapabilitySearch, name, outcomeUnknown)
		return nil, &UnknownProviderError{Capability: CapabilitySearch, Name: name, Registered: r.Registered(CapabilitySearch)}
	}
	r.observe(CapabilitySearch, name, outcomeOK)
	return ctor(), nil
}

// NewVector constructs the vector provider registered under name.
func (r *Registry) NewVector(name string) (VectorProvider, error) {
	ctor, ok := r.vector[name]
	if !ok {
		r.observe(CapabilityVector, name, outcomeUnknown)
		return nil, &UnknownProviderError{Capability: CapabilityVector, Name: name, Registered: r.Registered(CapabilityVector)}
	}
	r.observe(CapabilityVector, name, outcomeOK)
	return ctor(), nil
}

// NewAI constructs the AI provider registered under name.
func (r *Registry) NewAI(name string) (AIProvider, error) {
	ctor, ok := r.ai[name]
	if !ok {
		r.observe(CapabilityAI, name, outcomeUnknown)
		return nil, &UnknownProviderError{Capability: CapabilityAI, Name: name, Registered: r.Registered(CapabilityAI)}
	}
	r.observe(CapabilityAI, name, outcomeOK)
	return ctor(), nil
}

// Registered returns the sorted provider names registered for the capability.
func (r *Registry) Registered(c Capability) []string {
	var names []string
	switch c {
	case CapabilitySearch:
		for name := range r.search {
			names = append(names, name)
		}
	case CapabilityVector:
		for name := range r.vector {
			names = append(names, name)
		}
	case CapabilityAI:
		for name := range r.ai {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// observe records a factory outcome when metrics are enabled.
func (r *Registry) observe(c Capability, name, outcome string) {
	if r.metrics != nil {
		r.metrics.createsTotal.WithLabelValues(string(c), name, outcome).Inc()
	}
}
