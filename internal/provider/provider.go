// Package provider defines the capability interfaces and data contracts for
// the portal's swappable search, vector-search, and AI backends, plus the
// registry/factory that binds configured provider names to implementations.
// Concrete backends (OpenSearch, Databricks, Bedrock, ...) live elsewhere and
// satisfy these interfaces; nothing in this package performs network I/O.
package provider

import "context"

// Settings is the initialization payload handed to a provider instance.
// It is the map form of the backend's configuration sub-config, produced by
// the config package's Snapshot.ProviderSettings. A backend that serves more
// than one capability receives the same settings for each role — settings
// never carry capability-specific fields.
type Settings map[string]any

// SearchProvider is the contract for full-text/semantic search backends.
// A backend must implement the full method set or not be registered at all.
// Implementations must be safe to call from multiple goroutines; whether
// concurrent calls are multiplexed efficiently is the backend's concern.
//
// Lifecycle: instances come out of the factory constructed but uninitialized.
// Callers must invoke Initialize with the backend's settings before any other
// operation; calling an operation first is a usage error and backends may
// reject it. Operation timeouts are the caller's responsibility via ctx,
// using the deadlines configured in the snapshot.
type SearchProvider interface {
	// Initialize prepares the backend (client construction, index checks)
	// from its configuration settings. It must succeed before any other
	// operation is used.
	Initialize(ctx context.Context, settings Settings) error

	// Search executes the query and returns ranked results. The response
	// echoes the filter set actually applied, after default substitution.
	// Backend errors propagate unwrapped.
	Search(ctx context.Context, query *SearchQuery) (*SearchResponse, error)

	// Suggest returns up to limit autocomplete suggestions for partial text.
	Suggest(ctx context.Context, partial string, limit int) ([]string, error)

	// HealthCheck reports backend availability. It is side-effect-free,
	// never panics, and reports transient unavailability as false rather
	// than an error, so liveness probes can poll it safely.
	HealthCheck(ctx context.Context) bool
}

// VectorProvider is the contract for vector similarity search backends.
// The same lifecycle, concurrency, and error rules as SearchProvider apply.
type VectorProvider interface {
	// Initialize prepares the backend from its configuration settings.
	Initialize(ctx context.Context, settings Settings) error

	// SimilaritySearch returns the top-limit matches for the embedding,
	// optionally constrained by backend-interpreted filters.
	SimilaritySearch(ctx context.Context, embedding []float32, filters map[string]any, limit int) ([]VectorMatch, error)

	// IndexDocument stores the document's chunks in the vector index.
	IndexDocument(ctx context.Context, documentID string, chunks []Chunk) error

	// DeleteDocument removes every chunk of the document from the index.
	DeleteDocument(ctx context.Context, documentID string) error

	// HealthCheck reports backend availability. Never errors or panics.
	HealthCheck(ctx context.Context) bool
}

// AIProvider is the contract for generative AI backends: summarization and
// embedding generation. The same lifecycle, concurrency, and error rules as
// SearchProvider apply.
type AIProvider interface {
	// Initialize prepares the backend from its configuration settings.
	Initialize(ctx context.Context, settings Settings) error

	// GenerateSummary produces a summary with citations and model
	// provenance. The provenance is always populated; the citation list is
	// non-empty when the request asked for citations.
	GenerateSummary(ctx context.Context, req *SummarizationRequest) (*SummaryResponse, error)

	// GenerateEmbeddings produces an embedding vector whose length equals
	// the model's declared dimension.
	GenerateEmbeddings(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error)

	// HealthCheck reports backend availability. Never errors or panics.
	HealthCheck(ctx context.Context) bool
}
