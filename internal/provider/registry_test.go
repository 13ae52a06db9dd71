package provider

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// stubSearch is a minimal SearchProvider for registry tests.
type stubSearch struct{ name string }

func (s *stubSearch) Initialize(ctx context.Context, settings Settings) error { return nil }
func (s *stubSearch) Search(ctx context.Context, q *SearchQuery) (*SearchResponse, error) {
	return &SearchResponse{SearchType: q.SearchType, FiltersApplied: q.Filters}, nil
}
func (s *stubSearch) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	return nil, nil
}
func (s *stubSearch) HealthCheck(ctx context.Context) bool { return true }

// stubVector is a minimal VectorProvider for registry tests.
type stubVector struct{}

func (v *stubVector) Initialize(ctx context.Context, settings Settings) error { return nil }
func (v *stubVector) SimilaritySearch(ctx context.Context, embedding []float32, filters map[string]any, limit int) ([]VectorMatch, error) {
	return nil, nil
}
func (v *stubVector) IndexDocument(ctx context.Context, documentID string, chunks []Chunk) error {
	return nil
}
func (v *stubVector) DeleteDocument(ctx context.Context, documentID string) error { return nil }
func (v *stubVector) HealthCheck(ctx context.Context) bool                        { return true }

// stubAI is a minimal AIProvider for registry tests.
type stubAI struct{}

func (a *stubAI) Initialize(ctx context.Context, settings Settings) error { return nil }
func (a *stubAI) GenerateSummary(ctx context.Context, req *SummarizationRequest) (*SummaryResponse, error) {
	return nil, nil
}
func (a *stubAI) GenerateEmbeddings(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error) {
	return nil, nil
}
func (a *stubAI) HealthCheck(ctx context.Context) bool { return false }

func TestRegistryCreateRegistered(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.RegisterSearch("opensearch", func() SearchProvider { return &stubSearch{name: "opensearch"} })
	r.RegisterVector("opensearch", func() VectorProvider { return &stubVector{} })
	r.RegisterAI("bedrock", func() AIProvider { return &stubAI{} })

	sp, err := r.NewSearch("opensearch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp == nil {
		t.Fatal("expected non-nil search provider")
	}

	vp, err := r.NewVector("opensearch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vp == nil {
		t.Fatal("expected non-nil vector provider")
	}

	ap, err := r.NewAI("bedrock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap == nil {
		t.Fatal("expected non-nil ai provider")
	}

	// Each create returns a fresh instance, not a shared one.
	sp2, err := r.NewSearch("opensearch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp == sp2 {
		t.Error("expected distinct instances from repeated creates")
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.RegisterAI("bedrock", func() AIProvider { return &stubAI{} })
	r.RegisterAI("databricks", func() AIProvider { return &stubAI{} })

	ap, err := r.NewAI("unknown-model")
	if ap != nil {
		t.Errorf("expected nil instance, got %T", ap)
	}
	if err == nil {
		t.Fatal("expected UnknownProviderError")
	}

	var unknown *UnknownProviderError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownProviderError, got %T: %v", err, err)
	}
	if unknown.Capability != CapabilityAI {
		t.Errorf("expected capability %q, got %q", CapabilityAI, unknown.Capability)
	}
	if unknown.Name != "unknown-model" {
		t.Errorf("expected name %q, got %q", "unknown-model", unknown.Name)
	}
	if want := []string{"bedrock", "databricks"}; !reflect.DeepEqual(unknown.Registered, want) {
		t.Errorf("expected registered %v, got %v", want, unknown.Registered)
	}
	for _, fragment := range []string{"unknown-model", "bedrock", "databricks", "ai"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error message %q missing %q", err.Error(), fragment)
		}
	}

	// Empty capability family mentions that nothing is registered.
	_, err = r.NewSearch("opensearch")
	if err == nil || !strings.Contains(err.Error(), "none") {
		t.Errorf("expected empty-registry message, got %v", err)
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.RegisterSearch("opensearch", func() SearchProvider { return &stubSearch{name: "production"} })
	r.RegisterSearch("opensearch", func() SearchProvider { return &stubSearch{name: "test-double"} })

	sp, err := r.NewSearch("opensearch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sp.(*stubSearch).name; got != "test-double" {
		t.Errorf("expected last registration to win, got %q", got)
	}

	if got := r.Registered(CapabilitySearch); len(got) != 1 {
		t.Errorf("expected one registered name after overwrite, got %v", got)
	}
}

func TestRegistryRegisteredSorted(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil)
	r.RegisterVector("opensearch", func() VectorProvider { return &stubVector{} })
	r.RegisterVector("databricks_vector", func() VectorProvider { return &stubVector{} })

	want := []string{"databricks_vector", "opensearch"}
	if got := r.Registered(CapabilityVector); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := r.Registered(CapabilityAI); got != nil {
		t.Errorf("expected nil for empty family, got %v", got)
	}
}

func TestRegistryMetrics(t *testing.T) {
	t.Parallel()

	promReg := prometheus.NewRegistry()
	r := NewRegistry(promReg)
	r.RegisterAI("bedrock", func() AIProvider { return &stubAI{} })

	if _, err := r.NewAI("bedrock"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.NewAI("bedrock"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.NewAI("missing"); err == nil {
		t.Fatal("expected error for unregistered name")
	}

	ok := r.metrics.createsTotal.WithLabelValues("ai", "bedrock", outcomeOK)
	if got := testutil.ToFloat64(ok); got != 2 {
		t.Errorf("expected 2 ok creates, got %g", got)
	}
	unknown := r.metrics.createsTotal.WithLabelValues("ai", "missing", outcomeUnknown)
	if got := testutil.ToFloat64(unknown); got != 1 {
		t.Errorf("expected 1 unknown create, got %g", got)
	}
}
