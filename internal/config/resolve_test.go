package config

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// setBaselineEnv sets the minimum environment a resolution pass needs: the
// unconditional infrastructure requirements plus the default opensearch
// endpoint. Tests override or clear individual keys on top of this.
func setBaselineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("S3_BUCKET_NAME", "clinical-docs")
	t.Setenv("OPENSEARCH_ENDPOINT", "https://search.internal.example.com")
}

// setDatabricksEnv sets every required Databricks field.
func setDatabricksEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABRICKS_WORKSPACE_URL", "https://adb-123.azuredatabricks.net")
	t.Setenv("DATABRICKS_TOKEN", "dapi-test")
	t.Setenv("DATABRICKS_CLUSTER_ID", "0101-120000-abcde123")
	t.Setenv("DATABRICKS_MODEL_ENDPOINT", "clinical-summarizer")
	t.Setenv("DATABRICKS_VECTOR_ENDPOINT", "clinical-vectors")
}

func TestResolveFromEnvDefaults(t *testing.T) {
	setBaselineEnv(t)

	snap, err := resolveFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Environment != EnvDevelopment {
		t.Errorf("expected development environment, got %q", snap.Environment)
	}
	if snap.AIProvider != AIBedrock {
		t.Errorf("expected default ai provider bedrock, got %q", snap.AIProvider)
	}
	if snap.SearchProvider != SearchOpenSearch || snap.VectorProvider != SearchOpenSearch {
		t.Errorf("expected opensearch defaults, got search=%q vector=%q", snap.SearchProvider, snap.VectorProvider)
	}

	// Activation: bedrock + opensearch on, databricks off.
	if snap.Bedrock == nil {
		t.Error("expected bedrock sub-config to be active")
	}
	if snap.OpenSearch == nil {
		t.Error("expected opensearch sub-config to be active")
	}
	if snap.Databricks != nil {
		t.Error("expected databricks sub-config to be absent")
	}

	// Defaults flow through.
	if snap.Bedrock.Region != "us-east-1" {
		t.Errorf("expected bedrock region default, got %q", snap.Bedrock.Region)
	}
	if snap.OpenSearch.IndexName != "clinical-documents" {
		t.Errorf("expected index default, got %q", snap.OpenSearch.IndexName)
	}
	if snap.SearchTimeout != 30*time.Second || snap.AITimeout != 60*time.Second {
		t.Errorf("expected timeout defaults, got search=%s ai=%s", snap.SearchTimeout, snap.AITimeout)
	}
	if snap.AuditRetentionDays != 2555 {
		t.Errorf("expected 7-year audit retention default, got %d", snap.AuditRetentionDays)
	}
	if !snap.EnableDataMasking || !snap.RequireMFA {
		t.Error("expected masking and MFA enabled by default")
	}
	if snap.Security.Algorithm != "HS256" || snap.Security.AccessTokenExpiry != 30*time.Minute {
		t.Errorf("unexpected security defaults: %+v", snap.Security)
	}
	if snap.Delta.CatalogName != "clinical_portal" || snap.Delta.AuditTable != "audit_log" {
		t.Errorf("unexpected delta defaults: %+v", snap.Delta)
	}
	if snap.Redis.Host != "localhost" || snap.Redis.TTL != time.Hour {
		t.Errorf("unexpected redis defaults: %+v", snap.Redis)
	}
}

func TestResolveFromEnvDatabricksSharedAcrossCapabilities(t *testing.T) {
	setBaselineEnv(t)
	setDatabricksEnv(t)
	t.Setenv("AI_PROVIDER", "databricks")
	t.Setenv("SEARCH_PROVIDER", "databricks_vector")
	t.Setenv("VECTOR_PROVIDER", "databricks_vector")

	snap, err := resolveFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One backend serving all three capabilities: its sub-config is
	// constructed exactly once, and unselected families stay nil.
	if snap.Databricks == nil {
		t.Fatal("expected databricks sub-config to be active")
	}
	if snap.Bedrock != nil {
		t.Error("expected bedrock sub-config to be absent")
	}
	if snap.OpenSearch != nil {
		t.Error("expected opensearch sub-config to be absent")
	}
	if snap.Databricks.WorkspaceURL != "https://adb-123.azuredatabricks.net" {
		t.Errorf("unexpected workspace url %q", snap.Databricks.WorkspaceURL)
	}
}

func TestResolveFromEnvMixedSelectors(t *testing.T) {
	setBaselineEnv(t)
	setDatabricksEnv(t)
	t.Setenv("AI_PROVIDER", "bedrock")
	t.Setenv("SEARCH_PROVIDER", "databricks_vector")
	t.Setenv("VECTOR_PROVIDER", "opensearch")

	snap, err := resolveFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Bedrock == nil || snap.Databricks == nil || snap.OpenSearch == nil {
		t.Errorf("expected all three backend families active, got bedrock=%v databricks=%v opensearch=%v",
			snap.Bedrock != nil, snap.Databricks != nil, snap.OpenSearch != nil)
	}
}

func TestResolveFromEnvMissingRequired(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T)
		wantBackend string
		wantField   string
	}{
		{
			name: "databricks workspace url",
			setup: func(t *testing.T) {
				setBaselineEnv(t)
				setDatabricksEnv(t)
				t.Setenv("AI_PROVIDER", "databricks")
				t.Setenv("DATABRICKS_WORKSPACE_URL", "")
			},
			wantBackend: "databricks",
			wantField:   "DATABRICKS_WORKSPACE_URL",
		},
		{
			name: "databricks token",
			setup: func(t *testing.T) {
				setBaselineEnv(t)
				setDatabricksEnv(t)
				t.Setenv("SEARCH_PROVIDER", "databricks_vector")
				t.Setenv("DATABRICKS_TOKEN", "")
			},
			wantBackend: "databricks",
			wantField:   "DATABRICKS_TOKEN",
		},
		{
			name: "opensearch endpoint",
			setup: func(t *testing.T) {
				setBaselineEnv(t)
				t.Setenv("OPENSEARCH_ENDPOINT", "")
			},
			wantBackend: "opensearch",
			wantField:   "OPENSEARCH_ENDPOINT",
		},
		{
			name: "s3 bucket",
			setup: func(t *testing.T) {
				setBaselineEnv(t)
				t.Setenv("S3_BUCKET_NAME", "")
			},
			wantBackend: "s3",
			wantField:   "S3_BUCKET_NAME",
		},
		{
			name: "secret key",
			setup: func(t *testing.T) {
				setBaselineEnv(t)
				t.Setenv("SECRET_KEY", "")
			},
			wantBackend: "security",
			wantField:   "SECRET_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			snap, err := resolveFromEnv()
			if snap != nil {
				t.Error("expected no partial snapshot on validation failure")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
			}
			if cfgErr.Backend != tt.wantBackend {
				t.Errorf("expected backend %q, got %q", tt.wantBackend, cfgErr.Backend)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, cfgErr.Field)
			}
		})
	}
}

func TestResolveFromEnvInvalidSelectors(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantField string
	}{
		{"unknown environment", "ENVIRONMENT", "qa", "ENVIRONMENT"},
		{"unknown ai provider", "AI_PROVIDER", "cohere", "AI_PROVIDER"},
		{"unknown search provider", "SEARCH_PROVIDER", "elastic", "SEARCH_PROVIDER"},
		{"unknown vector provider", "VECTOR_PROVIDER", "pinecone", "VECTOR_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaselineEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := resolveFromEnv()
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, cfgErr.Field)
			}
			if !strings.Contains(err.Error(), tt.value) {
				t.Errorf("error %q should name the offending value %q", err.Error(), tt.value)
			}
		})
	}
}

func TestResolveMemoized(t *testing.T) {
	setBaselineEnv(t)

	const callers = 16
	snapshots := make([]*Snapshot, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshots[i], errs[i] = Resolve()
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, errs[i])
		}
		if snapshots[i] != snapshots[0] {
			t.Errorf("caller %d: expected the identical snapshot instance", i)
		}
	}
}

func TestProviderSettings(t *testing.T) {
	setBaselineEnv(t)

	snap, err := resolveFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Active backend family.
	settings, ok := snap.ProviderSettings("opensearch")
	if !ok {
		t.Fatal("expected opensearch settings")
	}
	if settings["endpoint"] != "https://search.internal.example.com" {
		t.Errorf("unexpected endpoint %v", settings["endpoint"])
	}
	if settings["use_ssl"] != true {
		t.Errorf("expected use_ssl true, got %v", settings["use_ssl"])
	}

	// Inactive backend family.
	if _, ok := snap.ProviderSettings("databricks"); ok {
		t.Error("expected no settings for inactive databricks")
	}

	// Infrastructure families are always present.
	for _, family := range []string{"s3", "delta", "redis", "security"} {
		if _, ok := snap.ProviderSettings(family); !ok {
			t.Errorf("expected settings for infrastructure family %q", family)
		}
	}

	// Unknown family.
	if _, ok := snap.ProviderSettings("pinecone"); ok {
		t.Error("expected no settings for unknown family")
	}
}
