package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// resolved memoizes the outcome of the one-time resolution pass. Both the
// snapshot and a resolution failure are cached: the environment is read
// exactly once per process, so repeated Resolve calls cannot observe a
// half-changed environment.
var (
	resolveOnce sync.Once
	resolved    *Snapshot
	resolveErr  error
)

// Resolve reads the environment and returns the process-wide configuration
// snapshot. It is idempotent and memoized: every call within one process
// returns the identical snapshot instance (or the identical error),
// regardless of call count or concurrency.
func Resolve() (*Snapshot, error) {
	resolveOnce.Do(func() {
		resolved, resolveErr = resolveFromEnv()
	})
	return resolved, resolveErr
}

// MustResolve is Resolve for startup paths where a configuration error must
// abort the process.
func MustResolve() *Snapshot {
	s, err := Resolve()
	if err != nil {
		panic(err)
	}
	return s
}

// resolveFromEnv performs the actual resolution pass: root fields first,
// then conditionally-activated backend sub-configs, then the unconditional
// infrastructure sub-configs. Any validation failure aborts with a
// ConfigurationError; there is no partial snapshot.
func resolveFromEnv() (*Snapshot, error) {
	s := &Snapshot{
		Environment: Environment(getEnvOrDefault("ENVIRONMENT", string(EnvDevelopment))),
		Debug:       getEnvBool("DEBUG", false),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "INFO"),

		AIProvider:     getEnvOrDefault("AI_PROVIDER", AIBedrock),
		SearchProvider: getEnvOrDefault("SEARCH_PROVIDER", SearchOpenSearch),
		VectorProvider: getEnvOrDefault("VECTOR_PROVIDER", SearchOpenSearch),

		APIV1Prefix:        getEnvOrDefault("API_V1_PREFIX", "/api/v1"),
		MaxRequestSize:     int64(getEnvInt("MAX_REQUEST_SIZE", 50*1024*1024)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		MaxSearchLimit:     getEnvInt("MAX_SEARCH_LIMIT", 100),

		SearchTimeout:    time.Duration(getEnvInt("SEARCH_TIMEOUT_SECONDS", 30)) * time.Second,
		AITimeout:        time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,
		DocumentCacheTTL: time.Duration(getEnvInt("DOCUMENT_CACHE_TTL", 3600)) * time.Second,

		AuditRetentionDays: getEnvInt("AUDIT_RETENTION_DAYS", 2555),
		EnableDataMasking:  getEnvBool("ENABLE_DATA_MASKING", true),
		RequireMFA:         getEnvBool("REQUIRE_MFA", true),
	}

	if err := validateSelectors(s); err != nil {
		return nil, err
	}

	// Conditionally-activated backend families. A backend selected by more
	// than one capability is constructed and validated exactly once.
	if bedrockActive(s) {
		s.Bedrock = buildBedrock()
	}
	if databricksActive(s) {
		cfg, err := buildDatabricks()
		if err != nil {
			return nil, err
		}
		s.Databricks = cfg
	}
	if opensearchActive(s) {
		cfg, err := buildOpenSearch()
		if err != nil {
			return nil, err
		}
		s.OpenSearch = cfg
	}

	// Infrastructure sub-configs are unconditional: defaults where the field
	// permits it, fatal where it does not.
	s3cfg, err := buildS3()
	if err != nil {
		return nil, err
	}
	s.S3 = *s3cfg

	s.Delta = buildDelta()
	s.Redis = buildRedis()

	sec, err := buildSecurity()
	if err != nil {
		return nil, err
	}
	s.Security = *sec

	return s, nil
}

// validateSelectors rejects out-of-enum values for the environment and the
// three provider-selector fields. Unknown names fail resolution rather than
// deferring to an UnknownProviderError at first use.
func validateSelectors(s *Snapshot) error {
	switch s.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return invalid("portal", "ENVIRONMENT",
			fmt.Sprintf("must be development, staging, or production, got %q", s.Environment))
	}
	if s.AIProvider != AIBedrock && s.AIProvider != AIDatabricks {
		return invalid("portal", "AI_PROVIDER",
			fmt.Sprintf("must be bedrock or databricks, got %q", s.AIProvider))
	}
	if s.SearchProvider != SearchOpenSearch && s.SearchProvider != SearchDatabricksVector {
		return invalid("portal", "SEARCH_PROVIDER",
			fmt.Sprintf("must be opensearch or databricks_vector, got %q", s.SearchProvider))
	}
	if s.VectorProvider != SearchOpenSearch && s.VectorProvider != SearchDatabricksVector {
		return invalid("portal", "VECTOR_PROVIDER",
			fmt.Sprintf("must be opensearch or databricks_vector, got %q", s.VectorProvider))
	}
	return nil
}

// Per-backend activation predicates. Activation is an OR across all three
// selector fields: any capability naming the backend activates its
// sub-config exactly once.

func bedrockActive(s *Snapshot) bool {
	return s.AIProvider == AIBedrock
}

func databricksActive(s *Snapshot) bool {
	return s.AIProvider == AIDatabricks ||
		s.SearchProvider == SearchDatabricksVector ||
		s.VectorProvider == SearchDatabricksVector
}

func opensearchActive(s *Snapshot) bool {
	return s.SearchProvider == SearchOpenSearch ||
		s.VectorProvider == SearchOpenSearch
}

// buildBedrock reads Bedrock settings. Every field has a safe default, so
// construction cannot fail.
func buildBedrock() *BedrockConfig {
	return &BedrockConfig{
		Region:        getEnvOrDefault("BEDROCK_REGION", "us-east-1"),
		ClaudeModelID: getEnvOrDefault("BEDROCK_CLAUDE_MODEL", "anthropic.claude-3-sonnet-20240229-v1:0"),
		TitanModelID:  getEnvOrDefault("BEDROCK_TITAN_MODEL", "amazon.titan-text-express-v1"),
		MaxTokens:     getEnvInt("BEDROCK_MAX_TOKENS", 4000),
		Temperature:   getEnvFloat("BEDROCK_TEMPERATURE", 0.1),
	}
}

// buildDatabricks reads Databricks settings. All fields are required.
func buildDatabricks() (*DatabricksConfig, error) {
	cfg := &DatabricksConfig{
		WorkspaceURL:         os.Getenv("DATABRICKS_WORKSPACE_URL"),
		Token:                os.Getenv("DATABRICKS_TOKEN"),
		ClusterID:            os.Getenv("DATABRICKS_CLUSTER_ID"),
		ModelServingEndpoint: os.Getenv("DATABRICKS_MODEL_ENDPOINT"),
		VectorSearchEndpoint: os.Getenv("DATABRICKS_VECTOR_ENDPOINT"),
	}
	for _, f := range []struct {
		key string
		val string
	}{
		{"DATABRICKS_WORKSPACE_URL", cfg.WorkspaceURL},
		{"DATABRICKS_TOKEN", cfg.Token},
		{"DATABRICKS_CLUSTER_ID", cfg.ClusterID},
		{"DATABRICKS_MODEL_ENDPOINT", cfg.ModelServingEndpoint},
		{"DATABRICKS_VECTOR_ENDPOINT", cfg.VectorSearchEndpoint},
	} {
		if f.val == "" {
			return nil, missing("databricks", f.key)
		}
	}
	return cfg, nil
}

// buildOpenSearch reads OpenSearch settings. The endpoint is required.
func buildOpenSearch() (*OpenSearchConfig, error) {
	endpoint := os.Getenv("OPENSEARCH_ENDPOINT")
	if endpoint == "" {
		return nil, missing("opensearch", "OPENSEARCH_ENDPOINT")
	}
	return &OpenSearchConfig{
		Endpoint:    endpoint,
		Region:      getEnvOrDefault("OPENSEARCH_REGION", "us-east-1"),
		IndexName:   getEnvOrDefault("OPENSEARCH_INDEX", "clinical-documents"),
		UseSSL:      getEnvBool("OPENSEARCH_USE_SSL", true),
		VerifyCerts: getEnvBool("OPENSEARCH_VERIFY_CERTS", true),
	}, nil
}

// buildS3 reads object-storage settings. The bucket name is required.
func buildS3() (*S3Config, error) {
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil, missing("s3", "S3_BUCKET_NAME")
	}
	return &S3Config{
		BucketName:      bucket,
		Region:          getEnvOrDefault("S3_REGION", "us-east-1"),
		CSRPrefix:       getEnvOrDefault("S3_CSR_PREFIX", "csr/"),
		TMFPrefix:       getEnvOrDefault("S3_TMF_PREFIX", "tmf/"),
		ProcessedPrefix: getEnvOrDefault("S3_PROCESSED_PREFIX", "processed/"),
	}, nil
}

// buildDelta reads table-catalog naming. Everything defaults.
func buildDelta() DeltaConfig {
	return DeltaConfig{
		CatalogName:    getEnvOrDefault("DELTA_CATALOG", "clinical_portal"),
		SchemaName:     getEnvOrDefault("DELTA_SCHEMA", "main"),
		DocumentsTable: getEnvOrDefault("DELTA_DOCUMENTS_TABLE", "documents"),
		ChunksTable:    getEnvOrDefault("DELTA_CHUNKS_TABLE", "document_chunks"),
		AuditTable:     getEnvOrDefault("DELTA_AUDIT_TABLE", "audit_log"),
	}
}

// buildRedis reads cache settings. Everything defaults; the password is
// optional.
func buildRedis() RedisConfig {
	return RedisConfig{
		Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
		Port:     getEnvInt("REDIS_PORT", 6379),
		DB:       getEnvInt("REDIS_DB", 0),
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 3600)) * time.Second,
	}
}

// buildSecurity reads authentication settings. The secret key is required —
// there is no acceptable default for it.
func buildSecurity() (*SecurityConfig, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, missing("security", "SECRET_KEY")
	}
	return &SecurityConfig{
		SecretKey:            secret,
		Algorithm:            getEnvOrDefault("JWT_ALGORITHM", "HS256"),
		AccessTokenExpiry:    time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTokenExpiry:   time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		CORSOrigins:          splitCSV(getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000")),
		CORSAllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
	}, nil
}

// splitCSV splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvOrDefault returns the value of the named environment variable, or
// fallback if the variable is unset or empty.
func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the integer value of the named environment variable, or
// fallback if the variable is unset, empty, or not parseable.
func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvFloat returns the float value of the named environment variable, or
// fallback if the variable is unset, empty, or not parseable.
func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvBool returns the boolean value of the named environment variable, or
// fallback if the variable is unset, empty, or not parseable.
func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
