// Package config resolves the portal's deployment configuration from
// environment variables into one immutable, process-lifetime Snapshot.
//
// The snapshot names the active AI/search/vector providers and carries the
// connection parameters each backend needs. Provider sub-configs are
// conditional: a backend's sub-config is constructed (and validated) if and
// only if at least one of the three provider selectors names that backend.
// Infrastructure sub-configs (S3, Delta, Redis, security) are always
// constructed. A missing required field fails resolution fatally — required
// fields are never defaulted silently.
//
// Environment variables:
//
//	ENVIRONMENT      = development | staging | production (default: development)
//	AI_PROVIDER      = bedrock | databricks              (default: bedrock)
//	SEARCH_PROVIDER  = opensearch | databricks_vector    (default: opensearch)
//	VECTOR_PROVIDER  = opensearch | databricks_vector    (default: opensearch)
//
// plus per-backend namespaced variables documented on each sub-config type.
package config

import "time"

// Environment names a deployment tier.
type Environment string

const (
	// EnvDevelopment is the local/dev deployment tier.
	EnvDevelopment Environment = "development"
	// EnvStaging is the pre-production deployment tier.
	EnvStaging Environment = "staging"
	// EnvProduction is the production deployment tier.
	EnvProduction Environment = "production"
)

// Provider selector values. AI backends and search/vector backends draw from
// separate enumerations; opensearch and databricks_vector may each serve both
// the search and vector capabilities.
const (
	// AIBedrock selects AWS Bedrock for the AI capability.
	AIBedrock = "bedrock"
	// AIDatabricks selects Databricks model serving for the AI capability.
	AIDatabricks = "databricks"
	// SearchOpenSearch selects AWS OpenSearch for search or vector search.
	SearchOpenSearch = "opensearch"
	// SearchDatabricksVector selects Databricks Vector Search for search or
	// vector search.
	SearchDatabricksVector = "databricks_vector"
)

// Snapshot is the root configuration record. It is constructed once at
// process start by Resolve and read-only thereafter; concurrent reads are
// always safe. Pointer-typed sub-configs are nil when their backend was not
// selected by any capability.
type Snapshot struct {
	// Environment is the deployment tier.
	Environment Environment
	// Debug enables verbose diagnostics.
	Debug bool
	// LogLevel is the minimum log severity (debug, info, warn, error).
	LogLevel string

	// AIProvider names the backend serving the AI capability.
	AIProvider string
	// SearchProvider names the backend serving full-text/semantic search.
	SearchProvider string
	// VectorProvider names the backend serving vector similarity search.
	VectorProvider string

	// APIV1Prefix is the URL prefix the API layer mounts under.
	APIV1Prefix string
	// MaxRequestSize caps inbound request bodies, in bytes.
	MaxRequestSize int64
	// RateLimitPerMinute caps per-client API request rate.
	RateLimitPerMinute int
	// MaxSearchLimit bounds the page size of a single search query.
	MaxSearchLimit int

	// SearchTimeout bounds a single search operation. Applied by the caller
	// wrapping each invocation; providers do not enforce it themselves.
	SearchTimeout time.Duration
	// AITimeout bounds a single summarization/embedding operation.
	AITimeout time.Duration
	// DocumentCacheTTL is how long cached documents stay fresh.
	DocumentCacheTTL time.Duration

	// AuditRetentionDays is how long audit records are kept (regulatory
	// default: 7 years).
	AuditRetentionDays int
	// EnableDataMasking toggles PII masking in responses.
	EnableDataMasking bool
	// RequireMFA toggles mandatory multi-factor authentication.
	RequireMFA bool

	// Bedrock is set iff the AI selector names bedrock.
	Bedrock *BedrockConfig
	// Databricks is set iff any selector names databricks/databricks_vector.
	Databricks *DatabricksConfig
	// OpenSearch is set iff the search or vector selector names opensearch.
	OpenSearch *OpenSearchConfig

	// S3, Delta, Redis, and Security are infrastructure, not swappable
	// providers, and are always present.
	S3       S3Config
	Delta    DeltaConfig
	Redis    RedisConfig
	Security SecurityConfig
}

// BedrockConfig holds AWS Bedrock settings (BEDROCK_* env vars).
type BedrockConfig struct {
	// Region is the AWS region (BEDROCK_REGION, default us-east-1).
	Region string
	// ClaudeModelID is the Claude model for summarization (BEDROCK_CLAUDE_MODEL).
	ClaudeModelID string
	// TitanModelID is the Titan model for embeddings (BEDROCK_TITAN_MODEL).
	TitanModelID string
	// MaxTokens caps generated tokens per response (BEDROCK_MAX_TOKENS).
	MaxTokens int
	// Temperature controls generation randomness (BEDROCK_TEMPERATURE).
	Temperature float64
}

// DatabricksConfig holds Databricks workspace settings (DATABRICKS_* env
// vars). Every field is required — there are no safe defaults for a
// workspace connection.
type DatabricksConfig struct {
	// WorkspaceURL is the workspace base URL (DATABRICKS_WORKSPACE_URL).
	WorkspaceURL string
	// Token is the workspace access token (DATABRICKS_TOKEN).
	Token string
	// ClusterID is the compute cluster (DATABRICKS_CLUSTER_ID).
	ClusterID string
	// ModelServingEndpoint serves summarization/embedding models
	// (DATABRICKS_MODEL_ENDPOINT).
	ModelServingEndpoint string
	// VectorSearchEndpoint serves vector similarity search
	// (DATABRICKS_VECTOR_ENDPOINT).
	VectorSearchEndpoint string
}

// OpenSearchConfig holds AWS OpenSearch settings (OPENSEARCH_* env vars).
type OpenSearchConfig struct {
	// Endpoint is the cluster endpoint (OPENSEARCH_ENDPOINT, required).
	Endpoint string
	// Region is the AWS region (OPENSEARCH_REGION, default us-east-1).
	Region string
	// IndexName is the document index (OPENSEARCH_INDEX).
	IndexName string
	// UseSSL toggles TLS (OPENSEARCH_USE_SSL, default true).
	UseSSL bool
	// VerifyCerts toggles certificate verification (OPENSEARCH_VERIFY_CERTS,
	// default true).
	VerifyCerts bool
}

// S3Config holds document object-storage settings (S3_* env vars).
type S3Config struct {
	// BucketName is the document bucket (S3_BUCKET_NAME, required).
	BucketName string
	// Region is the AWS region (S3_REGION, default us-east-1).
	Region string
	// CSRPrefix is the key prefix for CSR documents (S3_CSR_PREFIX).
	CSRPrefix string
	// TMFPrefix is the key prefix for TMF documents (S3_TMF_PREFIX).
	TMFPrefix string
	// ProcessedPrefix is the key prefix for processed output (S3_PROCESSED_PREFIX).
	ProcessedPrefix string
}

// DeltaConfig holds Delta Lake table-catalog naming (DELTA_* env vars).
type DeltaConfig struct {
	// CatalogName is the Unity catalog (DELTA_CATALOG).
	CatalogName string
	// SchemaName is the schema within the catalog (DELTA_SCHEMA).
	SchemaName string
	// DocumentsTable holds document records (DELTA_DOCUMENTS_TABLE).
	DocumentsTable string
	// ChunksTable holds document chunk records (DELTA_CHUNKS_TABLE).
	ChunksTable string
	// AuditTable holds audit log records (DELTA_AUDIT_TABLE).
	AuditTable string
}

// RedisConfig holds cache settings (REDIS_* env vars).
type RedisConfig struct {
	// Host is the Redis hostname (REDIS_HOST, default localhost).
	Host string
	// Port is the Redis port (REDIS_PORT, default 6379).
	Port int
	// DB is the logical database index (REDIS_DB, default 0).
	DB int
	// Password is optional (REDIS_PASSWORD).
	Password string
	// TTL is the default cache entry lifetime (REDIS_TTL_SECONDS).
	TTL time.Duration
}

// SecurityConfig holds authentication settings. SECRET_KEY has no default —
// a deployment without one must not start.
type SecurityConfig struct {
	// SecretKey signs access tokens (SECRET_KEY, required).
	SecretKey string
	// Algorithm is the JWT signing algorithm (JWT_ALGORITHM, default HS256).
	Algorithm string
	// AccessTokenExpiry bounds access token lifetime (ACCESS_TOKEN_EXPIRE_MINUTES).
	AccessTokenExpiry time.Duration
	// RefreshTokenExpiry bounds refresh token lifetime (REFRESH_TOKEN_EXPIRE_DAYS).
	RefreshTokenExpiry time.Duration
	// CORSOrigins lists allowed CORS origins (CORS_ORIGINS, comma-separated).
	CORSOrigins []string
	// CORSAllowCredentials toggles credentialed CORS (CORS_ALLOW_CREDENTIALS).
	CORSAllowCredentials bool
}

// ProviderSettings returns the named backend family's configuration as a
// settings map suitable for a provider's Initialize call, or false when the
// family is inactive or unknown. Families: bedrock, databricks, opensearch,
// s3, delta, redis, security.
func (s *Snapshot) ProviderSettings(family string) (map[string]any, bool) {
	switch family {
	case "bedrock":
		if s.Bedrock == nil {
			return nil, false
		}
		return map[string]any{
			"region":          s.Bedrock.Region,
			"claude_model_id": s.Bedrock.ClaudeModelID,
			"titan_model_id":  s.Bedrock.TitanModelID,
			"max_tokens":      s.Bedrock.MaxTokens,
			"temperature":     s.Bedrock.Temperature,
		}, true
	case "databricks":
		if s.Databricks == nil {
			return nil, false
		}
		return map[string]any{
			"workspace_url":          s.Databricks.WorkspaceURL,
			"token":                  s.Databricks.Token,
			"cluster_id":             s.Databricks.ClusterID,
			"model_serving_endpoint": s.Databricks.ModelServingEndpoint,
			"vector_search_endpoint": s.Databricks.VectorSearchEndpoint,
		}, true
	case "opensearch":
		if s.OpenSearch == nil {
			return nil, false
		}
		return map[string]any{
			"endpoint":     s.OpenSearch.Endpoint,
			"region":       s.OpenSearch.Region,
			"index_name":   s.OpenSearch.IndexName,
			"use_ssl":      s.OpenSearch.UseSSL,
			"verify_certs": s.OpenSearch.VerifyCerts,
		}, true
	case "s3":
		return map[string]any{
			"bucket_name":      s.S3.BucketName,
			"region":           s.S3.Region,
			"csr_prefix":       s.S3.CSRPrefix,
			"tmf_prefix":       s.S3.TMFPrefix,
			"processed_prefix": s.S3.ProcessedPrefix,
		}, true
	case "delta":
		return map[string]any{
			"catalog_name":    s.Delta.CatalogName,
			"schema_name":     s.Delta.SchemaName,
			"documents_table": s.Delta.DocumentsTable,
			"chunks_table":    s.Delta.ChunksTable,
			"audit_table":     s.Delta.AuditTable,
		}, true
	case "redis":
		return map[string]any{
			"host":        s.Redis.Host,
			"port":        s.Redis.Port,
			"db":          s.Redis.DB,
			"password":    s.Redis.Password,
			"ttl_seconds": int(s.Redis.TTL.Seconds()),
		}, true
	case "security":
		return map[string]any{
			"secret_key":                  s.Security.SecretKey,
			"algorithm":                   s.Security.Algorithm,
			"access_token_expire_minutes": int(s.Security.AccessTokenExpiry.Minutes()),
			"refresh_token_expire_days":   int(s.Security.RefreshTokenExpiry.Hours() / 24),
			"cors_origins":                s.Security.CORSOrigins,
			"cors_allow_credentials":      s.Security.CORSAllowCredentials,
		}, true
	default:
		return nil, false
	}
}
