package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML configuration file structure. It covers the
// non-secret subset of the environment: secrets (tokens, SECRET_KEY,
// passwords) are deliberately absent so they never land in a checked-in
// file. Values are applied as environment variables before resolution, and
// an env var that is already set always wins over the file.
//
// File search order:
//  1. --config CLI flag (explicit path)
//  2. PORTAL_CONFIG environment variable
//  3. ~/.portal/config.yaml
//  4. ./portal.yaml
type fileConfig struct {
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level"`

	Providers struct {
		AI     string `yaml:"ai"`
		Search string `yaml:"search"`
		Vector string `yaml:"vector"`
	} `yaml:"providers"`

	Bedrock struct {
		Region      string  `yaml:"region"`
		ClaudeModel string  `yaml:"claude_model"`
		TitanModel  string  `yaml:"titan_model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"bedrock"`

	Databricks struct {
		WorkspaceURL   string `yaml:"workspace_url"`
		ClusterID      string `yaml:"cluster_id"`
		ModelEndpoint  string `yaml:"model_endpoint"`
		VectorEndpoint string `yaml:"vector_endpoint"`
	} `yaml:"databricks"`

	OpenSearch struct {
		Endpoint string `yaml:"endpoint"`
		Region   string `yaml:"region"`
		Index    string `yaml:"index"`
	} `yaml:"opensearch"`

	S3 struct {
		Bucket string `yaml:"bucket"`
		Region string `yaml:"region"`
	} `yaml:"s3"`

	Redis struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"redis"`

	Timeouts struct {
		SearchSeconds int `yaml:"search_seconds"`
		AISeconds     int `yaml:"ai_seconds"`
	} `yaml:"timeouts"`
}

// envMapping maps YAML fields to their environment variable names. Only
// non-empty YAML values are applied; env vars always take precedence.
var envMapping = []struct {
	envKey string
	value  func(*fileConfig) string
}{
	{"ENVIRONMENT", func(c *fileConfig) string { return c.Environment }},
	{"DEBUG", func(c *fileConfig) string { return boolStr(c.Debug) }},
	{"LOG_LEVEL", func(c *fileConfig) string { return c.LogLevel }},
	{"AI_PROVIDER", func(c *fileConfig) string { return c.Providers.AI }},
	{"SEARCH_PROVIDER", func(c *fileConfig) string { return c.Providers.Search }},
	{"VECTOR_PROVIDER", func(c *fileConfig) string { return c.Providers.Vector }},
	{"BEDROCK_REGION", func(c *fileConfig) string { return c.Bedrock.Region }},
	{"BEDROCK_CLAUDE_MODEL", func(c *fileConfig) string { return c.Bedrock.ClaudeModel }},
	{"BEDROCK_TITAN_MODEL", func(c *fileConfig) string { return c.Bedrock.TitanModel }},
	{"BEDROCK_MAX_TOKENS", func(c *fileConfig) string { return intStr(c.Bedrock.MaxTokens) }},
	{"BEDROCK_TEMPERATURE", func(c *fileConfig) string { return floatStr(c.Bedrock.Temperature) }},
	{"DATABRICKS_WORKSPACE_URL", func(c *fileConfig) string { return c.Databricks.WorkspaceURL }},
	{"DATABRICKS_CLUSTER_ID", func(c *fileConfig) string { return c.Databricks.ClusterID }},
	{"DATABRICKS_MODEL_ENDPOINT", func(c *fileConfig) string { return c.Databricks.ModelEndpoint }},
	{"DATABRICKS_VECTOR_ENDPOINT", func(c *fileConfig) string { return c.Databricks.VectorEndpoint }},
	{"OPENSEARCH_ENDPOINT", func(c *fileConfig) string { return c.OpenSearch.Endpoint }},
	{"OPENSEARCH_REGION", func(c *fileConfig) string { return c.OpenSearch.Region }},
	{"OPENSEARCH_INDEX", func(c *fileConfig) string { return c.OpenSearch.Index }},
	{"S3_BUCKET_NAME", func(c *fileConfig) string { return c.S3.Bucket }},
	{"S3_REGION", func(c *fileConfig) string { return c.S3.Region }},
	{"REDIS_HOST", func(c *fileConfig) string { return c.Redis.Host }},
	{"REDIS_PORT", func(c *fileConfig) string { return intStr(c.Redis.Port) }},
	{"SEARCH_TIMEOUT_SECONDS", func(c *fileConfig) string { return intStr(c.Timeouts.SearchSeconds) }},
	{"AI_TIMEOUT_SECONDS", func(c *fileConfig) string { return intStr(c.Timeouts.AISeconds) }},
}

// Load reads a YAML config file and applies non-empty values as environment
// variables. Existing env vars are never overwritten (env always wins).
// Returns the path that was loaded, or empty string if no file was found.
// Call it before Resolve — values applied after resolution have no effect.
func Load(explicitPath string, log *slog.Logger) (string, error) {
	path := resolveConfigPath(explicitPath)
	if path == "" {
		log.Debug("config: no YAML config file found, using env vars only")
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	applied := 0
	for _, m := range envMapping {
		yamlVal := m.value(&cfg)
		if yamlVal == "" {
			continue
		}
		if os.Getenv(m.envKey) != "" {
			continue // env var already set — do not override
		}
		os.Setenv(m.envKey, yamlVal)
		applied++
	}

	log.Info("config: loaded YAML config",
		slog.String("path", path),
		slog.Int("keys_applied", applied),
	)

	return path, nil
}

// resolveConfigPath returns the first config file path that exists.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if envPath := os.Getenv("PORTAL_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		p := filepath.Join(home, ".portal", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if _, err := os.Stat("portal.yaml"); err == nil {
		return "portal.yaml"
	}

	return ""
}

// intStr converts an int to string, returning "" for zero values.
func intStr(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

// floatStr converts a float to string, returning "" for zero values.
func floatStr(v float64) string {
	if v == 0 {
		return ""
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}

// boolStr converts a bool to string, returning "" for false.
func boolStr(v bool) string {
	if !v {
		return ""
	}
	return "true"
}
