// Package audit provides a structured audit logger for CLI command
// invocations. It logs the command name, configuration source, and sanitised
// provider environment so operators can trace which backends a process was
// pointed at without exposing secret values.
//
// Secrets are logged as presence/absence only — never their values. In a
// regulated deployment these entries feed the portal's audit trail, which is
// retained per AUDIT_RETENTION_DAYS.
package audit

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// secretEnvKeys lists environment variable names whose values must never be
// logged. Only presence ("set") or absence ("unset") is recorded.
var secretEnvKeys = map[string]bool{
	"SECRET_KEY":            true,
	"DATABRICKS_TOKEN":      true,
	"REDIS_PASSWORD":        true,
	"AWS_SECRET_ACCESS_KEY": true,
	"AWS_SESSION_TOKEN":     true,
}

// LogCommandStart emits a structured audit log entry when a CLI command
// begins. It records the command name, config file source, and the sanitised
// provider environment.
func LogCommandStart(log *slog.Logger, command string, configPath string) {
	attrs := []slog.Attr{
		slog.String("command", command),
		slog.String("config_file", sanitiseConfigPath(configPath)),
	}

	for _, entry := range auditKeys {
		val := os.Getenv(entry.key)
		if entry.secret {
			attrs = append(attrs, slog.String(entry.key, presence(val)))
		} else {
			attrs = append(attrs, slog.String(entry.key, valOrUnset(val)))
		}
	}

	log.LogAttrs(context.TODO(), slog.LevelInfo, "audit: command start", attrs...)
}

// auditEntry defines an env var to include in the audit log.
type auditEntry struct {
	// key is the environment variable name.
	key string
	// secret indicates the value should be redacted to presence/absence.
	secret bool
}

// auditKeys is the ordered list of env vars included in every audit log entry.
var auditKeys = []auditEntry{
	{"ENVIRONMENT", false},
	{"AI_PROVIDER", false},
	{"SEARCH_PROVIDER", false},
	{"VECTOR_PROVIDER", false},
	{"BEDROCK_REGION", false},
	{"BEDROCK_CLAUDE_MODEL", false},
	{"BEDROCK_TITAN_MODEL", false},
	{"DATABRICKS_WORKSPACE_URL", false},
	{"DATABRICKS_TOKEN", true},
	{"DATABRICKS_CLUSTER_ID", false},
	{"DATABRICKS_MODEL_ENDPOINT", false},
	{"DATABRICKS_VECTOR_ENDPOINT", false},
	{"OPENSEARCH_ENDPOINT", false},
	{"OPENSEARCH_REGION", false},
	{"OPENSEARCH_INDEX", false},
	{"S3_BUCKET_NAME", false},
	{"S3_REGION", false},
	{"DELTA_CATALOG", false},
	{"DELTA_SCHEMA", false},
	{"REDIS_HOST", false},
	{"REDIS_PORT", false},
	{"REDIS_PASSWORD", true},
	{"SECRET_KEY", true},
	{"LOG_LEVEL", false},
	{"LOG_FORMAT", false},
}

// SanitiseKey returns "set" or "unset" for known secret keys, or the actual
// value for non-secret keys. This is safe to use in log messages.
func SanitiseKey(key, value string) string {
	if secretEnvKeys[key] {
		return presence(value)
	}
	return valOrUnset(value)
}

// presence returns "set" if the value is non-empty, "unset" otherwise.
func presence(v string) string {
	if v != "" {
		return "set"
	}
	return "unset"
}

// valOrUnset returns the value if non-empty, "unset" otherwise.
func valOrUnset(v string) string {
	if v != "" {
		return v
	}
	return "unset"
}

// sanitiseConfigPath returns the config path or "none" if empty.
func sanitiseConfigPath(p string) string {
	if p == "" {
		return "none"
	}
	// Redact home directory for privacy in logs.
	home, err := os.UserHomeDir()
	if err == nil && strings.HasPrefix(p, home) {
		return "~" + p[len(home):]
	}
	return p
}
