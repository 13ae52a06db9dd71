package config

import "fmt"

// ConfigurationError reports a missing or malformed field for an activated
// backend family during resolution. It is fatal: resolution produces either
// a complete snapshot or this error, never a partial snapshot, and the
// process is expected not to start.
type ConfigurationError struct {
	// Backend is the sub-config family the field belongs to (e.g.
	// "databricks", "security", or "portal" for root fields).
	Backend string
	// Field is the environment variable that is missing or invalid.
	Field string
	// Reason describes what is wrong with the value.
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s %s", e.Backend, e.Field, e.Reason)
}

// missing returns a ConfigurationError for a required field that is unset.
func missing(backend, field string) *ConfigurationError {
	return &ConfigurationError{Backend: backend, Field: field, Reason: "is required but not set"}
}

// invalid returns a ConfigurationError for a malformed or out-of-enum value.
func invalid(backend, field, reason string) *ConfigurationError {
	return &ConfigurationError{Backend: backend, Field: field, Reason: reason}
}
