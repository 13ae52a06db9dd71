package provider

import (
	"fmt"
	"strings"
)

// UnknownProviderError is returned by the registry when asked to construct a
// capability/name pair that was never registered. It is recoverable: callers
// may fall back to a default binding or surface an operator-facing error.
type UnknownProviderError struct {
	// Capability is the capability family that was requested.
	Capability Capability
	// Name is the provider name that had no registration.
	Name string
	// Registered lists the names actually registered for the capability,
	// sorted, for diagnostics.
	Registered []string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	registered := "none"
	if len(e.Registered) > 0 {
		registered = strings.Join(e.Registered, ", ")
	}
	return fmt.Sprintf("provider: unknown %s provider %q — registered: %s", e.Capability, e.Name, registered)
}
