package registryapi

import (
	"fmt"
	"strings"
)

// ModuleID identifies a published module as namespace/name/provider.
type ModuleID struct {
	Namespace string
	Name      string
	Provider  string
}

// InvalidIdentifierError reports a module identifier that does not split
// into exactly three non-empty segments.
type InvalidIdentifierError struct {
	Input string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid module ID: %s", e.Input)
}

// ParseModuleID splits an identifier of the form namespace/name/provider.
// Anything else fails with *InvalidIdentifierError; there is no retry or
// normalization.
func ParseModuleID(s string) (ModuleID, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return ModuleID{}, &InvalidIdentifierError{Input: s}
	}
	for _, p := range parts {
		if p == "" {
			return ModuleID{}, &InvalidIdentifierError{Input: s}
		}
	}
	return ModuleID{Namespace: parts[0], Name: parts[1], Provider: parts[2]}, nil
}

// String renders the identifier back to namespace/name/provider form.
func (id ModuleID) String() string {
	return id.Namespace + "/" + id.Name + "/" + id.Provider
}
