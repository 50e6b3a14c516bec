package watch

import (
	"fmt"
)

// ErrInvalidRegistration occurs when a watch registration doesn't validate.
type ErrInvalidRegistration struct {
	Message string
}

func (e ErrInvalidRegistration) Error() string {
	return fmt.Sprintf("Registration doesn't validate. Validation error: %s", e.Message)
}

// ErrRegistryDestroyed occurs when a registration is attempted after teardown.
type ErrRegistryDestroyed struct{}

func (e ErrRegistryDestroyed) Error() string {
	return "Registry is destroyed. Create a new registry to register watches."
}
