package orbit

import (
	"errors"
	"fmt"
)

// Causes of a rejected body table.
var (
	// ErrUnknownParent indicates a body names a parent that is not registered yet.
	ErrUnknownParent = errors.New("orbit: parent body not registered")

	// ErrDuplicateBody indicates a body ID was registered twice.
	ErrDuplicateBody = errors.New("orbit: body already registered")

	// ErrNegativeRadius indicates a negative orbital radius or sphere size.
	ErrNegativeRadius = errors.New("orbit: radius must not be negative")

	// ErrNonFinite indicates a NaN or Inf orbital parameter.
	ErrNonFinite = errors.New("orbit: parameter is NaN or Inf")

	// ErrEmptyID indicates a body without an identifier.
	ErrEmptyID = errors.New("orbit: body id is empty")

	// ErrInvalidColor indicates a colour hint that is not of the form #rrggbb.
	ErrInvalidColor = errors.New("orbit: color must be #rrggbb")

	// ErrTooDeep indicates a parent chain longer than MaxDepth.
	ErrTooDeep = errors.New("orbit: body tree too deep")
)

// ConfigError reports a malformed body table entry. It is fatal to scene
// construction.
type ConfigError struct {
	Body  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("body %q: %v", e.Body, e.Err)
	}
	return fmt.Sprintf("body %q: %s: %v", e.Body, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
