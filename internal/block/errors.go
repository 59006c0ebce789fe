package block

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/circuitgo/internal/value"
)

var (
	// ErrInvalidInput marks a block whose own input or config contract was
	// violated: a missing port or the wrong variant.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExecution marks a computation that is undefined for otherwise
	// well-formed inputs, such as division by zero.
	ErrExecution = errors.New("block execution failed")
)

// MissingInput reports an absent required input port.
func MissingInput(port string) error {
	return fmt.Errorf("%w: missing input '%s'", ErrInvalidInput, port)
}

// MissingConfig reports an absent required config key.
func MissingConfig(key string) error {
	return fmt.Errorf("%w: missing config '%s'", ErrInvalidInput, key)
}

// WrongType reports an input port holding an unexpected variant.
func WrongType(port, want string, got value.Value) error {
	return fmt.Errorf("%w: input '%s' must be a %s, got %s", ErrInvalidInput, port, want, got.Kind())
}

// WrongConfigType reports a config key holding an unexpected variant.
func WrongConfigType(key, want string, got value.Value) error {
	return fmt.Errorf("%w: config '%s' must be a %s, got %s", ErrInvalidInput, key, want, got.Kind())
}

// Failf reports a domain failure.
func Failf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExecution, fmt.Sprintf(format, args...))
}
