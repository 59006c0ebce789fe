package engine

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/circuitgo/internal/registry"
)

var (
	ErrBlockAlreadyRegistered = registry.ErrAlreadyRegistered
	ErrUnknownBlockType       = errors.New("unknown block type")
	ErrGraphNotFound          = errors.New("graph not found")
	ErrBlockTypeNotFound      = errors.New("block type not found")
	ErrBlockPanic             = errors.New("block panicked")
)

// ExecutionError wraps a block failure with the id of the node that failed.
// The cause is preserved for errors.Is and errors.As.
type ExecutionError struct {
	NodeID string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("node '%s': %v", e.NodeID, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
