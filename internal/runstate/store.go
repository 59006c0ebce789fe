package runstate

import (
	"sync"

	"github.com/specialistvlad/circuitgo/internal/value"
)

// Store keeps node state in sync.Maps so a host can read progress while an
// execution writes it.
type Store struct {
	states  sync.Map // node id -> Status
	outputs sync.Map // node id -> value.Map
	errors  sync.Map // node id -> error
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// SetStatus records a status transition.
func (s *Store) SetStatus(id string, status Status) {
	s.states.Store(id, status)
}

// Status returns the node's status, StatusPending if none was recorded.
func (s *Store) Status(id string) Status {
	st, ok := s.states.Load(id)
	if !ok {
		return StatusPending
	}
	return st.(Status)
}

// Complete records the outputs of a successful node.
func (s *Store) Complete(id string, outputs value.Map) {
	s.outputs.Store(id, outputs)
	s.SetStatus(id, StatusCompleted)
}

// Fail records a node's error.
func (s *Store) Fail(id string, err error) {
	s.errors.Store(id, err)
	s.SetStatus(id, StatusFailed)
}

// Output returns the outputs of a completed node.
func (s *Store) Output(id string) (value.Map, bool) {
	out, ok := s.outputs.Load(id)
	if !ok {
		return nil, false
	}
	return out.(value.Map), true
}

// Port returns a single output port of a completed node.
func (s *Store) Port(id, port string) (value.Value, bool) {
	out, ok := s.Output(id)
	if !ok {
		return value.Null(), false
	}
	v, ok := out[port]
	return v, ok
}

// Err returns the recorded error of a failed node.
func (s *Store) Err(id string) error {
	err, ok := s.errors.Load(id)
	if !ok {
		return nil
	}
	return err.(error)
}

// Outputs returns every recorded output keyed by node id.
func (s *Store) Outputs() map[string]value.Map {
	out := make(map[string]value.Map)
	s.outputs.Range(func(k, v any) bool {
		out[k.(string)] = v.(value.Map)
		return true
	})
	return out
}

// Errors returns every recorded error keyed by node id.
func (s *Store) Errors() map[string]error {
	out := make(map[string]error)
	s.errors.Range(func(k, v any) bool {
		out[k.(string)] = v.(error)
		return true
	})
	return out
}
