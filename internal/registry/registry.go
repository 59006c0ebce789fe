package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/circuitgo/internal/block"
)

// ErrAlreadyRegistered is returned when a block type id is registered twice.
var ErrAlreadyRegistered = errors.New("block type already registered")

// Module is implemented by every package that contributes blocks.
type Module interface {
	Register(r *Registry) error
}

// Registry holds the block implementations available to one engine. It
// performs no locking; registration is expected to finish before concurrent
// lookups begin.
type Registry struct {
	blocks map[string]block.Block
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{blocks: make(map[string]block.Block)}
}

// Register adds b under its metadata id.
func (r *Registry) Register(b block.Block) error {
	id := b.Metadata().ID
	if _, exists := r.blocks[id]; exists {
		return fmt.Errorf("block type '%s': %w", id, ErrAlreadyRegistered)
	}
	r.blocks[id] = b
	return nil
}

// RegisterAll registers each block in order and stops at the first failure.
func (r *Registry) RegisterAll(blocks ...block.Block) error {
	for _, b := range blocks {
		if err := r.Register(b); err != nil {
			return err
		}
	}
	return nil
}

// RegisterModules lets each module register its blocks.
func (r *Registry) RegisterModules(mods ...Module) error {
	for _, m := range mods {
		if err := m.Register(r); err != nil {
			return fmt.Errorf("registering module %T: %w", m, err)
		}
	}
	return nil
}

// Get returns the block registered under id.
func (r *Registry) Get(id string) (block.Block, bool) {
	b, ok := r.blocks[id]
	return b, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.blocks[id]
	return ok
}

// IDs returns all registered ids in lexicographic order.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.blocks))
}

// Len returns the number of registered blocks.
func (r *Registry) Len() int { return len(r.blocks) }
