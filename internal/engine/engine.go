package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/graph"
	"github.com/specialistvlad/circuitgo/internal/registry"
)

// Engine owns a block registry and the graphs loaded into it.
type Engine struct {
	registry *registry.Registry
	graphs   map[string]*graph.Graph
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for load and execution events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine with an empty registry and no graphs.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: registry.New(),
		graphs:   make(map[string]*graph.Graph),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterBlock makes b available to graphs under its metadata id.
func (e *Engine) RegisterBlock(b block.Block) error {
	if err := e.registry.Register(b); err != nil {
		return err
	}
	e.logger.Debug("Registered block.", "block_type", b.Metadata().ID)
	return nil
}

// RegisterModules registers every block of each module, stopping at the
// first conflict. Blocks registered before the conflict stay registered.
func (e *Engine) RegisterModules(mods ...registry.Module) error {
	before := e.registry.Len()
	if err := e.registry.RegisterModules(mods...); err != nil {
		return err
	}
	e.logger.Debug("Registered modules.", "modules", len(mods), "blocks", e.registry.Len()-before)
	return nil
}

// LoadGraph stores a copy of g under g.ID, replacing any graph with the same
// id. If any node references an unregistered block type nothing is stored.
func (e *Engine) LoadGraph(g *graph.Graph) error {
	for _, n := range g.Nodes() {
		if !e.registry.Has(n.BlockType) {
			return fmt.Errorf("graph '%s': node '%s': %w: %s", g.ID, n.ID, ErrUnknownBlockType, n.BlockType)
		}
	}
	_, replaced := e.graphs[g.ID]
	e.graphs[g.ID] = g.Clone()
	e.logger.Debug("Loaded graph.", "graph", g.ID, "nodes", g.Len(), "replaced", replaced)
	return nil
}

// Graph returns a copy of the loaded graph with the given id.
func (e *Engine) Graph(id string) (*graph.Graph, bool) {
	g, ok := e.graphs[id]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// ListBlocks returns the registered block type ids in lexicographic order.
func (e *Engine) ListBlocks() []string {
	return e.registry.IDs()
}

// BlockMetadata describes a registered block type.
func (e *Engine) BlockMetadata(id string) (block.Metadata, bool) {
	b, ok := e.registry.Get(id)
	if !ok {
		return block.Metadata{}, false
	}
	return b.Metadata(), true
}

// ListGraphs returns the loaded graph ids in lexicographic order.
func (e *Engine) ListGraphs() []string {
	return slices.Sorted(maps.Keys(e.graphs))
}

// Validate runs every node's configuration check and reports all problems
// at once. LoadGraph and Execute never call it.
func (e *Engine) Validate(g *graph.Graph) error {
	var errs []error
	for _, n := range g.Nodes() {
		b, ok := e.registry.Get(n.BlockType)
		if !ok {
			errs = append(errs, fmt.Errorf("node '%s': %w: %s", n.ID, ErrUnknownBlockType, n.BlockType))
			continue
		}
		if err := block.Validate(b, n.Config); err != nil {
			errs = append(errs, fmt.Errorf("node '%s': %w", n.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) lookup(id string) (*graph.Graph, error) {
	g, ok := e.graphs[id]
	if !ok {
		return nil, fmt.Errorf("graph '%s': %w", id, ErrGraphNotFound)
	}
	return g, nil
}
