package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/specialistvlad/circuitgo/internal/ctxlog"
	"github.com/specialistvlad/circuitgo/internal/engine"
	"github.com/specialistvlad/circuitgo/internal/graph"
	"github.com/specialistvlad/circuitgo/internal/hcl"
	"github.com/specialistvlad/circuitgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	config *Config
	logger *slog.Logger

	// mu serializes engine access; the engine itself is not safe for
	// concurrent use.
	mu     sync.Mutex
	engine *engine.Engine
}

// NewApp builds the logger and an engine holding the given modules, or the
// catalog selected by cfg when none are passed. Logs go to logW, results to
// outW.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger, err := NewLogger(cfg.LogLevel, cfg.LogFormat, logW)
	if err != nil {
		return nil, err
	}
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		// Keep JSON results parseable.
		printW := outW
		if cfg.Output == OutputJSON {
			printW = logW
		}
		modules = Modules(cfg, logger, printW)
	}
	eng := engine.New(engine.WithLogger(logger))
	if err := eng.RegisterModules(modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	logger.Debug("All Go modules registered.", "modules", len(modules), "blocks", len(eng.ListBlocks()))

	return &App{outW: outW, config: cfg, logger: logger, engine: eng}, nil
}

// Context attaches the app logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Engine returns the application's engine. This is primarily for testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Load reads every graph file under the configured paths and loads the
// graphs into the engine. Nothing is loaded if any graph fails.
func (a *App) Load(ctx context.Context) error {
	ctx = a.Context(ctx)
	if err := a.config.RequirePaths(); err != nil {
		return err
	}

	graphs, err := hcl.NewLoader().Load(ctx, a.config.Paths...)
	if err != nil {
		return fmt.Errorf("failed to load graphs: %w", err)
	}
	return a.loadGraphs(graphs)
}

func (a *App) loadGraphs(graphs []*graph.Graph) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Check every graph first so a bad one leaves the engine untouched.
	for _, g := range graphs {
		for _, n := range g.Nodes() {
			if _, ok := a.engine.BlockMetadata(n.BlockType); !ok {
				return fmt.Errorf("graph '%s': node '%s': %w: %s", g.ID, n.ID, engine.ErrUnknownBlockType, n.BlockType)
			}
		}
	}
	for _, g := range graphs {
		if err := a.engine.LoadGraph(g); err != nil {
			return err
		}
	}
	a.logger.Info("Graphs loaded.", "count", len(graphs))
	return nil
}

// selectGraphs returns the configured graph id, or every loaded graph.
func (a *App) selectGraphs() ([]string, error) {
	if id := a.config.GraphID; id != "" {
		if _, ok := a.engine.Graph(id); !ok {
			return nil, fmt.Errorf("graph '%s': %w", id, engine.ErrGraphNotFound)
		}
		return []string{id}, nil
	}
	ids := a.engine.ListGraphs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("no graphs found in %v", a.config.Paths)
	}
	return ids, nil
}
