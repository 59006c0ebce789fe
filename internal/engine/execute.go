package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/graph"
	"github.com/specialistvlad/circuitgo/internal/runstate"
	"github.com/specialistvlad/circuitgo/internal/value"
)

// Results maps node ids to the outputs each node produced.
type Results map[string]value.Map

// ExecuteGraph executes the loaded graph with the given id.
func (e *Engine) ExecuteGraph(id string) (Results, error) {
	g, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.Execute(g)
}

// Execute runs every node of g in topological order. The first failing node
// aborts the run; its error is an *ExecutionError and no outputs are
// returned, not even those of nodes that had already completed.
func (e *Engine) Execute(g *graph.Graph) (Results, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	logger := e.logger.With("run_id", uuid.NewString(), "graph", g.ID)
	logger.Debug("Executing graph.", "nodes", len(order))

	state := runstate.New()
	for _, id := range order {
		if err := e.executeNode(logger, g, id, state); err != nil {
			logger.Error("Node execution failed, aborting run.", "node", id, "error", err)
			return nil, err
		}
	}

	logger.Info("Graph executed.", "nodes", len(order))
	return Results(state.Outputs()), nil
}

// executeNode resolves the node's inputs from state, runs its block and
// records the outcome in state.
func (e *Engine) executeNode(logger *slog.Logger, g *graph.Graph, id string, state *runstate.Store) error {
	n, ok := g.Node(id)
	if !ok {
		return fmt.Errorf("node '%s': %w", id, graph.ErrNodeNotFound)
	}
	b, ok := e.registry.Get(n.BlockType)
	if !ok {
		return fmt.Errorf("node '%s': %w: %s", id, ErrBlockTypeNotFound, n.BlockType)
	}

	ctx := block.NewContext(resolveInputs(g, id, state), n.Config.Clone())
	state.SetStatus(id, runstate.StatusRunning)
	logger.Debug("Executing node.", "node", id, "block_type", n.BlockType, "inputs", len(ctx.Inputs))

	out, err := safeExecute(b, ctx)
	if err != nil {
		execErr := &ExecutionError{NodeID: id, Err: err}
		state.Fail(id, execErr)
		return execErr
	}
	if out == nil {
		out = value.Map{}
	}
	state.Complete(id, out)
	return nil
}

// resolveInputs gathers, for every incoming connection, the producer's value
// on the connected port. Ports the producer did not emit stay absent.
func resolveInputs(g *graph.Graph, id string, state *runstate.Store) value.Map {
	inputs := make(value.Map)
	for _, c := range g.IncomingConnections(id) {
		if v, ok := state.Port(c.FromNode, c.FromPort); ok {
			inputs[c.ToPort] = v.Clone()
		}
	}
	return inputs
}

func safeExecute(b block.Block, ctx *block.ExecutionContext) (out value.Map, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBlockPanic, r)
		}
	}()
	return b.Execute(ctx)
}

// Report is the outcome of a best-effort execution. Order is the
// topological order the nodes were visited in, and Failed holds an
// *ExecutionError for every node whose block failed.
type Report struct {
	RunID   string
	GraphID string
	Order   []string
	Outputs Results
	Failed  map[string]error
	Skipped []string

	state *runstate.Store
}

// Status returns the final state of a node.
func (r *Report) Status(id string) runstate.Status {
	return r.state.Status(id)
}

// Err joins the node failures in execution order, or returns nil when every
// node completed.
func (r *Report) Err() error {
	var errs []error
	for _, id := range r.Order {
		if err, ok := r.Failed[id]; ok {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExecuteGraphBestEffort is ExecuteBestEffort for a loaded graph.
func (e *Engine) ExecuteGraphBestEffort(id string) (*Report, error) {
	g, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.ExecuteBestEffort(g)
}

// ExecuteBestEffort runs g like Execute but does not stop at a failing node.
// The failure is recorded, every node downstream of it is skipped, and
// independent branches still run. The returned error covers only problems
// that prevent scheduling, such as a cycle; node failures are in the Report.
func (e *Engine) ExecuteBestEffort(g *graph.Graph) (*Report, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID, "graph", g.ID, "mode", "best_effort")
	logger.Debug("Executing graph.", "nodes", len(order))

	state := runstate.New()
	report := &Report{RunID: runID, GraphID: g.ID, Order: order, state: state}
	for _, id := range order {
		if upstream, blocked := failedUpstream(g, id, state); blocked {
			logger.Warn("Skipping node due to upstream failure.", "node", id, "upstream", upstream)
			state.SetStatus(id, runstate.StatusSkipped)
			report.Skipped = append(report.Skipped, id)
			continue
		}
		if err := e.executeNode(logger, g, id, state); err != nil {
			logger.Error("Node execution failed.", "node", id, "error", err)
			var execErr *ExecutionError
			if !errors.As(err, &execErr) {
				return nil, err
			}
		}
	}

	report.Outputs = Results(state.Outputs())
	report.Failed = state.Errors()
	logger.Info("Graph executed.", "nodes", len(order), "failed", len(report.Failed), "skipped", len(report.Skipped))
	return report, nil
}

// failedUpstream reports the first direct producer of id that failed or was
// skipped. Nodes are visited in topological order, so a skip propagates to
// every transitive consumer.
func failedUpstream(g *graph.Graph, id string, state *runstate.Store) (string, bool) {
	for _, c := range g.IncomingConnections(id) {
		switch state.Status(c.FromNode) {
		case runstate.StatusFailed, runstate.StatusSkipped:
			return c.FromNode, true
		}
	}
	return "", false
}
