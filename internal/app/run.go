package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/circuitgo/internal/ctxlog"
	"github.com/specialistvlad/circuitgo/internal/engine"
)

// RunResult is the outcome of executing one graph. Report is set only for
// best-effort runs.
type RunResult struct {
	GraphID string
	Outputs engine.Results
	Report  *engine.Report
	Err     error
}

// Execute runs one loaded graph, in best-effort mode when bestEffort is set.
func (a *App) Execute(ctx context.Context, id string, bestEffort bool) RunResult {
	logger := ctxlog.FromContext(a.Context(ctx))

	a.mu.Lock()
	defer a.mu.Unlock()

	res := RunResult{GraphID: id}
	if bestEffort {
		report, err := a.engine.ExecuteGraphBestEffort(id)
		if err != nil {
			res.Err = err
			return res
		}
		res.Report = report
		res.Outputs = report.Outputs
		res.Err = report.Err()
	} else {
		res.Outputs, res.Err = a.engine.ExecuteGraph(id)
	}

	if res.Err != nil {
		logger.Warn("Graph run failed.", "graph", id, "error", res.Err)
	} else {
		logger.Debug("Graph run finished.", "graph", id, "nodes", len(res.Outputs))
	}
	return res
}

// Run loads the configured paths, executes the selected graphs in id order
// and prints every result. The returned error joins the failures.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	if err := a.Load(ctx); err != nil {
		return err
	}
	ids, err := a.selectGraphs()
	if err != nil {
		return err
	}

	results := make([]RunResult, 0, len(ids))
	var errs []error
	for _, id := range ids {
		res := a.Execute(ctx, id, a.config.BestEffort)
		results = append(results, res)
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("graph '%s': %w", id, res.Err))
		}
	}

	if err := PrintResults(a.outW, a.config.Output, results); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.", "graphs", len(ids), "failed", len(errs))
	return errors.Join(errs...)
}

// Validate loads the configured paths and runs every selected graph's
// configuration checks without executing anything.
func (a *App) Validate(ctx context.Context) error {
	ctx = a.Context(ctx)
	if err := a.Load(ctx); err != nil {
		return err
	}
	ids, err := a.selectGraphs()
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		g, _ := a.engine.Graph(id)
		err := a.engine.Validate(g)
		if err != nil {
			errs = append(errs, fmt.Errorf("graph '%s': %w", id, err))
		}
		printValidation(a.outW, id, err)
	}
	return errors.Join(errs...)
}
