package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/engine"
	"github.com/specialistvlad/circuitgo/internal/render"
)

// BlockCatalog returns the metadata of every registered block, sorted by id.
func (a *App) BlockCatalog() []block.Metadata {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := a.engine.ListBlocks()
	metas := make([]block.Metadata, 0, len(ids))
	for _, id := range ids {
		m, _ := a.engine.BlockMetadata(id)
		metas = append(metas, m)
	}
	return metas
}

// Blocks prints the catalog in the configured output format.
func (a *App) Blocks() error {
	return PrintBlocks(a.outW, a.config.Output, a.BlockCatalog())
}

// DOT returns the DOT rendering of a loaded graph.
func (a *App) DOT(id string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	g, ok := a.engine.Graph(id)
	if !ok {
		return "", fmt.Errorf("graph '%s': %w", id, engine.ErrGraphNotFound)
	}
	return render.ToDOT(g), nil
}

// Draw loads the configured paths and renders the configured graph. The DOT
// source goes to the output writer, or an SVG is written to svgPath when it
// is set.
func (a *App) Draw(ctx context.Context, svgPath string) error {
	ctx = a.Context(ctx)
	if a.config.GraphID == "" {
		return errors.New("a graph id is required")
	}
	if err := a.Load(ctx); err != nil {
		return err
	}
	dot, err := a.DOT(a.config.GraphID)
	if err != nil {
		return err
	}
	if svgPath == "" {
		_, err := io.WriteString(a.outW, dot)
		return err
	}

	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(svgPath, svg, 0o644); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	a.logger.Info("SVG written.", "graph", a.config.GraphID, "path", svgPath, "bytes", len(svg))
	return nil
}
