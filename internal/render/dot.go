// Package render draws graphs as Graphviz DOT and SVG.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/specialistvlad/circuitgo/internal/graph"
)

// ToDOT converts a graph to Graphviz DOT. Nodes are emitted in execution
// order and labelled with their id and block type; edges carry the port
// names they connect.
func ToDOT(g *graph.Graph) string {
	order, err := g.TopologicalSort()
	if err != nil {
		order = g.NodeIDs()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", g.ID)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	if g.Name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", g.Name)
	}
	buf.WriteString("\n")

	for _, id := range order {
		n, _ := g.Node(id)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, n.ID+"\n("+n.BlockType+")")
	}

	buf.WriteString("\n")
	for _, c := range g.Connections() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", c.FromNode, c.ToNode, c.FromPort+" → "+c.ToPort)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
