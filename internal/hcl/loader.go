package hcl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/circuitgo/internal/ctxlog"
	"github.com/specialistvlad/circuitgo/internal/fsutil"
	"github.com/specialistvlad/circuitgo/internal/graph"
	"github.com/specialistvlad/circuitgo/internal/value"
)

// ErrDuplicateGraph is returned when two loaded files define the same graph id.
var ErrDuplicateGraph = errors.New("duplicate graph id")

// Extensions lists the file extensions a directory search picks up.
var Extensions = []string{".hcl", ".json"}

// Loader reads graph files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new graph file loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads every graph from the given files and directories. Directories
// are searched recursively for .hcl and .json files. Files ending in .json
// hold one graph in its JSON form; everything else is parsed as HCL. The
// result is sorted by graph id.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Graph loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered graph files.", "count", len(files))

	var graphs []*graph.Graph
	origin := make(map[string]string)
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read graph file %s: %w", file, err)
		}

		var found []*graph.Graph
		if filepath.Ext(file) == ".json" {
			found, err = l.parseJSON(file, src)
		} else {
			found, err = l.Parse(file, src)
		}
		if err != nil {
			return nil, err
		}

		for _, g := range found {
			if prev, dup := origin[g.ID]; dup {
				return nil, fmt.Errorf("graph '%s' in %s and %s: %w", g.ID, prev, file, ErrDuplicateGraph)
			}
			origin[g.ID] = file
			logger.Debug("Loaded graph.", "graph", g.ID, "file", file, "nodes", g.Len())
		}
		graphs = append(graphs, found...)
	}

	slices.SortFunc(graphs, func(a, b *graph.Graph) int { return strings.Compare(a.ID, b.ID) })
	logger.Debug("Graph loading complete.", "graphs", len(graphs))
	return graphs, nil
}

func (l *Loader) parseJSON(filename string, src []byte) ([]*graph.Graph, error) {
	g := new(graph.Graph)
	if err := json.Unmarshal(src, g); err != nil {
		return nil, fmt.Errorf("failed to decode graph file %s: %w", filename, err)
	}
	if g.ID == "" {
		return nil, fmt.Errorf("graph file %s: graph has no id", filename)
	}
	return []*graph.Graph{g}, nil
}

// Parse decodes every graph block in an HCL source. filename is used only
// in diagnostics.
func (l *Loader) Parse(filename string, src []byte) ([]*graph.Graph, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	evalCtx := newEvalContext()
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	graphs := make([]*graph.Graph, 0, len(root.Graphs))
	seen := make(map[string]bool)
	for _, gb := range root.Graphs {
		if seen[gb.ID] {
			return nil, fmt.Errorf("graph '%s' in %s: %w", gb.ID, filename, ErrDuplicateGraph)
		}
		seen[gb.ID] = true

		g, err := translateGraph(evalCtx, gb)
		if err != nil {
			return nil, fmt.Errorf("graph '%s': %w", gb.ID, err)
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

func translateGraph(evalCtx *hcl.EvalContext, gb *graphBlock) (*graph.Graph, error) {
	name := gb.Name
	if name == "" {
		name = gb.ID
	}
	g := graph.New(gb.ID, name)
	g.Description = gb.Description

	for _, nb := range gb.Nodes {
		n, err := translateNode(evalCtx, nb)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}

	for _, cb := range gb.Connections {
		c, err := translateConnection(cb)
		if err != nil {
			return nil, err
		}
		if err := g.AddConnection(c); err != nil {
			return nil, fmt.Errorf("%s: %w", cb.From.Range(), err)
		}
	}
	return g, nil
}

func translateNode(evalCtx *hcl.EvalContext, nb *nodeBlock) (graph.Node, error) {
	n := graph.Node{ID: nb.ID, BlockType: nb.Type, Config: value.Map{}}

	if isExprDefined(nb.Config) {
		v, diags := nb.Config.Value(evalCtx)
		if diags.HasErrors() {
			return n, fmt.Errorf("node '%s' config: %w", nb.ID, diags)
		}
		cfg, err := ToValue(v)
		if err != nil {
			return n, fmt.Errorf("%s: node '%s' config: %w", nb.Config.Range(), nb.ID, err)
		}
		if !cfg.IsNull() {
			obj, ok := cfg.AsObject()
			if !ok {
				return n, fmt.Errorf("%s: node '%s' config must be an object, got %s", nb.Config.Range(), nb.ID, cfg.Kind())
			}
			n.Config = obj
		}
	}

	if isExprDefined(nb.Position) {
		pos, err := translatePosition(evalCtx, nb.Position)
		if err != nil {
			return n, fmt.Errorf("%s: node '%s' position: %w", nb.Position.Range(), nb.ID, err)
		}
		n.Position = pos
	}
	return n, nil
}

func translatePosition(evalCtx *hcl.EvalContext, expr hcl.Expression) (*graph.Position, error) {
	v, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	pv, err := ToValue(v)
	if err != nil {
		return nil, err
	}
	if pv.IsNull() {
		return nil, nil
	}
	arr, ok := pv.AsArray()
	if !ok || len(arr) != 2 {
		return nil, errors.New("must be a pair of numbers [x, y]")
	}
	x, okX := arr[0].AsFloat()
	y, okY := arr[1].AsFloat()
	if !okX || !okY {
		return nil, errors.New("must be a pair of numbers [x, y]")
	}
	return &graph.Position{X: x, Y: y}, nil
}

func translateConnection(cb *connectBlock) (graph.Connection, error) {
	fromNode, fromPort, err := endpoint(cb.From)
	if err != nil {
		return graph.Connection{}, fmt.Errorf("%s: connection source: %w", cb.From.Range(), err)
	}
	toNode, toPort, err := endpoint(cb.To)
	if err != nil {
		return graph.Connection{}, fmt.Errorf("%s: connection target: %w", cb.To.Range(), err)
	}
	return graph.Connection{FromNode: fromNode, FromPort: fromPort, ToNode: toNode, ToPort: toPort}, nil
}

// endpoint reads a node.port reference written either as a bare traversal
// or as a string. Strings are split at the last dot.
func endpoint(expr hcl.Expression) (node, port string, err error) {
	if trav, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		if len(trav) == 2 {
			root, okRoot := trav[0].(hcl.TraverseRoot)
			attr, okAttr := trav[1].(hcl.TraverseAttr)
			if okRoot && okAttr {
				return root.Name, attr.Name, nil
			}
		}
		return "", "", fmt.Errorf("'%s' is not a node.port reference", traversalString(trav))
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", "", errors.New("must be a node.port reference")
	}
	s, err := ToValue(v)
	if err != nil {
		return "", "", err
	}
	str, ok := s.AsString()
	if !ok {
		return "", "", fmt.Errorf("must be a node.port reference, got %s", s.Kind())
	}
	i := strings.LastIndex(str, ".")
	if i <= 0 || i == len(str)-1 {
		return "", "", fmt.Errorf("'%s' is not a node.port reference", str)
	}
	return str[:i], str[i+1:], nil
}

func traversalString(trav hcl.Traversal) string {
	var b strings.Builder
	for _, step := range trav {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			b.WriteString(s.Name)
		case hcl.TraverseAttr:
			b.WriteString("." + s.Name)
		default:
			b.WriteString("[...]")
		}
	}
	return b.String()
}

// isExprDefined reports whether an optional attribute was written in the
// source. Omitted attributes decode to a zero-width placeholder expression.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
