package render

import (
	"context"
	"strings"
	"testing"

	"github.com/specialistvlad/circuitgo/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New("calc", "Calculator")
	for _, n := range []graph.Node{
		{ID: "z", BlockType: "core.constant"},
		{ID: "a", BlockType: "core.constant"},
		{ID: "add", BlockType: "math.add"},
	} {
		require.NoError(t, g.AddNode(n))
	}
	require.NoError(t, g.AddConnection(graph.Connection{FromNode: "z", FromPort: "value", ToNode: "add", ToPort: "a"}))
	require.NoError(t, g.AddConnection(graph.Connection{FromNode: "a", FromPort: "value", ToNode: "add", ToPort: "b"}))
	return g
}

func TestToDOT(t *testing.T) {
	t.Parallel()

	dot := ToDOT(sample(t))

	assert.True(t, strings.HasPrefix(dot, `digraph "calc" {`))
	assert.Contains(t, dot, `label="Calculator";`)
	assert.Contains(t, dot, `"add" [label="add\n(math.add)"];`)
	assert.Contains(t, dot, `"z" -> "add" [label="value → a"];`)
	assert.Contains(t, dot, `"a" -> "add" [label="value → b"];`)

	// Nodes follow execution order: sources sorted by id, then add.
	ia := strings.Index(dot, `"a" [label`)
	iz := strings.Index(dot, `"z" [label`)
	iadd := strings.Index(dot, `"add" [label`)
	assert.Less(t, ia, iz)
	assert.Less(t, iz, iadd)
}

func TestRenderSVG(t *testing.T) {
	t.Parallel()

	svg, err := RenderSVG(context.Background(), ToDOT(sample(t)))

	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}
