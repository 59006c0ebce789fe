package engine

import (
	"fmt"
	"testing"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/graph"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/require"
)

type constantBlock struct{}

func (constantBlock) Metadata() block.Metadata {
	return block.Metadata{ID: "constant", Outputs: []block.PortDefinition{block.Port("value", "any", true)}}
}

func (constantBlock) Execute(ctx *block.ExecutionContext) (value.Map, error) {
	v, ok := ctx.ConfigValue("value")
	if !ok {
		return nil, block.MissingConfig("value")
	}
	return value.Map{"value": v}, nil
}

func (constantBlock) Validate(cfg value.Map) error {
	if _, ok := cfg["value"]; !ok {
		return block.MissingConfig("value")
	}
	return nil
}

type addBlock struct{}

func (addBlock) Metadata() block.Metadata { return block.Metadata{ID: "add"} }

func (addBlock) Execute(ctx *block.ExecutionContext) (value.Map, error) {
	a, err := ctx.Float("a")
	if err != nil {
		return nil, err
	}
	b, err := ctx.Float("b")
	if err != nil {
		return nil, err
	}
	return value.Map{"result": value.Float(a + b)}, nil
}

type divideBlock struct{}

func (divideBlock) Metadata() block.Metadata { return block.Metadata{ID: "divide"} }

func (divideBlock) Execute(ctx *block.ExecutionContext) (value.Map, error) {
	a, err := ctx.Float("a")
	if err != nil {
		return nil, err
	}
	b, err := ctx.Float("b")
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, block.Failf("Division by zero")
	}
	return value.Map{"result": value.Float(a / b)}, nil
}

// inspectBlock echoes back the inputs it was handed.
type inspectBlock struct{}

func (inspectBlock) Metadata() block.Metadata { return block.Metadata{ID: "inspect"} }

func (inspectBlock) Execute(ctx *block.ExecutionContext) (value.Map, error) {
	return value.Map{"inputs": value.Object(ctx.Inputs), "config": value.Object(ctx.Config)}, nil
}

type panicBlock struct{}

func (panicBlock) Metadata() block.Metadata { return block.Metadata{ID: "panic"} }

func (panicBlock) Execute(*block.ExecutionContext) (value.Map, error) {
	panic("kaboom")
}

type nilOutputBlock struct{}

func (nilOutputBlock) Metadata() block.Metadata { return block.Metadata{ID: "nil_output"} }

func (nilOutputBlock) Execute(*block.ExecutionContext) (value.Map, error) {
	return nil, nil
}

func newTestEngine(t testing.TB) *Engine {
	t.Helper()
	e := New()
	for _, b := range []block.Block{
		constantBlock{}, addBlock{}, divideBlock{}, inspectBlock{}, panicBlock{}, nilOutputBlock{},
	} {
		require.NoError(t, e.RegisterBlock(b))
	}
	return e
}

// graphBuilder keeps graph construction in tests short.
type graphBuilder struct {
	t testing.TB
	g *graph.Graph
}

func newGraph(t testing.TB, id string) *graphBuilder {
	return &graphBuilder{t: t, g: graph.New(id, id)}
}

func (b *graphBuilder) constant(id string, v value.Value) *graphBuilder {
	return b.node(id, "constant", value.Map{"value": v})
}

func (b *graphBuilder) node(id, blockType string, cfg value.Map) *graphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.g.AddNode(graph.Node{ID: id, BlockType: blockType, Config: cfg}))
	return b
}

func (b *graphBuilder) connect(from, fromPort, to, toPort string) *graphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.g.AddConnection(graph.Connection{FromNode: from, FromPort: fromPort, ToNode: to, ToPort: toPort}))
	return b
}

func (b *graphBuilder) build() *graph.Graph { return b.g }

// chain builds c0 -> add1 -> ... -> addN where every add also receives a
// constant 1.0 on port b.
func chain(t testing.TB, n int) *graph.Graph {
	b := newGraph(t, "chain").constant("c0", value.Float(1)).constant("one", value.Float(1))
	prev := "c0"
	prevPort := "value"
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("add%03d", i)
		b.node(id, "add", nil).
			connect(prev, prevPort, id, "a").
			connect("one", "value", id, "b")
		prev, prevPort = id, "result"
	}
	return b.build()
}
