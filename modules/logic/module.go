// Package logic provides boolean and comparison blocks.
package logic

import (
	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the logic blocks.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterAll(Blocks()...)
}

// Blocks returns every block in the package.
func Blocks() []block.Block {
	return []block.Block{
		boolBinary("logic.and", "AND", "Logical AND of a and b", func(a, b bool) bool { return a && b }),
		boolBinary("logic.or", "OR", "Logical OR of a and b", func(a, b bool) bool { return a || b }),
		not(),
		equal(),
		compare("logic.greater", "Greater Than", "Whether a is greater than b", func(a, b float64) bool { return a > b }),
		compare("logic.less", "Less Than", "Whether a is less than b", func(a, b float64) bool { return a < b }),
	}
}

var resultOut = []block.PortDefinition{block.Port("result", "boolean", true)}

func boolBinary(id, name, desc string, op func(a, b bool) bool) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          id,
			Name:        name,
			Description: desc,
			Inputs:      []block.PortDefinition{block.Port("a", "boolean", true), block.Port("b", "boolean", true)},
			Outputs:     resultOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			a, err := ctx.Bool("a")
			if err != nil {
				return nil, err
			}
			b, err := ctx.Bool("b")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Bool(op(a, b))}, nil
		},
	}
}

func not() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "logic.not",
			Name:        "NOT",
			Description: "Logical negation",
			Inputs:      []block.PortDefinition{block.Port("value", "boolean", true)},
			Outputs:     resultOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			v, err := ctx.Bool("value")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Bool(!v)}, nil
		},
	}
}

// equal compares structurally, so Int(1) and Float(1) are not equal.
func equal() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "logic.equal",
			Name:        "Equal",
			Description: "Whether a and b are structurally equal",
			Inputs:      []block.PortDefinition{block.Port("a", "any", true), block.Port("b", "any", true)},
			Outputs:     resultOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			a, err := ctx.Require("a")
			if err != nil {
				return nil, err
			}
			b, err := ctx.Require("b")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Bool(a.Equal(b))}, nil
		},
	}
}

func compare(id, name, desc string, op func(a, b float64) bool) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          id,
			Name:        name,
			Description: desc,
			Inputs:      []block.PortDefinition{block.Port("a", "number", true), block.Port("b", "number", true)},
			Outputs:     resultOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			a, err := ctx.Float("a")
			if err != nil {
				return nil, err
			}
			b, err := ctx.Float("b")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Bool(op(a, b))}, nil
		},
	}
}
