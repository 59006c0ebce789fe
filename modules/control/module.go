// Package control provides blocks that route values: conditional
// selection, gating and simple numeric stepping.
package control

import (
	"math"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the control blocks.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterAll(If(), Switch(), Gate(), Counter(), Accumulator())
}

func anyIn(id string) block.PortDefinition { return block.Port(id, "any", true) }

var anyOut = []block.PortDefinition{block.Port("result", "any", true)}

// If picks then_value or else_value. Both branches are required even though
// only one is used.
func If() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "control.if",
			Name:        "If",
			Description: "Select then_value when condition is true, else_value otherwise",
			Inputs:      []block.PortDefinition{block.Port("condition", "boolean", true), anyIn("then_value"), anyIn("else_value")},
			Outputs:     anyOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			cond, err := ctx.Bool("condition")
			if err != nil {
				return nil, err
			}
			thenV, err := ctx.Require("then_value")
			if err != nil {
				return nil, err
			}
			elseV, err := ctx.Require("else_value")
			if err != nil {
				return nil, err
			}
			if cond {
				return value.Map{"result": thenV}, nil
			}
			return value.Map{"result": elseV}, nil
		},
	}
}

// Switch rounds selector to the nearest integer: 0 selects a, 1 selects b,
// anything else selects default.
func Switch() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "control.switch",
			Name:        "Switch",
			Description: "Select a, b or default by a numeric selector",
			Inputs:      []block.PortDefinition{block.Port("selector", "number", true), anyIn("a"), anyIn("b"), anyIn("default")},
			Outputs:     anyOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			sel, err := ctx.Float("selector")
			if err != nil {
				return nil, err
			}
			if math.IsNaN(sel) || math.IsInf(sel, 0) {
				return nil, block.Failf("Switch: selector must be finite")
			}
			branches := make([]value.Value, 3)
			for i, port := range []string{"a", "b", "default"} {
				if branches[i], err = ctx.Require(port); err != nil {
					return nil, err
				}
			}
			switch math.Round(sel) {
			case 0:
				return value.Map{"result": branches[0]}, nil
			case 1:
				return value.Map{"result": branches[1]}, nil
			}
			return value.Map{"result": branches[2]}, nil
		},
	}
}

// Gate forwards value while open is true and emits Null otherwise.
func Gate() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "control.gate",
			Name:        "Gate",
			Description: "Pass value through when open, Null otherwise",
			Inputs:      []block.PortDefinition{anyIn("value"), block.Port("open", "boolean", true)},
			Outputs:     anyOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			v, err := ctx.Require("value")
			if err != nil {
				return nil, err
			}
			open, err := ctx.Bool("open")
			if err != nil {
				return nil, err
			}
			if !open {
				v = value.Null()
			}
			return value.Map{"result": v}, nil
		},
	}
}

// Counter adds the step config (default 1) to its input.
func Counter() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:           "control.counter",
			Name:         "Counter",
			Description:  "Add step to value",
			Inputs:       []block.PortDefinition{block.Port("value", "number", true)},
			Outputs:      []block.PortDefinition{block.Port("result", "number", true)},
			ConfigSchema: map[string]string{"step": "number"},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			v, err := ctx.Float("value")
			if err != nil {
				return nil, err
			}
			step, err := ctx.ConfigFloat("step", 1)
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Float(v + step)}, nil
		},
	}
}

// Accumulator adds value to initial.
func Accumulator() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "control.accumulator",
			Name:        "Accumulator",
			Description: "Add value to initial",
			Inputs:      []block.PortDefinition{block.Port("initial", "number", true), block.Port("value", "number", true)},
			Outputs:     []block.PortDefinition{block.Port("result", "number", true)},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			v, err := ctx.Float("value")
			if err != nil {
				return nil, err
			}
			initial, err := ctx.Float("initial")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Float(initial + v)}, nil
		},
	}
}
