package numeric

import (
	"math"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/value"
)

func add(a, b float64) (float64, error)      { return a + b, nil }
func subtract(a, b float64) (float64, error) { return a - b, nil }
func multiply(a, b float64) (float64, error) { return a * b, nil }
func minimum(a, b float64) (float64, error)  { return math.Min(a, b), nil }
func maximum(a, b float64) (float64, error)  { return math.Max(a, b), nil }

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, block.Failf("Division by zero")
	}
	return a / b, nil
}

func modulo(a, b float64) (float64, error) {
	if b == 0 {
		return 0, block.Failf("Modulo by zero")
	}
	return math.Mod(a, b), nil
}

func abs(x float64) (float64, error)    { return math.Abs(x), nil }
func negate(x float64) (float64, error) { return -x, nil }
func floor(x float64) (float64, error)  { return math.Floor(x), nil }
func ceil(x float64) (float64, error)   { return math.Ceil(x), nil }
func round(x float64) (float64, error)  { return math.Round(x), nil }
func sin(x float64) (float64, error)    { return math.Sin(x), nil }
func cos(x float64) (float64, error)    { return math.Cos(x), nil }
func tan(x float64) (float64, error)    { return math.Tan(x), nil }

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, block.Failf("Square root of negative number %v", x)
	}
	return math.Sqrt(x), nil
}

var (
	numberIn  = func(id string) block.PortDefinition { return block.Port(id, "number", true) }
	resultOut = []block.PortDefinition{block.Port("result", "number", true)}
)

// binary builds a block reading numeric ports a and b.
func binary(id, name, desc string, op func(a, b float64) (float64, error)) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          id,
			Name:        name,
			Description: desc,
			Inputs:      []block.PortDefinition{numberIn("a"), numberIn("b")},
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
			r, err := op(a, b)
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Float(r)}, nil
		},
	}
}

// unary builds a block reading the numeric port value.
func unary(id, name, desc string, op func(x float64) (float64, error)) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          id,
			Name:        name,
			Description: desc,
			Inputs:      []block.PortDefinition{numberIn("value")},
			Outputs:     resultOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			x, err := ctx.Float("value")
			if err != nil {
				return nil, err
			}
			r, err := op(x)
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Float(r)}, nil
		},
	}
}

func power() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "math.power",
			Name:        "Power",
			Description: "Raise base to exponent",
			Inputs:      []block.PortDefinition{numberIn("base"), numberIn("exponent")},
			Outputs:     resultOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			base, err := ctx.Float("base")
			if err != nil {
				return nil, err
			}
			exp, err := ctx.Float("exponent")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Float(math.Pow(base, exp))}, nil
		},
	}
}

func clamp() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "math.clamp",
			Name:        "Clamp",
			Description: "Restrict value to the range [min, max]",
			Inputs:      []block.PortDefinition{numberIn("value"), numberIn("min"), numberIn("max")},
			Outputs:     resultOut,
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			x, err := ctx.Float("value")
			if err != nil {
				return nil, err
			}
			lo, err := ctx.Float("min")
			if err != nil {
				return nil, err
			}
			hi, err := ctx.Float("max")
			if err != nil {
				return nil, err
			}
			if lo > hi {
				return nil, block.Failf("Clamp: min %v is greater than max %v", lo, hi)
			}
			return value.Map{"result": value.Float(math.Max(lo, math.Min(x, hi)))}, nil
		},
	}
}
