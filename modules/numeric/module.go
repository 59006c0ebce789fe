// Package numeric provides the math.* blocks. Every numeric input accepts
// an Int or a Float and every result is a Float.
package numeric

import (
	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the math blocks.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterAll(Blocks()...)
}

// Blocks returns every block in the package.
func Blocks() []block.Block {
	return []block.Block{
		binary("math.add", "Add", "Add two numbers", add),
		binary("math.subtract", "Subtract", "Subtract b from a", subtract),
		binary("math.multiply", "Multiply", "Multiply two numbers", multiply),
		binary("math.divide", "Divide", "Divide a by b", divide),
		binary("math.modulo", "Modulo", "Remainder of a divided by b", modulo),
		binary("math.min", "Minimum", "The smaller of a and b", minimum),
		binary("math.max", "Maximum", "The larger of a and b", maximum),
		power(),
		clamp(),
		unary("math.abs", "Absolute", "Absolute value", abs),
		unary("math.negate", "Negate", "Flip the sign", negate),
		unary("math.sqrt", "Square root", "Square root of a non-negative number", sqrt),
		unary("math.floor", "Floor", "Round down", floor),
		unary("math.ceil", "Ceil", "Round up", ceil),
		unary("math.round", "Round", "Round half away from zero", round),
		unary("math.sin", "Sine", "Sine of an angle in radians", sin),
		unary("math.cos", "Cosine", "Cosine of an angle in radians", cos),
		unary("math.tan", "Tangent", "Tangent of an angle in radians", tan),
	}
}
