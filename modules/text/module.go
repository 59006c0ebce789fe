// Package text provides the string.* blocks.
package text

import (
	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the string blocks.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterAll(Blocks()...)
}

// Blocks returns every block in the package.
func Blocks() []block.Block {
	return []block.Block{
		concat(),
		length(),
		mapString("string.uppercase", "Uppercase", "Convert to upper case", upper),
		mapString("string.lowercase", "Lowercase", "Convert to lower case", lower),
		mapString("string.trim", "Trim", "Strip leading and trailing whitespace", trim),
		contains(),
		replace(),
		split(),
		join(),
		substring(),
		template(),
	}
}
