// Package print provides core.print, a sink that writes values to the
// program output.
package print

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives printed values. Defaults to os.Stdout.
	Out io.Writer
}

// Register registers core.print.
func (m *Module) Register(r *registry.Registry) error {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	return r.Register(Print(out))
}

// Print writes its "value" input to out and passes it on. Objects are
// written one sorted key per line.
func Print(out io.Writer) block.Block {
	var mu sync.Mutex
	return &block.Func{
		Meta: block.Metadata{
			ID:           "core.print",
			Name:         "Print",
			Description:  "Writes the value to the program output",
			Inputs:       []block.PortDefinition{block.Port("value", "any", false)},
			Outputs:      []block.PortDefinition{block.Port("value", "any", true)},
			ConfigSchema: map[string]string{"label": "string"},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			label, err := ctx.ConfigString("label", "")
			if err != nil {
				return nil, err
			}
			v, _ := ctx.Input("value")

			mu.Lock()
			defer mu.Unlock()
			if label != "" {
				fmt.Fprintf(out, "%s:\n", label)
			}
			if err := write(out, v); err != nil {
				return nil, block.Failf("writing output: %v", err)
			}
			return value.Map{"value": v}, nil
		},
	}
}

func write(out io.Writer, v value.Value) error {
	if v.IsNull() {
		_, err := fmt.Fprintln(out, "      (null)")
		return err
	}
	obj, ok := v.AsObject()
	if !ok {
		_, err := fmt.Fprintf(out, "      %s\n", v)
		return err
	}
	for _, k := range obj.Keys() {
		if _, err := fmt.Fprintf(out, "      %s = %s\n", k, obj[k]); err != nil {
			return err
		}
	}
	return nil
}
