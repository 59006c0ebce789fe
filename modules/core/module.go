// Package core provides the blocks every graph tends to need: constants and
// a pass-through that logs what flows through it.
package core

import (
	"log/slog"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Logger receives core.debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Register registers the core blocks.
func (m *Module) Register(r *registry.Registry) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return r.RegisterAll(Constant(), Debug(logger))
}

// Constant emits its "value" config entry on the "value" port.
func Constant() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:           "core.constant",
			Name:         "Constant",
			Description:  "Outputs a constant value",
			Outputs:      []block.PortDefinition{block.Port("value", "any", true)},
			ConfigSchema: map[string]string{"value": "any"},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			v, ok := ctx.ConfigValue("value")
			if !ok {
				return nil, block.MissingConfig("value")
			}
			return value.Map{"value": v}, nil
		},
		Check: block.RequireConfig("value"),
	}
}

// Debug passes its "value" input through unchanged and logs it. A missing
// input is passed on as Null.
func Debug(logger *slog.Logger) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:           "core.debug",
			Name:         "Debug",
			Description:  "Logs the value flowing through it",
			Inputs:       []block.PortDefinition{block.Port("value", "any", false)},
			Outputs:      []block.PortDefinition{block.Port("value", "any", true)},
			ConfigSchema: map[string]string{"label": "string"},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			label, err := ctx.ConfigString("label", "debug")
			if err != nil {
				return nil, err
			}
			v, _ := ctx.Input("value")
			logger.Info("Debug value.", "label", label, "kind", v.Kind().String(), "value", v.String())
			return value.Map{"value": v}, nil
		},
	}
}
