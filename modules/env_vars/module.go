// Package env_vars exposes the process environment to graphs.
package env_vars

import (
	"os"
	"strings"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
)

// Module implements the registry.Module interface for this package. The
// function fields default to os.LookupEnv and os.Environ.
type Module struct {
	LookupEnv func(string) (string, bool)
	Environ   func() []string
}

// Register registers core.env and core.env_all.
func (m *Module) Register(r *registry.Registry) error {
	lookup, environ := m.LookupEnv, m.Environ
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if environ == nil {
		environ = os.Environ
	}
	return r.RegisterAll(Env(lookup), EnvAll(environ))
}

// Env reads the variable named by the "name" config. When it is unset the
// "default" config is used, and found reports false.
func Env(lookup func(string) (string, bool)) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "core.env",
			Name:        "Environment Variable",
			Description: "Read one environment variable",
			Outputs: []block.PortDefinition{
				block.Port("value", "string", true),
				block.Port("found", "boolean", true),
			},
			ConfigSchema: map[string]string{"name": "string", "default": "string"},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			name, err := ctx.ConfigString("name", "")
			if err != nil {
				return nil, err
			}
			if name == "" {
				return nil, block.MissingConfig("name")
			}
			def, err := ctx.ConfigString("default", "")
			if err != nil {
				return nil, err
			}
			v, found := lookup(name)
			if !found {
				v = def
			}
			return value.Map{"value": value.String(v), "found": value.Bool(found)}, nil
		},
		Check: block.RequireConfig("name"),
	}
}

// EnvAll emits the whole environment as an Object on the "all" port.
func EnvAll(environ func() []string) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "core.env_all",
			Name:        "Environment",
			Description: "All environment variables as an object",
			Outputs:     []block.PortDefinition{block.Port("all", "object", true)},
		},
		Run: func(*block.ExecutionContext) (value.Map, error) {
			all := make(value.Map)
			for _, e := range environ() {
				if k, v, ok := strings.Cut(e, "="); ok {
					all[k] = value.String(v)
				}
			}
			return value.Map{"all": value.Object(all)}, nil
		},
	}
}
