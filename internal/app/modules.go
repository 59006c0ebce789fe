package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/modules/control"
	"github.com/specialistvlad/circuitgo/modules/core"
	"github.com/specialistvlad/circuitgo/modules/env_vars"
	"github.com/specialistvlad/circuitgo/modules/http_request"
	"github.com/specialistvlad/circuitgo/modules/logic"
	"github.com/specialistvlad/circuitgo/modules/numeric"
	"github.com/specialistvlad/circuitgo/modules/print"
	"github.com/specialistvlad/circuitgo/modules/s3"
	"github.com/specialistvlad/circuitgo/modules/socketio"
	"github.com/specialistvlad/circuitgo/modules/text"
)

// CoreModules is the catalog compiled into the binary that never leaves the
// process. core.print writes to out.
func CoreModules(logger *slog.Logger, out io.Writer) []registry.Module {
	return []registry.Module{
		&core.Module{Logger: logger},
		&print.Module{Out: out},
		&env_vars.Module{},
		&numeric.Module{},
		&logic.Module{},
		&text.Module{},
		&control.Module{},
	}
}

// NetModules are the side-effecting blocks that talk to the network.
func NetModules(logger *slog.Logger) []registry.Module {
	client := http_request.NewClient()
	return []registry.Module{
		&http_request.Module{Client: client, Logger: logger},
		&s3.Module{Client: client, Logger: logger},
		&socketio.Module{Logger: logger},
	}
}

// Modules returns the catalog selected by cfg.
func Modules(cfg *Config, logger *slog.Logger, out io.Writer) []registry.Module {
	mods := CoreModules(logger, out)
	if cfg.EnableNet {
		mods = append(mods, NetModules(logger)...)
	}
	return mods
}
