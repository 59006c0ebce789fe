// Package socketio provides the net.socketio block, a request/response
// exchange over a Socket.IO connection.
package socketio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/zishang520/engine.io/v2/types"
)

const defaultTimeout = 10 * time.Second

// Module implements the registry.Module interface for this package.
type Module struct {
	Logger *slog.Logger
}

// Register registers net.socketio.
func (m *Module) Register(r *registry.Registry) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return r.Register(Request(logger))
}

// settings is the decoded block config.
type settings struct {
	dialOptions
	EmitEvent string
	OnEvent   string
	Timeout   time.Duration
}

func parseSettings(cfg value.Map) (settings, error) {
	ctx := block.NewContext(nil, cfg)
	var s settings
	var err error
	if s.URL, err = ctx.ConfigString("url", ""); err != nil {
		return s, err
	}
	if s.URL == "" {
		return s, block.MissingConfig("url")
	}
	if s.Namespace, err = ctx.ConfigString("namespace", "/"); err != nil {
		return s, err
	}
	if s.EmitEvent, err = ctx.ConfigString("emit_event", ""); err != nil {
		return s, err
	}
	if s.OnEvent, err = ctx.ConfigString("on_event", ""); err != nil {
		return s, err
	}
	if s.OnEvent == "" {
		return s, block.MissingConfig("on_event")
	}
	if s.InsecureSkipVerify, err = ctx.ConfigBool("insecure_skip_verify", false); err != nil {
		return s, err
	}
	raw, err := ctx.ConfigString("timeout", defaultTimeout.String())
	if err != nil {
		return s, err
	}
	if s.Timeout, err = time.ParseDuration(raw); err != nil || s.Timeout <= 0 {
		return s, fmt.Errorf("%w: config 'timeout' must be a positive duration, got %q", block.ErrInvalidInput, raw)
	}
	return s, nil
}

// Request connects, optionally emits emit_event with the "data" input, and
// waits for on_event. The first argument of that event becomes the response
// output, or Null when the event carries none.
func Request(logger *slog.Logger) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "net.socketio",
			Name:        "Socket.IO Request",
			Description: "Emit an event and wait for a reply event",
			Inputs:      []block.PortDefinition{block.Port("data", "any", false)},
			Outputs:     []block.PortDefinition{block.Port("response", "any", true)},
			ConfigSchema: map[string]string{
				"url":                  "string",
				"namespace":            "string",
				"emit_event":           "string",
				"on_event":             "string",
				"timeout":              "string",
				"insecure_skip_verify": "boolean",
			},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			s, err := parseSettings(ctx.Config)
			if err != nil {
				return nil, err
			}
			var data any
			if v, ok := ctx.Input("data"); ok {
				data = v.Native()
			}
			resp, err := exchange(logger.With("block", "net.socketio", "url", s.URL), s, data)
			if err != nil {
				return nil, block.Failf("%v", err)
			}
			return value.Map{"response": resp}, nil
		},
		Check: func(cfg value.Map) error {
			_, err := parseSettings(cfg)
			return err
		},
	}
}

type opResult struct {
	value value.Value
	err   error
}

func exchange(logger *slog.Logger, s settings, data any) (value.Value, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	io, err := dial(ctx, logger, s.dialOptions)
	if err != nil {
		return value.Null(), err
	}
	defer func() {
		logger.Debug("Disconnecting socket client.")
		io.Disconnect()
	}()

	done := make(chan opResult, 1)
	io.Once(types.EventName(s.OnEvent), func(args ...any) {
		if len(args) == 0 {
			notify(done, opResult{value: value.Null()})
			return
		}
		v, err := value.FromNative(args[0])
		notify(done, opResult{value: v, err: err})
	})

	if s.EmitEvent != "" {
		logger.Info("Emitting event.", "event", s.EmitEvent)
		io.Emit(s.EmitEvent, data)
	}

	select {
	case <-ctx.Done():
		return value.Null(), fmt.Errorf("timed out after %v waiting for event '%s'", s.Timeout, s.OnEvent)
	case res := <-done:
		if res.err != nil {
			return value.Null(), fmt.Errorf("decoding '%s' payload: %w", s.OnEvent, res.err)
		}
		logger.Info("Received response event.", "event", s.OnEvent)
		return res.value, nil
	}
}
