package block

import "github.com/specialistvlad/circuitgo/internal/value"

// Func adapts plain functions into a Block. Check, when set, backs the
// Validator hook.
type Func struct {
	Meta  Metadata
	Run   func(ctx *ExecutionContext) (value.Map, error)
	Check func(config value.Map) error
}

func (f *Func) Metadata() Metadata { return f.Meta }

func (f *Func) Execute(ctx *ExecutionContext) (value.Map, error) {
	return f.Run(ctx)
}

func (f *Func) Validate(config value.Map) error {
	if f.Check == nil {
		return nil
	}
	return f.Check(config)
}

// RequireConfig returns a Check that fails when any of keys is absent.
func RequireConfig(keys ...string) func(value.Map) error {
	return func(config value.Map) error {
		for _, k := range keys {
			if _, ok := config[k]; !ok {
				return MissingConfig(k)
			}
		}
		return nil
	}
}
