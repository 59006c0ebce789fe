package testutil

import (
	"sync"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
)

// Invocation is one recorded execution of the test.record block.
type Invocation struct {
	Tag    string
	Inputs value.Map
}

// RecorderModule registers "test.record", a block that records every call
// and passes its "value" input through. Tag defaults to an empty string.
type RecorderModule struct {
	mu    sync.Mutex
	calls []Invocation
}

// NewRecorderModule creates an empty recorder.
func NewRecorderModule() *RecorderModule {
	return &RecorderModule{}
}

// Register implements registry.Module.
func (m *RecorderModule) Register(r *registry.Registry) error {
	return r.Register(&block.Func{
		Meta: block.Metadata{
			ID:           "test.record",
			Name:         "Record",
			Description:  "Records its inputs and passes value through",
			Inputs:       []block.PortDefinition{block.Port("value", "any", false)},
			Outputs:      []block.PortDefinition{block.Port("value", "any", false)},
			ConfigSchema: map[string]string{"tag": "string"},
		},
		Run: m.run,
	})
}

func (m *RecorderModule) run(ctx *block.ExecutionContext) (value.Map, error) {
	tag, err := ctx.ConfigString("tag", "")
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.calls = append(m.calls, Invocation{Tag: tag, Inputs: ctx.Inputs.Clone()})
	m.mu.Unlock()

	out := value.Map{}
	if v, ok := ctx.Input("value"); ok {
		out["value"] = v
	}
	return out, nil
}

// Calls returns the recorded invocations in execution order.
func (m *RecorderModule) Calls() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Invocation(nil), m.calls...)
}

// Tags returns the tag of every recorded invocation in execution order.
func (m *RecorderModule) Tags() []string {
	calls := m.Calls()
	tags := make([]string, len(calls))
	for i, c := range calls {
		tags[i] = c.Tag
	}
	return tags
}
