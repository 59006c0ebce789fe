package control

import (
	"math"
	"testing"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := registry.New()
	require.NoError(t, (&Module{}).Register(r))
	assert.Equal(t, []string{
		"control.accumulator", "control.counter", "control.gate", "control.if", "control.switch",
	}, r.IDs())
}

func TestControlBlocks(t *testing.T) {
	t.Parallel()

	branches := value.Map{"a": value.String("A"), "b": value.String("B"), "default": value.String("D")}
	with := func(m value.Map, k string, v value.Value) value.Map {
		out := m.Clone()
		out[k] = v
		return out
	}

	testCases := []struct {
		name   string
		b      block.Block
		inputs value.Map
		config value.Map
		want   value.Value
	}{
		{"if true", If(), value.Map{"condition": value.Bool(true), "then_value": value.Int(1), "else_value": value.Int(2)}, nil, value.Int(1)},
		{"if false", If(), value.Map{"condition": value.Bool(false), "then_value": value.Int(1), "else_value": value.Int(2)}, nil, value.Int(2)},
		{"switch 0", Switch(), with(branches, "selector", value.Int(0)), nil, value.String("A")},
		{"switch rounds to 1", Switch(), with(branches, "selector", value.Float(0.6)), nil, value.String("B")},
		{"switch default", Switch(), with(branches, "selector", value.Float(-4)), nil, value.String("D")},
		{"gate open", Gate(), value.Map{"value": value.Int(7), "open": value.Bool(true)}, nil, value.Int(7)},
		{"gate closed", Gate(), value.Map{"value": value.Int(7), "open": value.Bool(false)}, nil, value.Null()},
		{"counter default step", Counter(), value.Map{"value": value.Float(1)}, nil, value.Float(2)},
		{"counter step", Counter(), value.Map{"value": value.Int(1)}, value.Map{"step": value.Float(2.5)}, value.Float(3.5)},
		{"accumulator", Accumulator(), value.Map{"initial": value.Float(10), "value": value.Float(5)}, nil, value.Float(15)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.b.Execute(block.NewContext(tc.inputs, tc.config))
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(out["result"]), "want %s, got %s", tc.want, out["result"])
		})
	}
}

func TestControlErrors(t *testing.T) {
	t.Parallel()

	_, err := Switch().Execute(block.NewContext(value.Map{
		"selector": value.Float(math.Inf(1)), "a": value.Null(), "b": value.Null(), "default": value.Null(),
	}, nil))
	assert.ErrorIs(t, err, block.ErrExecution)
	assert.ErrorContains(t, err, "selector must be finite")

	_, err = Switch().Execute(block.NewContext(value.Map{"selector": value.Int(0), "a": value.Null()}, nil))
	assert.ErrorContains(t, err, "missing input 'b'")

	_, err = If().Execute(block.NewContext(value.Map{"condition": value.Int(1)}, nil))
	assert.ErrorIs(t, err, block.ErrInvalidInput)

	_, err = Counter().Execute(block.NewContext(value.Map{"value": value.Int(1)}, value.Map{"step": value.String("x")}))
	assert.ErrorContains(t, err, "config 'step' must be a number")
}
