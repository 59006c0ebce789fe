package text

import (
	"testing"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, id string, inputs, config value.Map) (value.Map, error) {
	t.Helper()
	r := registry.New()
	require.NoError(t, (&Module{}).Register(r))
	b, ok := r.Get(id)
	require.True(t, ok, "block %s not registered", id)
	return b.Execute(block.NewContext(inputs, config))
}

func TestStringBlocks(t *testing.T) {
	t.Parallel()

	s := value.String
	testCases := []struct {
		name   string
		id     string
		inputs value.Map
		config value.Map
		want   value.Value
	}{
		{"concat", "string.concat", value.Map{"a": s("foo"), "b": s("bar")}, nil, s("foobar")},
		{"concat with separator", "string.concat", value.Map{"a": s("foo"), "b": s("bar")}, value.Map{"separator": s(" ")}, s("foo bar")},
		{"length counts runes", "string.length", value.Map{"value": s("héllo")}, nil, value.Int(5)},
		{"uppercase", "string.uppercase", value.Map{"value": s("abc")}, nil, s("ABC")},
		{"lowercase", "string.lowercase", value.Map{"value": s("ABC")}, nil, s("abc")},
		{"trim", "string.trim", value.Map{"value": s("  x \n")}, nil, s("x")},
		{"contains", "string.contains", value.Map{"value": s("circuit"), "search": s("cui")}, nil, value.Bool(true)},
		{"replace", "string.replace", value.Map{"value": s("a-b-c"), "search": s("-"), "replacement": s("+")}, nil, s("a+b+c")},
		{"split default delimiter", "string.split", value.Map{"value": s("a,b")}, nil, value.Array(s("a"), s("b"))},
		{"split", "string.split", value.Map{"value": s("a b"), "delimiter": s(" ")}, nil, value.Array(s("a"), s("b"))},
		{"join", "string.join", value.Map{"values": value.Array(s("a"), s("b")), "delimiter": s("/")}, nil, s("a/b")},
		{"substring", "string.substring", value.Map{"value": s("héllo"), "start": value.Int(1), "length": value.Float(3)}, nil, s("éll")},
		{"substring to end", "string.substring", value.Map{"value": s("hello"), "start": value.Int(3)}, nil, s("lo")},
		{"substring clamps", "string.substring", value.Map{"value": s("hello"), "start": value.Int(-2), "length": value.Int(99)}, nil, s("hello")},
		{"substring past end", "string.substring", value.Map{"value": s("hello"), "start": value.Int(10)}, nil, s("")},
		{
			name:   "template",
			id:     "string.template",
			inputs: value.Map{"name": s("Ada"), "n": value.Float(3)},
			config: value.Map{"template": s("Hi {{name}}, you have {{ n }} items {{missing}}")},
			want:   s("Hi Ada, you have 3.0 items {{missing}}"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.id, tc.inputs, tc.config)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(out["result"]), "want %s, got %s", tc.want, out["result"])
		})
	}
}

func TestStringBlockErrors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "string.concat", value.Map{"a": value.String("x"), "b": value.Int(1)}, nil)
	assert.ErrorIs(t, err, block.ErrInvalidInput)
	assert.ErrorContains(t, err, "input 'b' must be a string")

	_, err = execute(t, "string.join", value.Map{"values": value.Array(value.Int(1))}, nil)
	assert.ErrorIs(t, err, block.ErrExecution)

	_, err = execute(t, "string.template", nil, nil)
	assert.ErrorContains(t, err, "missing config 'template'")
}
