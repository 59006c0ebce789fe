package hcl

import (
	"testing"

	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestToValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   cty.Value
		want value.Value
	}{
		{"string", cty.StringVal("s"), value.String("s")},
		{"bool", cty.True, value.Bool(true)},
		{"whole number is a float", cty.NumberIntVal(5), value.Float(5)},
		{"fraction", cty.NumberFloatVal(2.5), value.Float(2.5)},
		{"null", cty.NullVal(cty.String), value.Null()},
		{"list", cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}), value.Array(value.String("a"), value.String("b"))},
		{"set", cty.SetVal([]cty.Value{cty.StringVal("a")}), value.Array(value.String("a"))},
		{"map", cty.MapVal(map[string]cty.Value{"k": cty.True}), value.Object(value.Map{"k": value.Bool(true)})},
		{"empty tuple", cty.EmptyTupleVal, value.Array()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToValue(tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ToValue(cty.UnknownVal(cty.String))
		assert.ErrorContains(t, err, "not known")
	})

	t.Run("unknown nested", func(t *testing.T) {
		_, err := ToValue(cty.TupleVal([]cty.Value{cty.True, cty.UnknownVal(cty.Number)}))
		assert.ErrorContains(t, err, "index 1")
	})
}
