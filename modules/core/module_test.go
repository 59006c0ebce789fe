package core

import (
	"bytes"
	"log/slog"
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
	assert.Equal(t, []string{"core.constant", "core.debug"}, r.IDs())
}

func TestConstant(t *testing.T) {
	b := Constant()

	t.Run("emits config value", func(t *testing.T) {
		out, err := b.Execute(block.NewContext(nil, value.Map{"value": value.Float(5)}))
		require.NoError(t, err)
		assert.True(t, out["value"].Equal(value.Float(5)))
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := b.Execute(block.NewContext(nil, nil))
		assert.ErrorIs(t, err, block.ErrInvalidInput)
		assert.ErrorContains(t, err, "missing config 'value'")
		assert.Error(t, block.Validate(b, value.Map{}))
	})
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	b := Debug(slog.New(slog.NewTextHandler(&buf, nil)))

	out, err := b.Execute(block.NewContext(value.Map{"value": value.String("hi")}, value.Map{"label": value.String("probe")}))
	require.NoError(t, err)
	assert.True(t, out["value"].Equal(value.String("hi")))
	assert.Contains(t, buf.String(), "label=probe")
	assert.Contains(t, buf.String(), `value="\"hi\""`)

	out, err = b.Execute(block.NewContext(nil, nil))
	require.NoError(t, err)
	assert.True(t, out["value"].IsNull())
}
