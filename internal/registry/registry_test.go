package registry

import (
	"testing"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct{ id string }

func (s stub) Metadata() block.Metadata { return block.Metadata{ID: s.id} }
func (s stub) Execute(*block.ExecutionContext) (value.Map, error) {
	return value.Map{}, nil
}

type stubModule []string

func (m stubModule) Register(r *Registry) error {
	for _, id := range m {
		if err := r.Register(stub{id: id}); err != nil {
			return err
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("success case", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(stub{id: "b"}))
		require.NoError(t, r.Register(stub{id: "a"}))

		got, ok := r.Get("a")
		require.True(t, ok)
		assert.Equal(t, "a", got.Metadata().ID)
		assert.Equal(t, []string{"a", "b"}, r.IDs())
		assert.Equal(t, 2, r.Len())
	})

	t.Run("duplicate is rejected and the first registration kept", func(t *testing.T) {
		r := New()
		first := stub{id: "dup"}
		require.NoError(t, r.Register(first))

		err := r.Register(stub{id: "dup"})

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.ErrorContains(t, err, "block type 'dup'")
		assert.Equal(t, 1, r.Len())
	})

	t.Run("unknown id", func(t *testing.T) {
		r := New()
		_, ok := r.Get("nope")
		assert.False(t, ok)
		assert.False(t, r.Has("nope"))
	})
}

func TestRegisterModules(t *testing.T) {
	t.Parallel()

	t.Run("registers every module", func(t *testing.T) {
		r := New()
		require.NoError(t, r.RegisterModules(stubModule{"a", "b"}, stubModule{"c"}))
		assert.Equal(t, []string{"a", "b", "c"}, r.IDs())
	})

	t.Run("conflicting modules fail", func(t *testing.T) {
		r := New()
		err := r.RegisterModules(stubModule{"a"}, stubModule{"a"})
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.ErrorContains(t, err, "registry.stubModule")
	})
}
