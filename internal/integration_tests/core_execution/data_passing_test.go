package integration_tests

import (
	"testing"

	"github.com/specialistvlad/circuitgo/internal/app"
	"github.com/specialistvlad/circuitgo/internal/testutil"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: a value fans out to two branches that fan back in.
func TestCoreExecution_Diamond_PassesDataAndOrdersByID(t *testing.T) {
	// --- Arrange ---
	hcl := `
graph "diamond" {
  node "src" {
    type   = "core.constant"
    config = { value = 2 }
  }

  node "b_right" {
    type   = "test.record"
    config = { tag = "right" }
  }

  node "a_left" {
    type   = "test.record"
    config = { tag = "left" }
  }

  node "sum" {
    type = "math.add"
  }

  node "tail" {
    type   = "test.record"
    config = { tag = "tail" }
  }

  connect {
    from = src.value
    to   = b_right.value
  }

  connect {
    from = src.value
    to   = a_left.value
  }

  connect {
    from = a_left.value
    to   = sum.a
  }

  connect {
    from = b_right.value
    to   = sum.b
  }

  connect {
    from = sum.result
    to   = tail.value
  }
}
`
	recorder := testutil.NewRecorderModule()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"diamond.hcl": hcl},
		app.Config{Output: app.OutputJSON}, recorder)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"left", "right", "tail"}, recorder.Tags())

	calls := recorder.Calls()
	assert.True(t, calls[0].Inputs["value"].Equal(value.Float(2)))
	assert.True(t, calls[2].Inputs["value"].Equal(value.Float(4)))

	res := result.Results(t)["diamond"]
	assert.True(t, res.OK)
	assert.True(t, res.Outputs["sum"]["result"].Equal(value.Float(4)))
	assert.Len(t, res.Outputs, 5)
}

// Test for: several producers feed one consumer on distinct ports.
func TestCoreExecution_FanIn_FillsTemplate(t *testing.T) {
	// --- Arrange ---
	hcl := `
graph "greeting" {
  node "name" {
    type   = "core.constant"
    config = { value = "Ada" }
  }

  node "greeting" {
    type   = "core.constant"
    config = { value = "Hello" }
  }

  node "render" {
    type   = "string.template"
    config = { template = "{{greeting}}, {{name}}! {{missing}}" }
  }

  connect {
    from = name.value
    to   = render.name
  }

  connect {
    from = greeting.value
    to   = render.greeting
  }
}
`

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"greeting.hcl": hcl}, app.Config{})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, `render.result = "Hello, Ada! {{missing}}"`)
}

// Test for: an unconnected input port is absent rather than null.
func TestCoreExecution_UnconnectedPort_IsAbsent(t *testing.T) {
	// --- Arrange ---
	hcl := `
graph "lonely" {
  node "solo" {
    type   = "test.record"
    config = { tag = "solo" }
  }
}
`
	recorder := testutil.NewRecorderModule()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"lonely.hcl": hcl},
		app.Config{Output: app.OutputJSON}, recorder)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Len(t, recorder.Calls(), 1)
	assert.Empty(t, recorder.Calls()[0].Inputs)
	assert.Empty(t, result.Results(t)["lonely"].Outputs["solo"])
}
