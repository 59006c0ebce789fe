package integration_tests

import (
	"testing"

	"github.com/specialistvlad/circuitgo/internal/app"
	"github.com/specialistvlad/circuitgo/internal/testutil"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: HCL and JSON graph files in nested directories load together and
// unrelated files are ignored.
func TestHCLFeatures_UnifiedLoading(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"graphs/calc.hcl": `
graph "calc" {
  node "c5" {
    type   = "core.constant"
    config = { value = 5 }
  }

  node "c3" {
    type   = "core.constant"
    config = { value = 3 }
  }

  node "add" {
    type = "math.add"
  }

  connect {
    from = c5.value
    to   = add.a
  }

  connect {
    from = "c3.value"
    to   = "add.b"
  }
}
`,
		"graphs/nested/single.json": `{
  "id": "single",
  "nodes": {
    "k": {"block_type": "core.constant", "config": {"value": {"type": "Int", "value": 7}}}
  },
  "connections": []
}`,
		"graphs/README.md": "not a graph",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{Output: app.OutputJSON})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"calc", "single"}, result.App.Engine().ListGraphs())

	results := result.Results(t)
	assert.True(t, results["calc"].Outputs["add"]["result"].Equal(value.Float(8)))
	assert.True(t, results["single"].Outputs["k"]["value"].Equal(value.Int(7)))
}

// Test for: only the selected graph runs.
func TestHCLFeatures_GraphSelection(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"one.hcl": `
graph "one" {
  node "a" {
    type   = "test.record"
    config = { tag = "one" }
  }
}
`,
		"two.hcl": `
graph "two" {
  node "a" {
    type   = "test.record"
    config = { tag = "two" }
  }
}
`,
	}
	recorder := testutil.NewRecorderModule()

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{GraphID: "two"}, recorder)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"two"}, recorder.Tags())
}
