package integration_tests

import (
	"testing"

	"github.com/specialistvlad/circuitgo/internal/app"
	"github.com/specialistvlad/circuitgo/internal/testutil"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: config values may use functions and nested collections.
func TestHCLFeatures_ConfigExpressions(t *testing.T) {
	// --- Arrange ---
	hcl := `
graph "exprs" {
  node "shout" {
    type   = "core.constant"
    config = { value = upper(format("%s-%d", "node", 7)) }
  }

  node "list" {
    type   = "core.constant"
    config = { value = split(",", "a,b") }
  }

  node "nested" {
    type = "core.constant"
    config = {
      value = { limit = max(3, 9), on = true }
    }
  }
}
`

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"exprs.hcl": hcl},
		app.Config{Output: app.OutputJSON})

	// --- Assert ---
	require.NoError(t, result.Err)
	out := result.Results(t)["exprs"].Outputs
	assert.True(t, out["shout"]["value"].Equal(value.String("NODE-7")))
	assert.True(t, out["list"]["value"].Equal(value.Array(value.String("a"), value.String("b"))))
	assert.True(t, out["nested"]["value"].Equal(value.Object(value.Map{
		"limit": value.Float(9),
		"on":    value.Bool(true),
	})))
}
