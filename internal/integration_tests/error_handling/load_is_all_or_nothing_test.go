package integration_tests

import (
	"testing"

	"github.com/specialistvlad/circuitgo/internal/app"
	"github.com/specialistvlad/circuitgo/internal/engine"
	"github.com/specialistvlad/circuitgo/internal/graph"
	"github.com/specialistvlad/circuitgo/internal/hcl"
	"github.com/specialistvlad/circuitgo/internal/testutil"
	"github.com/stretchr/testify/assert"
)

const goodGraph = `
graph "good" {
  node "a" {
    type   = "core.constant"
    config = { value = 1 }
  }
}
`

func TestErrorHandling_LoadIsAllOrNothing(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		file    string
		wantErr error
	}{
		{
			name: "unknown block type",
			file: `
graph "bad" {
  node "x" {
    type = "does.not_exist"
  }
}
`,
			wantErr: engine.ErrUnknownBlockType,
		},
		{
			name: "cycle",
			file: `
graph "bad" {
  node "a" {
    type = "math.abs"
  }

  node "b" {
    type = "math.abs"
  }

  connect {
    from = a.result
    to   = b.value
  }

  connect {
    from = b.result
    to   = a.value
  }
}
`,
			wantErr: graph.ErrCycleDetected,
		},
		{
			name: "duplicate graph id across files",
			file: `
graph "good" {
  node "b" {
    type   = "core.constant"
    config = { value = 2 }
  }
}
`,
			wantErr: hcl.ErrDuplicateGraph,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			files := map[string]string{"a_good.hcl": goodGraph, "b_bad.hcl": tc.file}

			// --- Act ---
			result := testutil.RunIntegrationTest(t, files, app.Config{})

			// --- Assert ---
			assert.ErrorIs(t, result.Err, tc.wantErr)
			assert.Empty(t, result.App.Engine().ListGraphs())
			assert.Empty(t, result.Output)
		})
	}
}
