package integration_tests

import (
	"testing"

	"github.com/specialistvlad/circuitgo/internal/app"
	"github.com/specialistvlad/circuitgo/internal/graph"
	"github.com/specialistvlad/circuitgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: invalid hcl is rejected
func TestErrorHandling_InvalidHCL_IsRejected(t *testing.T) {
	// --- Arrange ---
	// A missing closing brace.
	invalidHCL := `
graph "broken" {
  node "a" {
    type = "core.constant"
`

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": invalidHCL}, app.Config{})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorContains(t, result.Err, "failed to parse")
	assert.Empty(t, result.App.Engine().ListGraphs())
}

// Test for: a connection to an undeclared node is rejected at load time.
func TestErrorHandling_DanglingConnection_IsRejected(t *testing.T) {
	// --- Arrange ---
	hcl := `
graph "dangling" {
  node "a" {
    type   = "core.constant"
    config = { value = 1 }
  }

  connect {
    from = a.value
    to   = ghost.input
  }
}
`

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": hcl}, app.Config{})

	// --- Assert ---
	assert.ErrorIs(t, result.Err, graph.ErrNodeNotFound)
	assert.ErrorContains(t, result.Err, "ghost")
	assert.ErrorContains(t, result.Err, "main.hcl")
}
