package testutil

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/circuitgo/internal/app"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest runs RunIntegrationTestWithContext with a background
// context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, modules...)
}

// RunIntegrationTestWithContext writes files into a fresh directory, points
// cfg at it and runs the app end to end. The core catalog is always
// registered; modules are added on top of it.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	root := WriteFiles(t, files)
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{root}
	} else {
		for i, p := range cfg.Paths {
			cfg.Paths[i] = filepath.Join(root, p)
		}
	}
	cfg.LogLevel = "debug"
	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &app.SafeBuffer{}, &app.SafeBuffer{}
	mods := append(app.CoreModules(slog.New(slog.DiscardHandler), out), modules...)
	testApp, err := app.NewApp(out, logs, config, mods...)
	require.NoError(t, err)

	runErr := testApp.Run(ctx)

	if os.Getenv("CIRCUITGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}

// WriteFiles writes each file, keyed by its relative path, under a temporary
// directory and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// GraphResult mirrors one entry of the app's JSON output.
type GraphResult struct {
	Graph   string                            `json:"graph"`
	OK      bool                              `json:"ok"`
	Outputs map[string]map[string]value.Value `json:"outputs"`
	Error   string                            `json:"error"`
	Failed  map[string]string                 `json:"failed"`
	Skipped []string                          `json:"skipped"`
}

// Results decodes Output, which requires the run to use JSON output.
func (r *HarnessResult) Results(t *testing.T) map[string]GraphResult {
	t.Helper()

	var results []GraphResult
	require.NoError(t, json.Unmarshal([]byte(r.Output), &results), "output: %s", r.Output)
	byID := make(map[string]GraphResult, len(results))
	for _, res := range results {
		byID[res.Graph] = res
	}
	return byID
}
