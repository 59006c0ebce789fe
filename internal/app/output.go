package app

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/engine"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorAmber = lipgloss.Color("220")
	colorDim   = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleWarning = lipgloss.NewStyle().Foreground(colorAmber)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconSkipped = "-"
)

// resultJSON is the wire form of a RunResult, shared by the CLI and the
// inspection server.
type resultJSON struct {
	Graph   string            `json:"graph"`
	RunID   string            `json:"run_id,omitempty"`
	OK      bool              `json:"ok"`
	Outputs engine.Results    `json:"outputs"`
	Error   string            `json:"error,omitempty"`
	Failed  map[string]string `json:"failed,omitempty"`
	Skipped []string          `json:"skipped,omitempty"`
}

func toJSON(r RunResult) resultJSON {
	out := resultJSON{Graph: r.GraphID, OK: r.Err == nil, Outputs: r.Outputs}
	if out.Outputs == nil {
		out.Outputs = engine.Results{}
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	if r.Report != nil {
		out.RunID = r.Report.RunID
		out.Skipped = r.Report.Skipped
		if len(r.Report.Failed) > 0 {
			out.Failed = make(map[string]string, len(r.Report.Failed))
			for id, err := range r.Report.Failed {
				out.Failed[id] = err.Error()
			}
		}
	}
	return out
}

// PrintResults writes results as styled text or as a JSON array.
func PrintResults(w io.Writer, format string, results []RunResult) error {
	if format == OutputJSON {
		out := make([]resultJSON, len(results))
		for i, r := range results {
			out[i] = toJSON(r)
		}
		return writeJSON(w, out)
	}

	for _, r := range results {
		printResultText(w, r)
	}
	return nil
}

func printResultText(w io.Writer, r RunResult) {
	if r.Err == nil {
		fmt.Fprintf(w, "%s %s\n", styleSuccess.Render(iconSuccess), styleTitle.Render(r.GraphID))
	} else {
		fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), styleTitle.Render(r.GraphID))
	}

	for _, node := range slices.Sorted(maps.Keys(r.Outputs)) {
		ports := r.Outputs[node]
		for _, port := range ports.Keys() {
			fmt.Fprintf(w, "  %s = %s\n", styleDim.Render(node+"."+port), ports[port])
		}
	}

	if r.Report != nil {
		for _, id := range r.Report.Order {
			if err, ok := r.Report.Failed[id]; ok {
				fmt.Fprintf(w, "  %s %s\n", styleError.Render(iconError), err)
			}
		}
		for _, id := range r.Report.Skipped {
			fmt.Fprintf(w, "  %s %s\n", styleWarning.Render(iconSkipped), styleDim.Render("skipped "+id))
		}
		return
	}
	if r.Err != nil {
		fmt.Fprintf(w, "  %s\n", styleError.Render(r.Err.Error()))
	}
}

func printValidation(w io.Writer, id string, err error) {
	if err == nil {
		fmt.Fprintf(w, "%s %s\n", styleSuccess.Render(iconSuccess), styleTitle.Render(id))
		return
	}
	fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), styleTitle.Render(id))
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(w, "  %s\n", styleError.Render(line))
	}
}

// PrintBlocks lists block metadata as text or JSON.
func PrintBlocks(w io.Writer, format string, blocks []block.Metadata) error {
	if format == OutputJSON {
		return writeJSON(w, blocks)
	}
	for _, m := range blocks {
		fmt.Fprintf(w, "%s  %s\n", styleTitle.Render(m.ID), styleDim.Render(m.Description))
		printPorts(w, "in ", m.Inputs)
		printPorts(w, "out", m.Outputs)
	}
	return nil
}

func printPorts(w io.Writer, dir string, ports []block.PortDefinition) {
	for _, p := range ports {
		opt := ""
		if !p.Required {
			opt = styleDim.Render(" (optional)")
		}
		fmt.Fprintf(w, "  %s %s: %s%s\n", styleDim.Render(dir), p.ID, p.DataType, opt)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
