// Package visualization generates Graphviz DOT representations of a traffic
// signal's phase machine.
package visualization

import (
	"bytes"
	"fmt"
	"os"

	"github.com/anggasct/stoplight"
)

// DOTGenerator generates Graphviz DOT format representations of a signal
type DOTGenerator struct {
	signal  *stoplight.TrafficSignal
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	HighlightCurrent bool
	ShowCycleBounds  bool
	RankDirection    string // "TB", "LR", "BT", "RL"
	NodeShape        string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		HighlightCurrent: true,
		ShowCycleBounds:  true,
		RankDirection:    "LR",
		NodeShape:        "circle",
	}
}

// NewDOTGenerator creates a new DOT generator for the given signal
func NewDOTGenerator(signal *stoplight.TrafficSignal, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		signal:  signal,
		options: opts,
	}
}

// Generate renders the signal's two-state machine as a DOT digraph. The
// current phase is highlighted with its colour when HighlightCurrent is set.
func (g *DOTGenerator) Generate() string {
	var buf bytes.Buffer

	buf.WriteString("digraph stoplight {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", g.options.RankDirection)

	current := g.signal.CurrentPhase()
	for _, phase := range []stoplight.Phase{stoplight.Red, stoplight.Green} {
		attrs := fmt.Sprintf("shape=%s", g.options.NodeShape)
		if g.options.HighlightCurrent && phase == current {
			attrs += fmt.Sprintf(", style=filled, fillcolor=%s", fillColor(phase))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", phase, attrs)
	}

	label := ""
	if g.options.ShowCycleBounds {
		cfg := g.signal.Config()
		label = fmt.Sprintf(" [label=\"%v-%v\"]", cfg.MinCycle, cfg.MaxCycle)
	}
	fmt.Fprintf(&buf, "  %s -> %s%s;\n", stoplight.Red, stoplight.Green, label)
	fmt.Fprintf(&buf, "  %s -> %s%s;\n", stoplight.Green, stoplight.Red, label)

	buf.WriteString("}\n")
	return buf.String()
}

// SaveToFile writes the DOT representation to the given path
func (g *DOTGenerator) SaveToFile(path string) error {
	return os.WriteFile(path, []byte(g.Generate()), 0644)
}

// fillColor maps a phase to its Graphviz fill colour
func fillColor(phase stoplight.Phase) string {
	if phase == stoplight.Green {
		return "palegreen"
	}
	return "lightcoral"
}
