// Package visualization renders fsm machine definitions as Graphviz DOT.
package visualization

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anggasct/signalctl/fsm"
)

// DOTGenerator generates Graphviz DOT format representations of state machines
type DOTGenerator struct {
	machineDefinition fsm.MachineDefinition
	options           DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	Title         string
	ShowEvents    bool
	MarkGuards    bool
	RankDirection string // "TB", "LR", "BT", "RL"
	NodeShape     string
	// Labels maps state IDs to display labels; missing IDs use the ID
	Labels map[string]string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		Title:         "StateMachine",
		ShowEvents:    true,
		MarkGuards:    true,
		RankDirection: "TB",
		NodeShape:     "box",
	}
}

// NewDOTGenerator creates a new DOT generator for the given machine definition
func NewDOTGenerator(machineDefinition fsm.MachineDefinition, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		machineDefinition: machineDefinition,
		options:           opts,
	}
}

// Generate creates a DOT representation of the state machine.
// States and edges are emitted in declaration order so output is stable.
func (g *DOTGenerator) Generate() (string, error) {
	var dot strings.Builder

	title := g.options.Title
	if title == "" {
		title = "StateMachine"
	}
	rankdir := g.options.RankDirection
	if rankdir == "" {
		rankdir = "TB"
	}
	switch rankdir {
	case "TB", "LR", "BT", "RL":
	default:
		return "", fmt.Errorf("invalid rank direction %q", rankdir)
	}

	fmt.Fprintf(&dot, "digraph %s {\n", quoteID(title))
	fmt.Fprintf(&dot, "  rankdir=%s;\n", rankdir)
	dot.WriteString("  node [shape=box];\n")
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateStates(&dot)
	g.generateTransitions(&dot)

	dot.WriteString("}\n")

	return dot.String(), nil
}

func (g *DOTGenerator) generateStates(dot *strings.Builder) {
	initialState := g.machineDefinition.InitialState()

	dot.WriteString("  // States\n")
	for _, state := range g.machineDefinition.GetStates() {
		g.generateStateNode(dot, state, state.ID() == initialState)
	}
	dot.WriteString("\n")
}

func (g *DOTGenerator) generateStateNode(dot *strings.Builder, state fsm.State, isInitial bool) {
	shape := g.options.NodeShape
	if shape == "" {
		shape = "box"
	}
	fillColor := "lightblue"
	label := state.ID()
	if custom, ok := g.options.Labels[state.ID()]; ok {
		label = custom
	}

	if isInitial {
		fillColor = "lightgreen"
		label += "\\n(initial)"
	}

	if state.IsFinal() {
		shape = "doublecircle"
		fillColor = "lightcoral"
	}

	fmt.Fprintf(dot, "  %s [shape=%s style=\"filled\" fillcolor=%s label=%s];\n",
		quoteID(state.ID()), shape, fillColor, quoteID(label))
}

func (g *DOTGenerator) generateTransitions(dot *strings.Builder) {
	dot.WriteString("  // Transitions\n")

	for _, t := range g.machineDefinition.GetTransitions() {
		var attrs []string
		if g.options.ShowEvents {
			label := t.EventName
			if g.options.MarkGuards && t.Guard != nil {
				label += " [guarded]"
			}
			attrs = append(attrs, "label="+quoteID(label))
		}
		if t.IsSelf() {
			attrs = append(attrs, "dir=back")
		}

		if len(attrs) == 0 {
			fmt.Fprintf(dot, "  %s -> %s;\n", quoteID(t.SourceState), quoteID(t.TargetState))
			continue
		}
		fmt.Fprintf(dot, "  %s -> %s [%s];\n", quoteID(t.SourceState), quoteID(t.TargetState), strings.Join(attrs, " "))
	}
}

// WriteTo writes the DOT representation to w
func (g *DOTGenerator) WriteTo(w io.Writer) (int64, error) {
	content, err := g.Generate()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, content)
	return int64(n), err
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

func quoteID(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
