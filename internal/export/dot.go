package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/qstatic/qslice/internal/qdg"
	"github.com/qstatic/qslice/internal/slicing"
)

// DOT renders the QDG as a Graphviz digraph: time flows left to right,
// wire edges are solid, entanglement edges dashed and thicker, and slice
// members (when a slice is given) are filled light gray.
func DOT(g *qdg.Graph, sl *slicing.Slice) string {
	var sb strings.Builder
	sb.WriteString("digraph QDG {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, fontsize=10];\n")

	// Nodes in program order; IDs are compacted to n0..nN for readability.
	index := make(map[string]int, g.Len())
	for i, n := range g.Nodes() {
		index[n.ID] = i
		label := fmt.Sprintf("%s\\nl%d", escapeDOT(n.Label()), n.Op.Line)
		if sl != nil && sl.Contains(n.ID) {
			fmt.Fprintf(&sb, "  n%d [style=\"filled\", fillcolor=\"lightgray\", label=\"%s\"];\n", i, label)
		} else {
			fmt.Fprintf(&sb, "  n%d [label=\"%s\"];\n", i, label)
		}
	}

	for _, e := range g.Edges() {
		if e.Kind == qdg.EdgeEntangle {
			fmt.Fprintf(&sb, "  n%d -> n%d [style=\"dashed\", penwidth=2];\n", index[e.From], index[e.To])
		} else {
			fmt.Fprintf(&sb, "  n%d -> n%d [style=\"solid\"];\n", index[e.From], index[e.To])
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// WriteDOT writes the Graphviz rendering to disk.
func WriteDOT(path string, g *qdg.Graph, sl *slicing.Slice) error {
	if err := os.WriteFile(path, []byte(DOT(g, sl)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
