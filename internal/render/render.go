// Package render draws a circuit-style view of the QDG on the terminal:
// one row per qubit wire, one column per operation, with slice members
// highlighted when a slice is supplied.
package render

import (
	"fmt"
	"strings"

	"github.com/qstatic/qslice/internal/qdg"
	"github.com/qstatic/qslice/internal/slicing"
)

// Circuit renders the whole program. Wires appear in first-touch order,
// operations in program order. Pass a nil slice for an unannotated view.
func Circuit(g *qdg.Graph, sl *slicing.Slice) string {
	wires := g.Wires()
	nodes := g.Nodes()

	labelW := 0
	for _, w := range wires {
		if len(w) > labelW {
			labelW = len(w)
		}
	}

	var sb strings.Builder
	for _, wire := range wires {
		label := fmt.Sprintf("%*s ", labelW, wire)
		sb.WriteString(qubitLabelStyle.Render(label))
		for _, n := range nodes {
			sb.WriteString(cell(n, wire, sl))
		}
		sb.WriteString("\n")
	}

	if sl != nil {
		sb.WriteString(legendStyle.Render(fmt.Sprintf(
			"%s slice of %s @ line %d: %d of %d operations",
			sl.Direction, sl.Criterion.Qubit, sl.Criterion.Line, sl.Len(), g.Len())))
		sb.WriteString("\n")
	}
	return sb.String()
}

// cell draws one column of one wire row, exactly cellW visual characters.
func cell(n *qdg.Node, wire string, sl *slicing.Slice) string {
	touches := false
	for _, q := range n.Op.Qubits {
		if q == wire {
			touches = true
			break
		}
	}
	if !touches {
		return wireStyle.Render(strings.Repeat("─", cellW))
	}

	style := gateStyle
	if n.Op.IsMeasure() {
		style = measureStyle
	}
	if sl != nil && sl.Contains(n.ID) {
		style = sliceStyle
	}

	return padWire(style.Render(glyph(n, wire)), visibleGlyphLen(n, wire))
}

// glyph picks the symbol shown where an operation crosses a wire: the gate
// name on its primary operand, a control dot on the extra operands of a
// multi-qubit gate, M for measurements.
func glyph(n *qdg.Node, wire string) string {
	if n.Op.IsMeasure() {
		return "M"
	}
	if len(n.Op.Qubits) >= 2 && n.Op.Qubits[0] == wire {
		return "●"
	}
	name := n.Op.Gate
	if len(name) > cellW-4 {
		name = name[:cellW-4]
	}
	return name
}

func visibleGlyphLen(n *qdg.Node, wire string) int {
	if n.Op.IsMeasure() || (len(n.Op.Qubits) >= 2 && n.Op.Qubits[0] == wire) {
		return 1
	}
	name := n.Op.Gate
	if len(name) > cellW-4 {
		return cellW - 4
	}
	return len(name)
}

// padWire centres a rendered glyph inside a run of wire dashes. The glyph
// may carry ANSI escapes, so its visible width is passed in explicitly.
func padWire(rendered string, visible int) string {
	total := cellW - visible
	left := total / 2
	right := total - left
	return wireStyle.Render(strings.Repeat("─", left)) + rendered + wireStyle.Render(strings.Repeat("─", right))
}
