package qdg

import (
	"fmt"
	"strings"

	"github.com/qstatic/qslice/internal/ir"
)

// EdgeKind tags a dependency edge as either sequential order on one wire or
// coupling introduced by an entangling gate.
type EdgeKind string

const (
	// EdgeWire links consecutive operations on the same qubit.
	EdgeWire EdgeKind = "wire"
	// EdgeEntangle links the latest operation of an entangled partner wire
	// to a gate whose result depends on the whole group's history.
	EdgeEntangle EdgeKind = "entangle"
)

// Node is one operation in the graph. It is created exactly once, in
// program order, and never mutated afterwards.
type Node struct {
	ID string
	Op ir.Operation

	// preds and succs hold the adjacent nodes, keyed by ID. They are
	// un-exported so the graph can only grow through the builder.
	preds map[string]*Node
	succs map[string]*Node
}

// Label is the human-readable form used by exporters: gate plus operands.
func (n *Node) Label() string {
	label := fmt.Sprintf("%s %s", n.Op.Gate, strings.Join(n.Op.Qubits, ","))
	if n.Op.Bit != "" {
		label += " -> " + n.Op.Bit
	}
	return label
}

// nodeID derives the stable identifier of an operation. (line, ordinal) is
// unique per program, so the ID is too.
func nodeID(op ir.Operation) string {
	return fmt.Sprintf("%s(%s)@%d#%d", op.Gate, strings.Join(op.Qubits, ","), op.Line, op.Ordinal)
}

// Edge is a directed dependency between two operations.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Graph is the Quantum Dependency Graph. It is write-once: the builder
// populates it and callers afterwards only read.
type Graph struct {
	nodes map[string]*Node
	// order keeps nodes in program order; edges keeps insertion order so
	// exports are deterministic.
	order []*Node
	edges []Edge
	// edgeKinds indexes edges by endpoint pair for dedup and induced-edge
	// lookup. The first edge added between a pair wins.
	edgeKinds map[[2]string]EdgeKind
	// wires indexes nodes per qubit identity, in program order.
	wires     map[string][]*Node
	wireOrder []string
}

func newGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		edgeKinds: make(map[[2]string]EdgeKind),
		wires:     make(map[string][]*Node),
	}
}

func (g *Graph) addNode(op ir.Operation) *Node {
	n := &Node{
		ID:    nodeID(op),
		Op:    op,
		preds: make(map[string]*Node),
		succs: make(map[string]*Node),
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n)
	for _, q := range op.Qubits {
		if _, seen := g.wires[q]; !seen {
			g.wireOrder = append(g.wireOrder, q)
		}
		g.wires[q] = append(g.wires[q], n)
	}
	return n
}

// addEdge records a dependency. A second edge between the same pair is
// dropped: a wire edge added in the same step already carries the
// dependency an entanglement edge would duplicate.
func (g *Graph) addEdge(from, to *Node, kind EdgeKind) {
	key := [2]string{from.ID, to.ID}
	if _, exists := g.edgeKinds[key]; exists {
		return
	}
	g.edgeKinds[key] = kind
	g.edges = append(g.edges, Edge{From: from.ID, To: to.ID, Kind: kind})
	from.succs[to.ID] = to
	to.preds[from.ID] = from
}
