package qdg

import (
	"fmt"
	"sort"
)

// Node looks up an operation by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every operation in program order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	copy(out, g.order)
	return out
}

// Len is the number of operations in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Edges returns every dependency edge in construction order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// EdgeBetween reports the kind of the edge from one node to another, if any.
func (g *Graph) EdgeBetween(from, to string) (EdgeKind, bool) {
	kind, ok := g.edgeKinds[[2]string{from, to}]
	return kind, ok
}

// Wires returns the qubit identities touched by the program, in first-touch
// order.
func (g *Graph) Wires() []string {
	out := make([]string, len(g.wireOrder))
	copy(out, g.wireOrder)
	return out
}

// NodesOnWire returns the operations touching one qubit, in program order.
func (g *Graph) NodesOnWire(qubit string) []*Node {
	nodes := g.wires[qubit]
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	return out
}

// Predecessors returns the direct dependencies of a node, ordered by
// (line, ordinal) for deterministic traversal.
func (g *Graph) Predecessors(id string) []*Node {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return sortedNeighbors(n.preds)
}

// Successors returns the direct dependents of a node, ordered by
// (line, ordinal).
func (g *Graph) Successors(id string) []*Node {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return sortedNeighbors(n.succs)
}

func sortedNeighbors(m map[string]*Node) []*Node {
	out := make([]*Node, 0, len(m))
	for _, n := range m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Op.Line != out[j].Op.Line {
			return out[i].Op.Line < out[j].Op.Line
		}
		return out[i].Op.Ordinal < out[j].Op.Ordinal
	})
	return out
}

// detectCycles checks the finished graph with a DFS over predecessor edges.
// Program-order construction makes a cycle impossible, so a hit here means
// a builder bug rather than bad input.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		visiting[n.ID] = true
		for _, dep := range n.preds {
			if visiting[dep.ID] {
				return fmt.Errorf("cycle detected involving '%s'", dep.ID)
			}
			if !visited[dep.ID] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, n.ID)
		visited[n.ID] = true
		return nil
	}

	for _, n := range g.order {
		if !visited[n.ID] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
