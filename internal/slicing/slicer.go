package slicing

import (
	"sort"

	"github.com/qstatic/qslice/internal/qdg"
)

// ReasonKind explains how a node ended up in a slice.
type ReasonKind string

const (
	// ReasonCriterion marks the start node itself.
	ReasonCriterion ReasonKind = "criterion"
	// ReasonWire and ReasonEntangle name the kind of edge the node was
	// first reached through during traversal.
	ReasonWire     ReasonKind = "wire"
	ReasonEntangle ReasonKind = "entangle"
)

// Member is one slice element together with its explanation: the edge kind
// it was first reached through and the neighbor it was reached from. For a
// backward slice Via points one hop toward the criterion; for a forward
// slice it points one hop back toward the source.
type Member struct {
	Node   *qdg.Node
	Reason ReasonKind
	Via    *qdg.Node // nil for the start node
}

// Slice is the result of one query: the reachable node set plus the edges
// of the QDG induced on it. It is computed fresh per query and holds no
// mutable graph state.
type Slice struct {
	Criterion Criterion
	Direction Direction
	Start     *qdg.Node

	graph   *qdg.Graph
	members map[string]Member
}

// Compute runs a breadth-first reachability traversal from the start node,
// against edge direction for a backward slice and along it for a forward
// slice. Wire and entanglement edges participate equally: entanglement
// edges exist precisely so influence through shared quantum state shows up
// in the slice.
func Compute(g *qdg.Graph, start *qdg.Node, dir Direction) *Slice {
	s := &Slice{
		Direction: dir,
		Start:     start,
		graph:     g,
		members:   make(map[string]Member),
	}
	s.members[start.ID] = Member{Node: start, Reason: ReasonCriterion}

	queue := []*qdg.Node{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var neighbors []*qdg.Node
		if dir == Backward {
			neighbors = g.Predecessors(current.ID)
		} else {
			neighbors = g.Successors(current.ID)
		}

		for _, next := range neighbors {
			if _, seen := s.members[next.ID]; seen {
				continue
			}
			s.members[next.ID] = Member{
				Node:   next,
				Reason: reasonFor(g, current, next, dir),
				Via:    current,
			}
			queue = append(queue, next)
		}
	}
	return s
}

// reasonFor looks up the kind of the QDG edge crossed to reach next from
// current. The stored edge always points in program order, so a backward
// step inspects (next -> current).
func reasonFor(g *qdg.Graph, current, next *qdg.Node, dir Direction) ReasonKind {
	var kind qdg.EdgeKind
	var ok bool
	if dir == Backward {
		kind, ok = g.EdgeBetween(next.ID, current.ID)
	} else {
		kind, ok = g.EdgeBetween(current.ID, next.ID)
	}
	if !ok {
		// Unreachable: traversal only follows existing edges.
		return ReasonKind("unknown")
	}
	if kind == qdg.EdgeEntangle {
		return ReasonEntangle
	}
	return ReasonWire
}

// Run resolves a criterion and computes the slice in one call. On
// CriterionNotFound no slice is produced.
func Run(g *qdg.Graph, c Criterion, dir Direction) (*Slice, error) {
	start, err := Resolve(g, c)
	if err != nil {
		return nil, err
	}
	s := Compute(g, start, dir)
	s.Criterion = c
	return s, nil
}

// Contains reports slice membership by node ID.
func (s *Slice) Contains(id string) bool {
	_, ok := s.members[id]
	return ok
}

// Len is the number of operations in the slice.
func (s *Slice) Len() int {
	return len(s.members)
}

// Members returns the slice elements sorted by (line, ordinal). The slice
// itself is a set; this ordering is a convenience for consumers that need
// stable output.
func (s *Slice) Members() []Member {
	out := make([]Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Node.Op, out[j].Node.Op
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Ordinal < b.Ordinal
	})
	return out
}

// Nodes returns the member nodes sorted by (line, ordinal).
func (s *Slice) Nodes() []*qdg.Node {
	members := s.Members()
	out := make([]*qdg.Node, len(members))
	for i, m := range members {
		out[i] = m.Node
	}
	return out
}

// NodeIDs returns the sorted member IDs, following the member ordering.
func (s *Slice) NodeIDs() []string {
	members := s.Members()
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Node.ID
	}
	return out
}

// Edges returns the QDG edges with both endpoints inside the slice, in the
// graph's construction order.
func (s *Slice) Edges() []qdg.Edge {
	var out []qdg.Edge
	for _, e := range s.graph.Edges() {
		if s.Contains(e.From) && s.Contains(e.To) {
			out = append(out, e)
		}
	}
	return out
}
