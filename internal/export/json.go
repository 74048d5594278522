package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/qstatic/qslice/internal/qdg"
	"github.com/qstatic/qslice/internal/slicing"
)

// GraphNode is one operation in the JSON graph dump. InSlice is only
// populated when the export was given a slice to annotate with.
type GraphNode struct {
	ID      string   `json:"id"`
	Gate    string   `json:"gate"`
	Qubits  []string `json:"qubits"`
	Bit     string   `json:"bit,omitempty"`
	Line    int      `json:"line"`
	Ordinal int      `json:"ordinal"`
	InSlice *bool    `json:"in_slice,omitempty"`
}

// GraphEdge is one dependency in the JSON graph dump.
type GraphEdge struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Kind    string `json:"kind"`
	InSlice *bool  `json:"in_slice,omitempty"`
}

// GraphDoc is the full QDG export document.
type GraphDoc struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphJSON renders the QDG as an indented JSON document. When sl is
// non-nil every node and edge carries an in_slice marker.
func GraphJSON(g *qdg.Graph, sl *slicing.Slice) ([]byte, error) {
	doc := GraphDoc{}

	for _, n := range g.Nodes() {
		gn := GraphNode{
			ID:      n.ID,
			Gate:    n.Op.Gate,
			Qubits:  n.Op.Qubits,
			Bit:     n.Op.Bit,
			Line:    n.Op.Line,
			Ordinal: n.Op.Ordinal,
		}
		if sl != nil {
			in := sl.Contains(n.ID)
			gn.InSlice = &in
		}
		doc.Nodes = append(doc.Nodes, gn)
	}

	for _, e := range g.Edges() {
		ge := GraphEdge{From: e.From, To: e.To, Kind: string(e.Kind)}
		if sl != nil {
			in := sl.Contains(e.From) && sl.Contains(e.To)
			ge.InSlice = &in
		}
		doc.Edges = append(doc.Edges, ge)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// SliceMember is one slice element in the result document, with its
// direction-aware explanation.
type SliceMember struct {
	ID      string   `json:"id"`
	Gate    string   `json:"gate"`
	Qubits  []string `json:"qubits"`
	Bit     string   `json:"bit,omitempty"`
	Line    int      `json:"line"`
	Ordinal int      `json:"ordinal"`
	Reason  string   `json:"reason"`
	Via     string   `json:"via,omitempty"`
}

// SliceDoc is the structured slice result: the criterion, the member list
// sorted by (line, ordinal), and the distinct qubits and lines the slice
// covers.
type SliceDoc struct {
	Criterion struct {
		Qubit     string `json:"qubit"`
		Line      int    `json:"line"`
		Direction string `json:"direction"`
	} `json:"criterion"`
	Members []SliceMember `json:"members"`
	Qubits  []string      `json:"slice_qubits"`
	Lines   []int         `json:"slice_lines"`
}

// SliceJSON renders a slice result as an indented JSON document.
func SliceJSON(sl *slicing.Slice) ([]byte, error) {
	doc := SliceDoc{}
	doc.Criterion.Qubit = sl.Criterion.Qubit
	doc.Criterion.Line = sl.Criterion.Line
	doc.Criterion.Direction = string(sl.Direction)

	qubits := make(map[string]bool)
	lines := make(map[int]bool)

	for _, m := range sl.Members() {
		sm := SliceMember{
			ID:      m.Node.ID,
			Gate:    m.Node.Op.Gate,
			Qubits:  m.Node.Op.Qubits,
			Bit:     m.Node.Op.Bit,
			Line:    m.Node.Op.Line,
			Ordinal: m.Node.Op.Ordinal,
			Reason:  string(m.Reason),
		}
		if m.Via != nil {
			sm.Via = m.Via.ID
		}
		doc.Members = append(doc.Members, sm)

		lines[m.Node.Op.Line] = true
		for _, q := range m.Node.Op.Qubits {
			qubits[q] = true
		}
	}

	for q := range qubits {
		doc.Qubits = append(doc.Qubits, q)
	}
	sort.Strings(doc.Qubits)
	for l := range lines {
		doc.Lines = append(doc.Lines, l)
	}
	sort.Ints(doc.Lines)

	return json.MarshalIndent(doc, "", "  ")
}

// WriteGraphJSON writes the QDG dump to disk.
func WriteGraphJSON(path string, g *qdg.Graph, sl *slicing.Slice) error {
	data, err := GraphJSON(g, sl)
	if err != nil {
		return fmt.Errorf("failed to encode QDG export: %w", err)
	}
	return writeFile(path, data)
}

// WriteSliceJSON writes the slice result to disk.
func WriteSliceJSON(path string, sl *slicing.Slice) error {
	data, err := SliceJSON(sl)
	if err != nil {
		return fmt.Errorf("failed to encode slice result: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
