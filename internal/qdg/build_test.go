package qdg

import (
	"context"
	"log/slog"
	"testing"

	"github.com/qstatic/qslice/internal/ctxlog"
	"github.com/qstatic/qslice/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.Default())
}

func scalars(names ...string) []ir.QubitDecl {
	decls := make([]ir.QubitDecl, len(names))
	for i, n := range names {
		decls[i] = ir.QubitDecl{Name: n}
	}
	return decls
}

func op(gate string, line int, qubits ...string) ir.Operation {
	return ir.Operation{Gate: gate, Line: line, Qubits: qubits}
}

func TestBuild_WireEdges(t *testing.T) {
	prog := &ir.Program{
		Qubits: scalars("a"),
		Ops: []ir.Operation{
			op("h", 1, "a"),
			op("x", 2, "a"),
			op("measure", 3, "a"),
		},
	}

	g, err := Build(testCtx(), prog)
	require.NoError(t, err)

	require.Equal(t, 3, g.Len())
	nodes := g.NodesOnWire("a")
	require.Len(t, nodes, 3)

	// The wire chain reproduces program-text order.
	kind, ok := g.EdgeBetween(nodes[0].ID, nodes[1].ID)
	require.True(t, ok)
	assert.Equal(t, EdgeWire, kind)
	kind, ok = g.EdgeBetween(nodes[1].ID, nodes[2].ID)
	require.True(t, ok)
	assert.Equal(t, EdgeWire, kind)

	_, ok = g.EdgeBetween(nodes[0].ID, nodes[2].ID)
	assert.False(t, ok, "wire edges connect only consecutive operations")
}

func TestBuild_EdgesFollowProgramOrder(t *testing.T) {
	// Every edge must point from an earlier operation to a later one; this
	// is what makes the graph acyclic by construction.
	prog := &ir.Program{
		Qubits: scalars("q1", "q2", "q3"),
		Ops: []ir.Operation{
			op("h", 1, "q1"),
			op("h", 2, "q2"),
			op("cx", 3, "q1", "q2"),
			op("cx", 4, "q2", "q3"),
			op("measure", 5, "q1"),
			op("measure", 6, "q2"),
			op("measure", 7, "q3"),
		},
	}

	g, err := Build(testCtx(), prog)
	require.NoError(t, err)

	index := make(map[string]int)
	for i, n := range g.Nodes() {
		index[n.ID] = i
	}
	for _, e := range g.Edges() {
		assert.Less(t, index[e.From], index[e.To],
			"edge %s -> %s goes against program order", e.From, e.To)
	}
}

func TestBuild_EntanglementEdge(t *testing.T) {
	// After cx a,b the wires of a and b are coupled: a later gate touching
	// b and a third wire depends on a's latest operation too, even though
	// it never names a.
	prog := &ir.Program{
		Qubits: scalars("a", "b", "c"),
		Ops: []ir.Operation{
			op("h", 1, "a"),
			op("cx", 2, "a", "b"),
			op("x", 3, "a"),
			op("cx", 4, "b", "c"),
		},
	}

	g, err := Build(testCtx(), prog)
	require.NoError(t, err)

	xA := g.NodesOnWire("a")[2]
	cxBC := g.NodesOnWire("b")[1]
	require.Equal(t, "x", xA.Op.Gate)
	require.Equal(t, 4, cxBC.Op.Line)

	kind, ok := g.EdgeBetween(xA.ID, cxBC.ID)
	require.True(t, ok, "expected an edge from x a to cx b,c")
	assert.Equal(t, EdgeEntangle, kind)
}

func TestBuild_WireEdgeWinsOverEntanglement(t *testing.T) {
	// When the entangled partner's last writer is already a direct wire
	// predecessor, no duplicate entanglement edge is added.
	prog := &ir.Program{
		Qubits: scalars("q1", "q2", "q3"),
		Ops: []ir.Operation{
			op("cx", 1, "q1", "q2"),
			op("cx", 2, "q2", "q3"),
		},
	}

	g, err := Build(testCtx(), prog)
	require.NoError(t, err)

	cx12 := g.Nodes()[0]
	cx23 := g.Nodes()[1]
	kind, ok := g.EdgeBetween(cx12.ID, cx23.ID)
	require.True(t, ok)
	assert.Equal(t, EdgeWire, kind)

	for _, e := range g.Edges() {
		assert.NotEqual(t, EdgeEntangle, e.Kind)
	}
}

func TestBuild_MeasurementDetachesQubit(t *testing.T) {
	// Measuring b collapses it: operations on b after the measurement no
	// longer feed entanglement edges into gates on b's former partners.
	base := []ir.Operation{
		op("cx", 1, "a", "b"),
	}

	t.Run("without measurement the partner history propagates", func(t *testing.T) {
		prog := &ir.Program{
			Qubits: scalars("a", "b", "c"),
			Ops: append(append([]ir.Operation{}, base...),
				op("x", 2, "b"),
				op("cx", 3, "a", "c"),
			),
		}
		g, err := Build(testCtx(), prog)
		require.NoError(t, err)

		xB := g.NodesOnWire("b")[1]
		cxAC := g.NodesOnWire("c")[0]
		kind, ok := g.EdgeBetween(xB.ID, cxAC.ID)
		require.True(t, ok)
		assert.Equal(t, EdgeEntangle, kind)
	})

	t.Run("measurement stops the propagation", func(t *testing.T) {
		prog := &ir.Program{
			Qubits: scalars("a", "b", "c"),
			Ops: append(append([]ir.Operation{}, base...),
				op("measure", 2, "b"),
				op("x", 3, "b"),
				op("cx", 4, "a", "c"),
			),
		}
		g, err := Build(testCtx(), prog)
		require.NoError(t, err)

		xB := g.NodesOnWire("b")[2]
		cxAC := g.NodesOnWire("c")[0]
		_, ok := g.EdgeBetween(xB.ID, cxAC.ID)
		assert.False(t, ok, "post-measurement operations on b must not couple into a's gates")
	})
}

func TestBuild_ErrorCases(t *testing.T) {
	t.Run("unresolved qubit", func(t *testing.T) {
		prog := &ir.Program{
			Qubits: scalars("a"),
			Ops:    []ir.Operation{op("h", 1, "ghost")},
		}
		_, err := Build(testCtx(), prog)
		require.Error(t, err)

		var unresolved *ir.UnresolvedQubitError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, "ghost", unresolved.Ref)
		assert.Equal(t, 1, unresolved.Line)
	})

	t.Run("missing gate name", func(t *testing.T) {
		prog := &ir.Program{
			Qubits: scalars("a"),
			Ops:    []ir.Operation{op("", 1, "a")},
		}
		_, err := Build(testCtx(), prog)

		var malformed *ir.MalformedOperationError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("missing operands", func(t *testing.T) {
		prog := &ir.Program{
			Qubits: scalars("a"),
			Ops:    []ir.Operation{op("h", 1)},
		}
		_, err := Build(testCtx(), prog)

		var malformed *ir.MalformedOperationError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("duplicate operand", func(t *testing.T) {
		prog := &ir.Program{
			Qubits: scalars("a"),
			Ops:    []ir.Operation{op("cx", 1, "a", "a")},
		}
		_, err := Build(testCtx(), prog)

		var malformed *ir.MalformedOperationError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("multi-qubit measurement", func(t *testing.T) {
		prog := &ir.Program{
			Qubits: scalars("a", "b"),
			Ops:    []ir.Operation{op("measure", 1, "a", "b")},
		}
		_, err := Build(testCtx(), prog)

		var malformed *ir.MalformedOperationError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestGraph_Accessors(t *testing.T) {
	prog := &ir.Program{
		Qubits: scalars("a", "b"),
		Ops: []ir.Operation{
			op("h", 1, "a"),
			op("cx", 2, "a", "b"),
		},
	}
	g, err := Build(testCtx(), prog)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, g.Wires())

	h := g.Nodes()[0]
	cx := g.Nodes()[1]

	succs := g.Successors(h.ID)
	require.Len(t, succs, 1)
	assert.Equal(t, cx.ID, succs[0].ID)

	preds := g.Predecessors(cx.ID)
	require.Len(t, preds, 1)
	assert.Equal(t, h.ID, preds[0].ID)

	_, ok := g.Node("nope")
	assert.False(t, ok)
	assert.Nil(t, g.Predecessors("nope"))
}
