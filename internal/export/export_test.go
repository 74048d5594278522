package export

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qstatic/qslice/internal/ctxlog"
	"github.com/qstatic/qslice/internal/ir"
	"github.com/qstatic/qslice/internal/qdg"
	"github.com/qstatic/qslice/internal/slicing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T) (*qdg.Graph, *slicing.Slice) {
	t.Helper()
	prog := &ir.Program{
		Qubits: []ir.QubitDecl{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		Ops: []ir.Operation{
			{Gate: "h", Line: 1, Qubits: []string{"a"}},
			{Gate: "cx", Line: 2, Qubits: []string{"a", "b"}},
			{Gate: "x", Line: 3, Qubits: []string{"a"}},
			{Gate: "cx", Line: 4, Qubits: []string{"b", "c"}},
			{Gate: "measure", Line: 5, Qubits: []string{"c"}, Bit: "m0"},
		},
	}
	ctx := ctxlog.WithLogger(context.Background(), slog.Default())
	g, err := qdg.Build(ctx, prog)
	require.NoError(t, err)

	sl, err := slicing.Run(g, slicing.Criterion{Qubit: "c", Line: 4}, slicing.Backward)
	require.NoError(t, err)
	return g, sl
}

func TestGraphJSON(t *testing.T) {
	g, sl := buildFixture(t)

	t.Run("without slice annotation", func(t *testing.T) {
		data, err := GraphJSON(g, nil)
		require.NoError(t, err)

		var doc GraphDoc
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Len(t, doc.Nodes, 5)
		assert.NotContains(t, string(data), "in_slice")

		// Wire and entanglement kinds are both present in the dump.
		kinds := make(map[string]bool)
		for _, e := range doc.Edges {
			kinds[e.Kind] = true
		}
		assert.True(t, kinds["wire"])
		assert.True(t, kinds["entangle"])
	})

	t.Run("with slice annotation", func(t *testing.T) {
		data, err := GraphJSON(g, sl)
		require.NoError(t, err)

		var doc GraphDoc
		require.NoError(t, json.Unmarshal(data, &doc))

		inSlice := 0
		for _, n := range doc.Nodes {
			require.NotNil(t, n.InSlice)
			if *n.InSlice {
				inSlice++
			}
		}
		assert.Equal(t, sl.Len(), inSlice)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := GraphJSON(g, sl)
		require.NoError(t, err)
		second, err := GraphJSON(g, sl)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(string(first), string(second)))
	})
}

func TestSliceJSON(t *testing.T) {
	_, sl := buildFixture(t)

	data, err := SliceJSON(sl)
	require.NoError(t, err)

	var doc SliceDoc
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "c", doc.Criterion.Qubit)
	assert.Equal(t, 4, doc.Criterion.Line)
	assert.Equal(t, "backward", doc.Criterion.Direction)

	// Members arrive sorted by (line, ordinal).
	require.Len(t, doc.Members, 4)
	assert.Equal(t, "h", doc.Members[0].Gate)
	assert.Equal(t, "criterion", doc.Members[3].Reason)

	assert.Equal(t, []string{"a", "b", "c"}, doc.Qubits)
	assert.Equal(t, []int{1, 2, 3, 4}, doc.Lines)
}

func TestDOT(t *testing.T) {
	g, sl := buildFixture(t)

	t.Run("plain graph", func(t *testing.T) {
		out := DOT(g, nil)
		assert.True(t, strings.HasPrefix(out, "digraph QDG {"))
		assert.Contains(t, out, "rankdir=LR;")
		assert.Contains(t, out, `style="dashed", penwidth=2`)
		assert.NotContains(t, out, "lightgray")
	})

	t.Run("slice highlighted", func(t *testing.T) {
		out := DOT(g, sl)
		assert.Contains(t, out, `fillcolor="lightgray"`)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Empty(t, cmp.Diff(DOT(g, sl), DOT(g, sl)))
	})
}

func TestWriteFiles(t *testing.T) {
	g, sl := buildFixture(t)
	dir := t.TempDir()

	slicePath := filepath.Join(dir, "slice.json")
	require.NoError(t, WriteSliceJSON(slicePath, sl))
	qdgPath := filepath.Join(dir, "qdg.json")
	require.NoError(t, WriteGraphJSON(qdgPath, g, nil))
	dotPath := filepath.Join(dir, "qdg.dot")
	require.NoError(t, WriteDOT(dotPath, g, sl))

	for _, p := range []string{slicePath, qdgPath, dotPath} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}
