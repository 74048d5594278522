package render

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/qstatic/qslice/internal/ctxlog"
	"github.com/qstatic/qslice/internal/ir"
	"github.com/qstatic/qslice/internal/qdg"
	"github.com/qstatic/qslice/internal/slicing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T) *qdg.Graph {
	t.Helper()
	prog := &ir.Program{
		Qubits: []ir.QubitDecl{{Name: "a"}, {Name: "b"}},
		Ops: []ir.Operation{
			{Gate: "h", Line: 1, Qubits: []string{"a"}},
			{Gate: "cx", Line: 2, Qubits: []string{"a", "b"}},
			{Gate: "measure", Line: 3, Qubits: []string{"b"}, Bit: "m0"},
		},
	}
	ctx := ctxlog.WithLogger(context.Background(), slog.Default())
	g, err := qdg.Build(ctx, prog)
	require.NoError(t, err)
	return g
}

func TestCircuit(t *testing.T) {
	g := buildFixture(t)

	t.Run("one row per wire", func(t *testing.T) {
		out := Circuit(g, nil)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "a")
		assert.Contains(t, lines[1], "b")
	})

	t.Run("gate glyphs", func(t *testing.T) {
		out := Circuit(g, nil)
		assert.Contains(t, out, "h", "single-qubit gate shows its name")
		assert.Contains(t, out, "●", "multi-qubit gate marks its first operand")
		assert.Contains(t, out, "M", "measurement renders as M")
		assert.Contains(t, out, "cx", "multi-qubit gate names its other operands")
	})

	t.Run("slice legend", func(t *testing.T) {
		sl, err := slicing.Run(g, slicing.Criterion{Qubit: "b", Line: 3}, slicing.Backward)
		require.NoError(t, err)

		out := Circuit(g, sl)
		assert.Contains(t, out, "backward slice of b @ line 3")
		assert.Contains(t, out, "3 of 3 operations")
	})
}
