package qdg

import (
	"context"
	"fmt"

	"github.com/qstatic/qslice/internal/ctxlog"
	"github.com/qstatic/qslice/internal/ir"
)

// Build constructs the dependency graph from a loaded program in a single
// pass over the operations in program order.
func Build(ctx context.Context, prog *ir.Program) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting QDG construction.", "ops", len(prog.Ops))

	identities := prog.Identities()
	declared := make(map[string]bool, len(identities))
	for _, id := range identities {
		declared[id] = true
	}

	g := newGraph()
	lastWriter := make(map[string]*Node, len(identities))
	groups := newPartition()

	for i, op := range prog.Ops {
		// Programs normally arrive through ir.Load, which has already
		// validated them, but the contract holds for hand-built ones too.
		if err := checkOperation(i, op, declared); err != nil {
			return nil, err
		}

		node := g.addNode(op)

		// Wire edges: hook the operation onto the tail of every operand's
		// timeline, then take over as that wire's last writer.
		for _, q := range op.Qubits {
			if prev := lastWriter[q]; prev != nil {
				g.addEdge(prev, node, EdgeWire)
			}
			lastWriter[q] = node
		}

		// Entanglement edges: a multi-qubit gate joins its operands'
		// groups, and its result depends on the latest operation of every
		// other wire in the merged group, not just the named operands.
		if len(op.Qubits) >= 2 {
			first := op.Qubits[0]
			for _, q := range op.Qubits[1:] {
				groups.union(first, q)
			}

			operand := make(map[string]bool, len(op.Qubits))
			for _, q := range op.Qubits {
				operand[q] = true
			}
			for _, q := range identities {
				if operand[q] || !groups.sameGroup(first, q) {
					continue
				}
				if prev := lastWriter[q]; prev != nil {
					// addEdge drops the pair if a wire edge from the same
					// predecessor already exists.
					g.addEdge(prev, node, EdgeEntangle)
				}
			}
		}

		// Measurement collapses the qubit: it stops propagating its former
		// group's entanglement and starts over as a singleton. Later
		// multi-qubit gates may re-entangle it.
		if op.IsMeasure() {
			groups.detach(op.Qubits[0])
		}
	}

	if err := g.detectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}

	logger.Debug("Build: QDG construction successful.",
		"node_count", len(g.order), "edge_count", len(g.edges))
	return g, nil
}

// checkOperation enforces the IR input contract on one record.
func checkOperation(index int, op ir.Operation, declared map[string]bool) error {
	if op.Gate == "" {
		return &ir.MalformedOperationError{Index: index, Line: op.Line, Reason: "missing gate name"}
	}
	if len(op.Qubits) == 0 {
		return &ir.MalformedOperationError{Index: index, Line: op.Line, Reason: "missing qubit operands"}
	}
	if op.IsMeasure() && len(op.Qubits) != 1 {
		return &ir.MalformedOperationError{
			Index: index, Line: op.Line,
			Reason: fmt.Sprintf("measurement takes exactly one qubit, got %d", len(op.Qubits)),
		}
	}
	seen := make(map[string]bool, len(op.Qubits))
	for _, q := range op.Qubits {
		if !declared[q] {
			return &ir.UnresolvedQubitError{Ref: q, Line: op.Line}
		}
		if seen[q] {
			return &ir.MalformedOperationError{
				Index: index, Line: op.Line,
				Reason: fmt.Sprintf("duplicate qubit operand %q", q),
			}
		}
		seen[q] = true
	}
	return nil
}
