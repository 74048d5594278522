package slicing

import (
	"fmt"

	"github.com/qstatic/qslice/internal/qdg"
)

// Direction selects which way influence is traced from the criterion.
type Direction string

const (
	// Backward collects every operation that can influence the criterion.
	Backward Direction = "backward"
	// Forward collects every operation the criterion can influence.
	Forward Direction = "forward"
)

// ParseDirection validates a textual direction from the CLI or a query file.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Backward, Forward:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be %q or %q", s, Backward, Forward)
	}
}

// Criterion names the program point of interest: the state of one qubit as
// of one source line.
type Criterion struct {
	Qubit string
	Line  int
}

// CriterionNotFoundError reports that no operation touches the requested
// qubit at or before the requested line. The QDG it was asked against is
// unaffected.
type CriterionNotFoundError struct {
	Qubit string
	Line  int
}

// Error implements the error interface.
func (e *CriterionNotFoundError) Error() string {
	return fmt.Sprintf("no operation on qubit %q at or before line %d", e.Qubit, e.Line)
}

// Resolve maps a criterion to the concrete operation modeling the qubit's
// state at that point: the node with the greatest line not exceeding the
// requested one, ties broken by greatest ordinal.
func Resolve(g *qdg.Graph, c Criterion) (*qdg.Node, error) {
	var best *qdg.Node
	for _, n := range g.NodesOnWire(c.Qubit) {
		if n.Op.Line > c.Line {
			continue
		}
		if best == nil || laterThan(n, best) {
			best = n
		}
	}
	if best == nil {
		return nil, &CriterionNotFoundError{Qubit: c.Qubit, Line: c.Line}
	}
	return best, nil
}

func laterThan(a, b *qdg.Node) bool {
	if a.Op.Line != b.Op.Line {
		return a.Op.Line > b.Op.Line
	}
	return a.Op.Ordinal > b.Op.Ordinal
}
