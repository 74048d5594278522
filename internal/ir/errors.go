package ir

import "fmt"

// MalformedOperationError reports an IR record missing required fields. It
// aborts loading; no partial program is returned.
type MalformedOperationError struct {
	Index  int // position of the record in the ops list
	Line   int // source line, when the record carried one
	Reason string
}

// Error implements the error interface.
func (e *MalformedOperationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed operation #%d (line %d): %s", e.Index, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed operation #%d: %s", e.Index, e.Reason)
}

// UnresolvedQubitError reports an operand referencing a qubit that no
// declaration covers.
type UnresolvedQubitError struct {
	Ref  string // the textual reference as written
	Line int
}

// Error implements the error interface.
func (e *UnresolvedQubitError) Error() string {
	return fmt.Sprintf("unresolved qubit %q at line %d", e.Ref, e.Line)
}
