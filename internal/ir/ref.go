package ir

import (
	"fmt"
	"regexp"
	"strconv"
)

// refRegex parses a qubit reference of the form "name" or "name[index]".
var refRegex = regexp.MustCompile(`^([a-zA-Z_$][a-zA-Z0-9_]*)(?:\[(\d+)\])?$`)

// elementIdentity is the canonical identity of one register element.
func elementIdentity(register string, index int) string {
	return fmt.Sprintf("%s[%d]", register, index)
}

// resolver maps textual qubit references to canonical identities against a
// fixed set of declarations. Resolution must be exact: an aliasing mistake
// here silently corrupts every dependency edge built on top of it.
type resolver struct {
	scalars   map[string]bool
	registers map[string]int // register name -> size
}

func newResolver(decls []QubitDecl) (*resolver, error) {
	r := &resolver{
		scalars:   make(map[string]bool),
		registers: make(map[string]int),
	}
	for _, d := range decls {
		if d.Name == "" {
			return nil, fmt.Errorf("qubit declaration with empty name")
		}
		if r.scalars[d.Name] || r.registers[d.Name] > 0 {
			return nil, fmt.Errorf("duplicate qubit declaration %q", d.Name)
		}
		if d.Size < 0 {
			return nil, fmt.Errorf("qubit register %q has negative size %d", d.Name, d.Size)
		}
		if d.Size == 0 {
			r.scalars[d.Name] = true
		} else {
			r.registers[d.Name] = d.Size
		}
	}
	return r, nil
}

// resolve returns the canonical identity for one reference, or an
// UnresolvedQubitError naming the reference and line.
func (r *resolver) resolve(ref string, line int) (string, error) {
	matches := refRegex.FindStringSubmatch(ref)
	if matches == nil {
		return "", &UnresolvedQubitError{Ref: ref, Line: line}
	}

	name := matches[1]
	if matches[2] == "" {
		// Bare name: must be a scalar. A register referenced without an
		// index is ambiguous and rejected rather than guessed at.
		if !r.scalars[name] {
			return "", &UnresolvedQubitError{Ref: ref, Line: line}
		}
		return name, nil
	}

	index, err := strconv.Atoi(matches[2])
	if err != nil {
		// Unreachable due to the regex \d+
		return "", fmt.Errorf("internal error parsing index from %q: %w", ref, err)
	}

	size, ok := r.registers[name]
	if !ok || index >= size {
		return "", &UnresolvedQubitError{Ref: ref, Line: line}
	}
	return elementIdentity(name, index), nil
}
