package qdg

// partition tracks which qubits currently share an entangled group. It is a
// union-find arena with path compression, keyed by qubit identity. It only
// exists while Build runs; the edges it produces carry all the information
// downstream consumers need.
type partition struct {
	parent []int
	// slot maps a qubit identity to its current arena element. Detaching a
	// qubit re-points it at a fresh singleton, leaving the old element
	// behind in whatever group it was in.
	slot map[string]int
}

func newPartition() *partition {
	return &partition{slot: make(map[string]int)}
}

func (p *partition) slotOf(q string) int {
	if s, ok := p.slot[q]; ok {
		return s
	}
	s := len(p.parent)
	p.parent = append(p.parent, s)
	p.slot[q] = s
	return s
}

func (p *partition) findSlot(s int) int {
	for p.parent[s] != s {
		p.parent[s] = p.parent[p.parent[s]] // path compression
		s = p.parent[s]
	}
	return s
}

// find returns the representative of the qubit's current group.
func (p *partition) find(q string) int {
	return p.findSlot(p.slotOf(q))
}

// union merges the groups of two qubits.
func (p *partition) union(a, b string) {
	ra, rb := p.find(a), p.find(b)
	if ra != rb {
		p.parent[rb] = ra
	}
}

// sameGroup reports whether two qubits are currently entangled.
func (p *partition) sameGroup(a, b string) bool {
	return p.find(a) == p.find(b)
}

// detach collapses a qubit back into a singleton group. Used when a
// measurement terminates the qubit's entanglement propagation.
func (p *partition) detach(q string) {
	s := len(p.parent)
	p.parent = append(p.parent, s)
	p.slot[q] = s
}
