// Package qdg builds and holds the Quantum Dependency Graph: one node per
// parsed operation, wire edges along each qubit's timeline and entanglement
// edges where a multi-qubit gate couples previously independent wires.
//
// Construction is a single pass over the program in textual order. The two
// pieces of mutable build state, the per-qubit last-writer map and the
// union-find partition of entangled groups, live inside Build and are
// discarded when it returns. The finished Graph is immutable and safe to
// share across concurrent resolver and slicer calls without locking.
package qdg
