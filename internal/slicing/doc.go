// Package slicing answers dependency-influence queries against a built QDG:
// it resolves a (qubit, line) criterion to the operation that defines the
// qubit's state at that program point, then computes the forward or backward
// transitive closure from it. Queries never mutate the graph, so any number
// of them can run against one QDG.
package slicing
