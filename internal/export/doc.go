// Package export serializes a built QDG and slice results for downstream
// consumers: a JSON graph dump, a Graphviz DOT rendering, and the
// structured slice result document. Output ordering is deterministic so
// repeated exports of the same graph are byte-identical.
package export
