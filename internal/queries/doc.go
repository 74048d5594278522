// Package queries loads batch slicing definitions from HCL files. Each
// slice block names a criterion, a direction and optional export targets;
// all blocks in a run share one QDG.
package queries
