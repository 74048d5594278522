// Package ir defines the intermediate representation handed over by the
// external circuit parser: an ordered list of gate and measurement records
// plus the qubit declarations they operate on.
//
// The package owns qubit identity resolution. A reference such as "p[2]" is
// only meaningful relative to the declarations of the surrounding program,
// and two textual references denote the same wire iff they resolve to the
// same canonical identity string. Everything downstream (the dependency
// graph, criterion resolution, slicing) keys on those canonical identities.
package ir
