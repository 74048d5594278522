// Package app owns the application lifecycle: configure the logger, load
// the IR document, build the QDG once, then answer the slicing queries and
// write the requested exports. The build phase is the only one with mutable
// state; everything after it reads a frozen graph.
package app
