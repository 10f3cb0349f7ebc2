// Package ir holds the in-memory representation of a document: the raw
// line list and the tree of addressable nodes derived from it.
//
// A node is a scalar, a list of scalars, or a map with ordered, unique
// keys. Each node remembers the half-open line range [Start,End) it was
// parsed from and its indentation; both are used only for editing,
// never for comparison.
package ir
