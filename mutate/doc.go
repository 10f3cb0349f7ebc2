// Package mutate edits a parsed document's raw line list. Every
// operation is a pure function: it resolves a path against the tree,
// computes the minimal line splice, and returns a new line list,
// leaving the input document and its untouched lines verbatim. Disk
// I/O belongs to the transaction manager.
package mutate
