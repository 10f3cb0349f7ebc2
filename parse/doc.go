// Package parse builds the node tree of a document from its raw lines.
//
// The raw lines are retained verbatim on the resulting Document;
// comment and blank lines never enter the tree but keep their place in
// the line list, so an unmutated document re-serializes byte for byte.
package parse
