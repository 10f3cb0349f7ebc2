// Package encode renders documents and nodes back to text.
//
// Whole-document serialization is a verbatim join of the raw lines;
// the render helpers here exist for the two other cases: building the
// new lines a mutation inserts, and displaying a subtree to a person.
package encode
