package mutate

import (
	"fmt"
	"strings"

	"github.com/rjzaar/regstore/encode"
	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/ir/dotpath"
	"github.com/rjzaar/regstore/token"
)

// Step is the indent width used when new nesting levels are created.
// Existing levels keep whatever indentation the document already uses.
const Step = 2

// SetScalar replaces the value of the scalar at p, creating missing
// intermediate maps when the path does not resolve.
func SetScalar(doc *ir.Document, p dotpath.Path, value string) ([]string, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: cannot set the root", ir.ErrTypeMismatch)
	}
	ref, err := ir.Resolve(doc, p)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		at, indent := insertionPoint(doc, ref.Parent)
		block := encode.ScalarBlock(indent, Step, fieldNames(ref.Missing), value)
		return splice(doc.Lines, at, 0, block), nil
	}
	n := ref.Node
	if n.Type != ir.ScalarType {
		return nil, fmt.Errorf("%w: %s is a %s, not a scalar", ir.ErrTypeMismatch, p.String(), n.Type)
	}
	newRaw, err := replaceValue(doc.Lines[n.Start], value)
	if err != nil {
		return nil, err
	}
	if newRaw == doc.Lines[n.Start] {
		return doc.Lines, nil
	}
	return splice(doc.Lines, n.Start, 1, []string{newRaw}), nil
}

// SetList replaces the whole item block of the list at p, preserving
// the header line above it. An unresolved path creates the list.
func SetList(doc *ir.Document, p dotpath.Path, items []string) ([]string, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: cannot set the root", ir.ErrTypeMismatch)
	}
	ref, err := ir.Resolve(doc, p)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		at, indent := insertionPoint(doc, ref.Parent)
		block := encode.ListBlock(indent, Step, fieldNames(ref.Missing), items)
		return splice(doc.Lines, at, 0, block), nil
	}
	n := ref.Node
	switch {
	case n.Type == ir.ListType:
		first := n.Values[0].Start
		end := n.Values[len(n.Values)-1].End
		block := renderItems(n.Values[0].Indent, items)
		return splice(doc.Lines, first, end-first, block), nil
	case n.Type == ir.ScalarType && n.Empty:
		block := renderItems(n.ChildIndent(Step), items)
		return splice(doc.Lines, n.End, 0, block), nil
	default:
		return nil, fmt.Errorf("%w: %s is a %s, not a list", ir.ErrTypeMismatch, p.String(), n.Type)
	}
}

// AppendList inserts one item after the last existing item of the list
// at p, creating a one-item list when the path does not resolve.
func AppendList(doc *ir.Document, p dotpath.Path, item string) ([]string, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: cannot append to the root", ir.ErrTypeMismatch)
	}
	ref, err := ir.Resolve(doc, p)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		at, indent := insertionPoint(doc, ref.Parent)
		block := encode.ListBlock(indent, Step, fieldNames(ref.Missing), []string{item})
		return splice(doc.Lines, at, 0, block), nil
	}
	n := ref.Node
	switch {
	case n.Type == ir.ListType:
		last := n.Values[len(n.Values)-1]
		line := encode.ItemLine(n.Values[0].Indent, item)
		return splice(doc.Lines, last.End, 0, []string{line}), nil
	case n.Type == ir.ScalarType && n.Empty:
		line := encode.ItemLine(n.ChildIndent(Step), item)
		return splice(doc.Lines, n.End, 0, []string{line}), nil
	default:
		return nil, fmt.Errorf("%w: %s is a %s, not a list", ir.ErrTypeMismatch, p.String(), n.Type)
	}
}

// Delete removes the node at p. When the node was the last remaining
// child of its parent, the emptied parent header goes too, cascading
// up to but never including the root.
func Delete(doc *ir.Document, p dotpath.Path) ([]string, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: cannot delete the root", ir.ErrTypeMismatch)
	}
	ref, err := ir.Resolve(doc, p)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		return nil, fmt.Errorf("%w: %s", ir.ErrNotFound, p.String())
	}
	n := ref.Node
	for n.Parent.Parent != nil && len(n.Parent.Values) == 1 {
		n = n.Parent
	}
	return splice(doc.Lines, n.Start, n.End-n.Start, nil), nil
}

// replaceValue swaps only the value substring of a scalar line.
func replaceValue(raw string, value string) (string, error) {
	ln, err := token.ScanLine(raw, 0)
	if err != nil {
		return "", err
	}
	prefix := raw[:ln.ValOff]
	if ln.Kind == token.LKeyOnly && !strings.HasSuffix(prefix, " ") {
		prefix += " "
	}
	return prefix + token.MaybeQuote(value), nil
}

// insertionPoint returns the line index and indentation at which a new
// child of parent is appended, after all existing siblings.
func insertionPoint(doc *ir.Document, parent *ir.Node) (int, int) {
	if len(parent.Values) > 0 {
		last := parent.Values[len(parent.Values)-1]
		return last.End, parent.Values[0].Indent
	}
	if parent.Parent == nil {
		// empty document: new content goes after any leading comments
		return len(doc.Lines), 0
	}
	return parent.End, parent.Indent + Step
}

func renderItems(indent int, items []string) []string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = encode.ItemLine(indent, it)
	}
	return lines
}

func fieldNames(p dotpath.Path) []string {
	keys := make([]string, len(p))
	for i, s := range p {
		keys[i] = s.Field
	}
	return keys
}

func splice(lines []string, at, del int, ins []string) []string {
	res := make([]string, 0, len(lines)-del+len(ins))
	res = append(res, lines[:at]...)
	res = append(res, ins...)
	res = append(res, lines[at+del:]...)
	return res
}
