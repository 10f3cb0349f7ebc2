package encode

import (
	"io"
	"strings"

	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/token"
)

// Bytes re-serializes a document verbatim.
func Bytes(doc *ir.Document) []byte {
	return doc.Bytes()
}

func pad(indent int) string {
	if indent <= 0 {
		return ""
	}
	return strings.Repeat(" ", indent)
}

func renderKey(k string) string {
	if token.KeyNeedsQuote(k) {
		return token.Quote(k)
	}
	return k
}

// ScalarLine renders one "key: value" line.
func ScalarLine(indent int, key, value string) string {
	return pad(indent) + renderKey(key) + ": " + token.MaybeQuote(value)
}

// HeaderLine renders a bare "key:" map or list header.
func HeaderLine(indent int, key string) string {
	return pad(indent) + renderKey(key) + ":"
}

// ItemLine renders one "- item" list line.
func ItemLine(indent int, value string) string {
	return pad(indent) + "- " + token.MaybeQuote(value)
}

// ScalarBlock renders nested headers for keys[:len-1] and a final
// scalar line for the last key, starting at indent and stepping deeper
// per level.
func ScalarBlock(indent, step int, keys []string, value string) []string {
	lines := make([]string, 0, len(keys))
	for _, k := range keys[:len(keys)-1] {
		lines = append(lines, HeaderLine(indent, k))
		indent += step
	}
	return append(lines, ScalarLine(indent, keys[len(keys)-1], value))
}

// ListBlock renders nested headers for all keys, the last one opening
// a list holding items one step deeper.
func ListBlock(indent, step int, keys []string, items []string) []string {
	lines := make([]string, 0, len(keys)+len(items))
	for _, k := range keys {
		lines = append(lines, HeaderLine(indent, k))
		indent += step
	}
	for _, it := range items {
		lines = append(lines, ItemLine(indent, it))
	}
	return lines
}

type EncState struct {
	depth  int
	indent int

	Color func(ColorAttr, string) string
}

type EncodeOption func(*EncState)

func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

func (es *EncState) color(attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(attr, s)
}

// Encode renders a subtree in the document's own syntax, for display.
// It does not reproduce comments or the original layout; use the raw
// lines for that.
func Encode(n *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return encode(n, w, es)
}

// MustString renders a node, panicking on writer failure. Used for
// debug output.
func MustString(n *ir.Node) string {
	var b strings.Builder
	if err := Encode(n, &b); err != nil {
		panic(err)
	}
	return b.String()
}

func encode(n *ir.Node, w io.Writer, es *EncState) error {
	ind := pad(es.depth * es.indent)
	switch n.Type {
	case ir.ScalarType:
		_, err := io.WriteString(w, ind+es.color(ValueColor, token.MaybeQuote(n.Scalar))+"\n")
		return err
	case ir.ListType:
		for _, v := range n.Values {
			line := ind + es.color(SepColor, "- ") + es.color(ValueColor, token.MaybeQuote(v.Scalar))
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
		return nil
	case ir.MapType:
		for i, k := range n.Keys {
			v := n.Values[i]
			line := ind + es.color(KeyColor, renderKey(k)) + es.color(SepColor, ":")
			if v.Type == ir.ScalarType {
				line += " " + es.color(ValueColor, token.MaybeQuote(v.Scalar))
			}
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
			if v.Type == ir.ScalarType {
				continue
			}
			es.depth++
			err := encode(v, w, es)
			es.depth--
			if err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}
