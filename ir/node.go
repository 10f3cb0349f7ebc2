package ir

import (
	"github.com/rjzaar/regstore/ir/dotpath"
	"github.com/rjzaar/regstore/token"
)

type Type int

const (
	InvalidType Type = iota
	ScalarType
	ListType
	MapType
)

func (t Type) String() string {
	return map[Type]string{
		InvalidType: "invalid",
		ScalarType:  "scalar",
		ListType:    "list",
		MapType:     "map",
	}[t]
}

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	Key         string // key under the parent map, "" for list items and root

	Keys   []string // MapType: ordered child keys
	Values []*Node  // MapType children or ListType items

	Scalar string
	// Empty marks a scalar parsed from a bare "key:" header with
	// nothing beneath it. Such a node may still grow children.
	Empty bool

	Start, End int // line range [Start,End)
	Indent     int
}

// Get returns the child under key, or nil.
func (n *Node) Get(key string) *Node {
	for i, k := range n.Keys {
		if k == key {
			return n.Values[i]
		}
	}
	return nil
}

// AddChild appends a map child, keeping Keys and Values aligned.
func (n *Node) AddChild(key string, c *Node) {
	c.Parent = n
	c.ParentIndex = len(n.Values)
	c.Key = key
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, c)
}

// AddItem appends a list item.
func (n *Node) AddItem(c *Node) {
	c.Parent = n
	c.ParentIndex = len(n.Values)
	n.Values = append(n.Values, c)
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Values {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// Path returns the dotted path of this node's position in the tree.
func (n *Node) Path() dotpath.Path {
	if n.Parent == nil {
		return nil
	}
	p := n.Parent.Path()
	if n.Parent.Type == ListType {
		return p.Append(dotpath.Segment{Index: n.ParentIndex, IsIndex: true})
	}
	return p.Child(n.Key)
}

// Items returns a list node's item values.
func (n *Node) Items() []string {
	if n.Type != ListType {
		return nil
	}
	items := make([]string, len(n.Values))
	for i, v := range n.Values {
		items[i] = v.Scalar
	}
	return items
}

// ChildIndent returns the indentation at which this node's children
// live, or would live. step is the indent width for new levels.
func (n *Node) ChildIndent(step int) int {
	if len(n.Values) > 0 {
		return n.Values[0].Indent
	}
	if n.Parent == nil {
		return 0
	}
	return n.Indent + step
}

// Document is one parsed on-disk file: its raw lines, verbatim, plus
// the derived node tree. Comment and blank lines appear only in Lines.
type Document struct {
	Lines   []string
	FinalNL bool
	Root    *Node
}

// Bytes re-serializes the document. For an unmutated document this
// reproduces the parsed input exactly.
func (d *Document) Bytes() []byte {
	return token.Join(d.Lines, d.FinalNL)
}

func NewDocument() *Document {
	return &Document{
		Root: &Node{Type: MapType, Indent: -1},
	}
}
