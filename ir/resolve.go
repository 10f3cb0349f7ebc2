package ir

import (
	"fmt"

	"github.com/rjzaar/regstore/ir/dotpath"
)

// Ref is the result of resolving a path against a document. Either
// Node is set (the path fully resolved), or Parent is the deepest
// existing container and Missing holds the unresolved field suffix
// describing where new intermediate maps would be inserted.
type Ref struct {
	Node    *Node
	Parent  *Node
	Missing dotpath.Path
}

func (r *Ref) Resolved() bool {
	return r.Node != nil
}

// Resolve walks the tree one segment at a time. Missing trailing map
// keys yield an insertion point; a missing list index, or a segment
// that contradicts an existing node's kind, is an error.
func Resolve(doc *Document, p dotpath.Path) (*Ref, error) {
	cur := doc.Root
	for i, seg := range p {
		if seg.IsIndex {
			if cur.Type != ListType {
				return nil, fmt.Errorf("%w: %s is a %s, not a list", ErrTypeMismatch, p[:i].String(), cur.Type)
			}
			if seg.Index >= len(cur.Values) {
				return nil, fmt.Errorf("%w: index %d out of range at %s", ErrNotFound, seg.Index, p[:i].String())
			}
			cur = cur.Values[seg.Index]
			continue
		}
		switch {
		case cur.Type == MapType, cur.Type == ScalarType && cur.Empty:
		default:
			return nil, fmt.Errorf("%w: %s is a %s, not a map", ErrTypeMismatch, p[:i].String(), cur.Type)
		}
		if c := cur.Get(seg.Field); c != nil {
			cur = c
			continue
		}
		missing := p[i:]
		if missing.HasIndex() {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p.String())
		}
		return &Ref{Parent: cur, Missing: missing}, nil
	}
	return &Ref{Node: cur}, nil
}
