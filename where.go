package regstore

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/rjzaar/regstore/ir"
)

// Where returns the keys of the map children under parent whose scalar
// fields satisfy the expression, e.g.
//
//	s.Where("sites", `directory startsWith "/srv"`)
//
// Each candidate child is evaluated with its scalar fields as
// variables plus "key" bound to the child's own key. Non-map children
// never match.
func (s *Store) Where(parent, exprSrc string) ([]string, error) {
	if s.o.restricted {
		return nil, fmt.Errorf("%w: %s", ErrRestricted, s.path)
	}
	program, err := expr.Compile(exprSrc)
	if err != nil {
		return nil, err
	}
	ref, err := s.resolve(parent)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, parent)
	}
	n := ref.Node
	if n.Type != ir.MapType {
		return nil, fmt.Errorf("%w: %s is a %s, not a map", ErrTypeMismatch, parent, n.Type)
	}
	var keys []string
	for i, k := range n.Keys {
		child := n.Values[i]
		if child.Type != ir.MapType {
			continue
		}
		env := map[string]any{"key": k}
		for j, field := range child.Keys {
			if child.Values[j].Type == ir.ScalarType {
				env[field] = child.Values[j].Scalar
			}
		}
		out, err := expr.Run(program, env)
		if err != nil {
			// a field referenced by the expression may simply be
			// absent on this child; that is not a match
			continue
		}
		if ok, _ := out.(bool); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
