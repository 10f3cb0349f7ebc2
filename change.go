package regstore

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/ir/dotpath"
	"github.com/rjzaar/regstore/mutate"
	"github.com/rjzaar/regstore/parse"
	"github.com/rjzaar/regstore/token"
)

type changeKind int

const (
	changeSet changeKind = iota
	changeSetList
	changeDelete
)

// change is one decomposed mutation; merge patches and imports are
// replayed as sequences of these so untouched lines stay verbatim.
type change struct {
	kind  changeKind
	path  dotpath.Path
	value string
	items []string
}

// applyChanges runs the changes in order against doc, re-parsing
// between steps, and returns the final line list.
func applyChanges(doc *ir.Document, chs []change) ([]string, error) {
	lines := doc.Lines
	cur := doc
	for _, ch := range chs {
		var err error
		switch ch.kind {
		case changeSet:
			lines, err = mutate.SetScalar(cur, ch.path, ch.value)
		case changeSetList:
			lines, err = mutate.SetList(cur, ch.path, ch.items)
		case changeDelete:
			lines, err = mutate.Delete(cur, ch.path)
		}
		if err != nil {
			return nil, err
		}
		cur, err = parse.Parse(token.Join(lines, true))
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// nodeToAny converts a subtree into plain maps, slices and strings.
func nodeToAny(n *ir.Node) any {
	switch n.Type {
	case ir.ScalarType:
		return n.Scalar
	case ir.ListType:
		items := make([]any, len(n.Values))
		for i, v := range n.Values {
			items[i] = v.Scalar
		}
		return items
	case ir.MapType:
		m := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			m[k] = nodeToAny(n.Values[i])
		}
		return m
	}
	return nil
}

// diffValues appends the changes that turn the subtree orig at base
// into merged. Values compare as their string forms; the store never
// stores anything but strings.
func diffValues(base dotpath.Path, orig, merged map[string]any, out *[]change) error {
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p := base.Child(k)
		mv := merged[k]
		ov, had := orig[k]
		switch x := mv.(type) {
		case map[string]any:
			om, ok := ov.(map[string]any)
			if had && !ok {
				*out = append(*out, change{kind: changeDelete, path: p})
			}
			if !ok {
				om = nil
			}
			if err := diffValues(p, om, x, out); err != nil {
				return err
			}
		case []any:
			items, err := scalarItems(p, x)
			if err != nil {
				return err
			}
			if ol, ok := ov.([]any); ok {
				oitems, err := scalarItems(p, ol)
				if err == nil && slices.Equal(items, oitems) {
					continue
				}
			}
			if had {
				if _, ok := ov.([]any); !ok {
					*out = append(*out, change{kind: changeDelete, path: p})
				}
			}
			*out = append(*out, change{kind: changeSetList, path: p, items: items})
		default:
			v, err := scalarString(p, mv)
			if err != nil {
				return err
			}
			if had {
				if os, ok := ov.(string); ok && os == v {
					continue
				}
				if _, ok := ov.(string); !ok {
					*out = append(*out, change{kind: changeDelete, path: p})
				}
			}
			*out = append(*out, change{kind: changeSet, path: p, value: v})
		}
	}
	removed := make([]string, 0)
	for k := range orig {
		if _, ok := merged[k]; !ok {
			removed = append(removed, k)
		}
	}
	sort.Strings(removed)
	for _, k := range removed {
		*out = append(*out, change{kind: changeDelete, path: base.Child(k)})
	}
	return nil
}

func scalarItems(p dotpath.Path, xs []any) ([]string, error) {
	items := make([]string, len(xs))
	for i, x := range xs {
		v, err := scalarString(p, x)
		if err != nil {
			return nil, fmt.Errorf("%w: list at %s holds a non-scalar item", ErrTypeMismatch, p.String())
		}
		items[i] = v
	}
	return items, nil
}

func scalarString(p dotpath.Path, x any) (string, error) {
	switch v := x.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("%w: unsupported value %T at %s", ErrTypeMismatch, x, p.String())
}
