package regstore

import (
	"context"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/ir/dotpath"
)

// MergePatch applies an RFC 7386 JSON merge patch to the map at path,
// inside one transaction. The merged result is decomposed into
// per-leaf set and delete mutations, so lines the patch does not touch
// stay byte-identical and comments keep their places. An absent path
// starts from the empty map.
func (s *Store) MergePatch(ctx context.Context, path string, patch []byte) error {
	if s.o.restricted {
		return fmt.Errorf("%w: %s", ErrRestricted, s.path)
	}
	p, err := dotpath.Parse(path)
	if err != nil {
		return err
	}
	return s.update(ctx, func(doc *ir.Document) ([]string, error) {
		orig, err := subtreeMap(doc, p, path)
		if err != nil {
			return nil, err
		}
		origJSON, err := json.Marshal(orig)
		if err != nil {
			return nil, err
		}
		mergedJSON, err := jsonpatch.MergePatch(origJSON, patch)
		if err != nil {
			return nil, err
		}
		var merged map[string]any
		if err := json.Unmarshal(mergedJSON, &merged); err != nil {
			return nil, fmt.Errorf("%w: merge patch must produce a map at %s: %v", ErrTypeMismatch, path, err)
		}
		var chs []change
		if err := diffValues(p, orig, merged, &chs); err != nil {
			return nil, err
		}
		return applyChanges(doc, chs)
	})
}

// subtreeMap returns the map at p as plain values; an unresolved path
// reads as empty.
func subtreeMap(doc *ir.Document, p dotpath.Path, path string) (map[string]any, error) {
	ref, err := ir.Resolve(doc, p)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		return map[string]any{}, nil
	}
	n := ref.Node
	if n.Type == ir.ScalarType && n.Empty {
		return map[string]any{}, nil
	}
	if n.Type != ir.MapType {
		return nil, fmt.Errorf("%w: %s is a %s, not a map", ErrTypeMismatch, path, n.Type)
	}
	m, _ := nodeToAny(n).(map[string]any)
	return m, nil
}
