package regstore

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rjzaar/regstore/encode"
	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/ir/dotpath"
)

// Export formats.
const (
	FormatNative = "native"
	FormatYAML   = "yaml"
	FormatJSON   = "json"
)

// Export renders the subtree at path in the given format, preserving
// key order. All scalars export as strings. Restricted stores refuse:
// export is a bulk dump.
func (s *Store) Export(path, format string) ([]byte, error) {
	if s.o.restricted {
		return nil, fmt.Errorf("%w: %s", ErrRestricted, s.path)
	}
	ref, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		err = encode.JSON(ref.Node, &buf)
	case FormatYAML:
		var d []byte
		d, err = yaml.Marshal(yamlNode(ref.Node))
		buf.Write(d)
	case FormatNative, "":
		err = encode.Encode(ref.Node, &buf)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import merges a YAML document into the subtree at path as one
// transaction: every scalar and list in the input is set, nothing is
// deleted. The input must be maps, lists of scalars, and scalars.
func (s *Store) Import(ctx context.Context, path string, d []byte) error {
	if s.o.restricted {
		return fmt.Errorf("%w: %s", ErrRestricted, s.path)
	}
	p, err := dotpath.Parse(path)
	if err != nil {
		return err
	}
	var root yaml.Node
	if err := yaml.Unmarshal(d, &root); err != nil {
		return err
	}
	in, err := yamlToAny(&root)
	if err != nil {
		return err
	}
	m, ok := in.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: import source must be a map", ErrTypeMismatch)
	}
	return s.update(ctx, func(doc *ir.Document) ([]string, error) {
		orig, err := subtreeMap(doc, p, path)
		if err != nil {
			return nil, err
		}
		// merge semantics: keep keys the input does not mention
		for k, v := range orig {
			if _, ok := m[k]; !ok {
				m[k] = v
			}
		}
		var chs []change
		if err := diffValues(p, orig, m, &chs); err != nil {
			return nil, err
		}
		return applyChanges(doc, chs)
	})
}

func yamlNode(n *ir.Node) *yaml.Node {
	switch n.Type {
	case ir.ScalarType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Scalar}
	case ir.ListType:
		y := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range n.Values {
			y.Content = append(y.Content, yamlNode(v))
		}
		return y
	case ir.MapType:
		y := &yaml.Node{Kind: yaml.MappingNode}
		for i, k := range n.Keys {
			y.Content = append(y.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				yamlNode(n.Values[i]))
		}
		return y
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}
}

func yamlToAny(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return map[string]any{}, nil
		}
		return yamlToAny(n.Content[0])
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: lists may only hold scalars", ErrTypeMismatch)
			}
			items[i] = c.Value
		}
		return items, nil
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlToAny(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: unsupported YAML node", ErrTypeMismatch)
}
