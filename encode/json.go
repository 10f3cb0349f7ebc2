package encode

import (
	"encoding/json"
	"io"

	"github.com/rjzaar/regstore/ir"
)

// JSON renders a subtree as pretty-printed JSON, preserving the
// document's key order. Every scalar stays a JSON string; the store
// never guesses at types.
func JSON(n *ir.Node, w io.Writer) error {
	if err := encodeJSON(n, w, 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeJSON(n *ir.Node, w io.Writer, depth int) error {
	ind := pad(depth * 2)
	switch n.Type {
	case ir.ScalarType:
		return writeJSONString(w, n.Scalar)
	case ir.ListType:
		if len(n.Values) == 0 {
			_, err := io.WriteString(w, "[]")
			return err
		}
		if _, err := io.WriteString(w, "[\n"); err != nil {
			return err
		}
		for i, v := range n.Values {
			if _, err := io.WriteString(w, ind+"  "); err != nil {
				return err
			}
			if err := writeJSONString(w, v.Scalar); err != nil {
				return err
			}
			if err := writeSep(w, i < len(n.Values)-1); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, ind+"]")
		return err
	case ir.MapType:
		if len(n.Keys) == 0 {
			_, err := io.WriteString(w, "{}")
			return err
		}
		if _, err := io.WriteString(w, "{\n"); err != nil {
			return err
		}
		for i, k := range n.Keys {
			if _, err := io.WriteString(w, ind+"  "); err != nil {
				return err
			}
			if err := writeJSONString(w, k); err != nil {
				return err
			}
			if _, err := io.WriteString(w, ": "); err != nil {
				return err
			}
			if err := encodeJSON(n.Values[i], w, depth+1); err != nil {
				return err
			}
			if err := writeSep(w, i < len(n.Keys)-1); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, ind+"}")
		return err
	}
	return nil
}

func writeJSONString(w io.Writer, s string) error {
	d, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func writeSep(w io.Writer, more bool) error {
	if more {
		_, err := io.WriteString(w, ",\n")
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
