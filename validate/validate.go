// Package validate checks that candidate document bytes are
// structurally well formed. The transaction manager runs it before
// accepting any write; it is also exposed standalone so callers can
// probe a possibly corrupted on-disk file before deciding to restore
// a backup.
package validate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/parse"
)

var ErrValidation = errors.New("validation error")

// Bytes re-parses the candidate bytes and checks the structural
// invariants: consistent indentation, unique sibling keys, and no
// scalar with an embedded newline. Parse errors are returned as-is so
// callers can tell corruption kinds apart.
func Bytes(d []byte, opts ...parse.ParseOption) error {
	doc, err := parse.Parse(d, opts...)
	if err != nil {
		return err
	}
	return Document(doc)
}

// Document checks an already parsed document.
func Document(doc *ir.Document) error {
	return doc.Root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost || n.Type != ir.ScalarType {
			return true, nil
		}
		if strings.ContainsAny(n.Scalar, "\n\r") {
			return false, fmt.Errorf("%w: scalar at %s contains a newline",
				ErrValidation, n.Path().String())
		}
		return true, nil
	})
}

// File validates the document stored at path. A missing file is valid:
// it reads as the empty document.
func File(path string) error {
	d, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return Bytes(d, parse.WithFilename(path))
}
