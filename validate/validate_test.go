package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rjzaar/regstore/parse"
)

func TestBytes(t *testing.T) {
	vts := []struct {
		in string
		e  error
	}{
		{in: "a: 1\nb:\n  c: 2\n"},
		{in: ""},
		{in: "a: 1\na: 2\n", e: parse.ErrDuplicateKey},
		{in: "a:\n  b: 1\n c: 2\n", e: parse.ErrIndent},
		{in: "a: \"x\\ny\"\n", e: ErrValidation},
	}
	for _, vt := range vts {
		err := Bytes([]byte(vt.in))
		if vt.e == nil {
			if err != nil {
				t.Errorf("%q: unexpected error %v", vt.in, err)
			}
			continue
		}
		if !errors.Is(err, vt.e) {
			t.Errorf("%q: got %v, want %v", vt.in, err, vt.e)
		}
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "reg.yml")
	if err := File(p); err != nil {
		t.Errorf("missing file: %v", err)
	}
	if err := os.WriteFile(p, []byte("a:\n   b: 1\n  c: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := File(p); !errors.Is(err, parse.ErrIndent) {
		t.Errorf("got %v, want ErrIndent", err)
	}
}
