package parse_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/ir/dotpath"
	"github.com/rjzaar/regstore/mutate"
	"github.com/rjzaar/regstore/parse"
	"github.com/rjzaar/regstore/token"

	"github.com/sebdah/goldie/v2"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func loadFixture(t *testing.T, name string) *ir.Document {
	t.Helper()
	d, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := parse.Parse(d, parse.WithFilename(name))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// Every byte of a parsed document must come back out unchanged.
func TestGoldenRoundTrip(t *testing.T) {
	doc := loadFixture(t, "registry.reg")
	golden(t).Assert(t, "registry", doc.Bytes())
}

// A realistic edit sequence must leave every untouched line, comment
// and blank exactly where it was.
func TestGoldenMutationSequence(t *testing.T) {
	doc := loadFixture(t, "registry.reg")
	for _, step := range []struct {
		op   func(*ir.Document, dotpath.Path) ([]string, error)
		path string
	}{
		{
			op: func(d *ir.Document, p dotpath.Path) ([]string, error) {
				return mutate.AppendList(d, p, "mirror")
			},
			path: "sites.alpha.remotes",
		},
		{
			op: func(d *ir.Document, p dotpath.Path) ([]string, error) {
				return mutate.SetScalar(d, p, "develop")
			},
			path: "sites.beta.branch",
		},
		{
			op:   mutate.Delete,
			path: "settings.cache",
		},
	} {
		lines, err := step.op(doc, dotpath.MustParse(step.path))
		if err != nil {
			t.Fatalf("%s: %v", step.path, err)
		}
		doc, err = parse.Parse(token.Join(lines, doc.FinalNL))
		if err != nil {
			t.Fatalf("reparse after %s: %v", step.path, err)
		}
	}
	golden(t).Assert(t, "registry-mutated", doc.Bytes())
}
