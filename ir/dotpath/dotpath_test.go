package dotpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ip(i int) Segment { return Segment{Index: i, IsIndex: true} }
func fp(f string) Segment {
	return Segment{Field: f}
}

func TestParse(t *testing.T) {
	pts := []struct {
		in   string
		want Path
	}{
		{in: "", want: nil},
		{in: "a", want: Path{fp("a")}},
		{in: "sites.alpha.directory", want: Fields("sites", "alpha", "directory")},
		{in: "sites.alpha.remotes[0]", want: Path{fp("sites"), fp("alpha"), fp("remotes"), ip(0)}},
		{in: "a[1][2]", want: Path{fp("a"), ip(1), ip(2)}},
		{in: `"my.site".dir`, want: Path{fp("my.site"), fp("dir")}},
		{in: `sites.'it''s'`, want: Path{fp("sites"), fp("it's")}},
	}
	for _, pt := range pts {
		got, err := Parse(pt.in)
		if err != nil {
			t.Errorf("%q: %v", pt.in, err)
			continue
		}
		if d := cmp.Diff(pt.want, got); d != "" {
			t.Errorf("%q: (-want +got):\n%s", pt.in, d)
		}
	}
}

func TestParseErrs(t *testing.T) {
	for _, in := range []string{".", "a.", ".a", "a..b", "a[", "a[x]", "a[-1]", `"unterminated`} {
		if _, err := Parse(in); !errors.Is(err, ErrPath) {
			t.Errorf("%q: got %v, want ErrPath", in, err)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"a", "sites.alpha.directory", "a[1][2].b", `"my.site".dir`} {
		p, err := Parse(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		p2, err := Parse(p.String())
		if err != nil {
			t.Fatalf("%q -> %q: %v", in, p.String(), err)
		}
		if d := cmp.Diff(p, p2); d != "" {
			t.Errorf("%q: not stable:\n%s", in, d)
		}
	}
}
