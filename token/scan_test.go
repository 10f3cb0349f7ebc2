package token

import (
	"errors"
	"testing"
)

type scanTest struct {
	in   string
	kind LineKind
	ind  int
	key  string
	val  string
	e    error
}

func TestScanLine(t *testing.T) {
	sts := []scanTest{
		{in: "", kind: LBlank},
		{in: "   ", kind: LBlank},
		{in: "# hello", kind: LComment},
		{in: "  # hello", kind: LComment, ind: 2},
		{in: "key: value", kind: LKeyValue, key: "key", val: "value"},
		{in: "key:", kind: LKeyOnly, key: "key"},
		{in: "  key:  spaced  ", kind: LKeyValue, ind: 2, key: "key", val: "spaced"},
		{in: "key: a: b", kind: LKeyValue, key: "key", val: "a: b"},
		{in: `key: "quoted"`, kind: LKeyValue, key: "key", val: "quoted"},
		{in: `key: " lead"`, kind: LKeyValue, key: "key", val: " lead"},
		{in: `key: 'it''s'`, kind: LKeyValue, key: "key", val: "it's"},
		{in: `"a:b": v`, kind: LKeyValue, key: "a:b", val: "v"},
		{in: "- item", kind: LItem, val: "item"},
		{in: "    - item", kind: LItem, ind: 4, val: "item"},
		{in: "-", kind: LItem},
		{in: `- "x y"`, kind: LItem, val: "x y"},
		{in: "no colon here", e: ErrLine},
		{in: ": novalue", e: ErrLine},
		{in: "\tkey: v", e: ErrTabIndent},
		{in: `key: "unterminated`, e: ErrQuote},
		{in: `key: "a" b`, e: ErrQuote},
	}
	for _, st := range sts {
		ln, err := ScanLine(st.in, 0)
		if st.e != nil {
			if !errors.Is(err, st.e) {
				t.Errorf("%q: got err %v, want %v", st.in, err, st.e)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", st.in, err)
			continue
		}
		if ln.Kind != st.kind || ln.Indent != st.ind || ln.Key != st.key || ln.Value != st.val {
			t.Errorf("%q: got (%s, %d, %q, %q)", st.in, ln.Kind, ln.Indent, ln.Key, ln.Value)
		}
		if ln.Raw != st.in {
			t.Errorf("%q: raw not retained", st.in)
		}
	}
}

func TestScanLineValOff(t *testing.T) {
	ln, err := ScanLine("  dir: /srv/alpha", 0)
	if err != nil {
		t.Fatal(err)
	}
	if ln.Raw[ln.ValOff:] != "/srv/alpha" {
		t.Errorf("ValOff %d points at %q", ln.ValOff, ln.Raw[ln.ValOff:])
	}
}

func TestSplitJoin(t *testing.T) {
	for _, in := range []string{"", "a\n", "a", "a\nb\n", "a\n\nb", "\n"} {
		lines, nl := Split([]byte(in))
		if got := string(Join(lines, nl)); got != in {
			t.Errorf("split/join %q -> %q", in, got)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	vals := []string{"", "plain", " lead", "trail ", `has "quotes"`, "a\nb", "tab\t", "it's", "#comment", "- item"}
	for _, v := range vals {
		q := Quote(v)
		got, n, err := Unquote(q)
		if err != nil {
			t.Errorf("%q: %v", v, err)
			continue
		}
		if n != len(q) || got != v {
			t.Errorf("%q: round trip gave %q (consumed %d of %d)", v, got, n, len(q))
		}
	}
}

func TestMaybeQuoteRescans(t *testing.T) {
	vals := []string{"plain", "", " lead", "#comment", "a:b", "x y z"}
	for _, v := range vals {
		ln, err := ScanLine("k: "+MaybeQuote(v), 0)
		if err != nil {
			t.Errorf("%q: %v", v, err)
			continue
		}
		if ln.Value != v {
			t.Errorf("%q: rescan gave %q", v, ln.Value)
		}
	}
}
