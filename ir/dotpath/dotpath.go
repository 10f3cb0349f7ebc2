// Package dotpath parses and prints the dotted paths that address
// nodes in a document, e.g. "sites.alpha.remotes[0]". Fields containing
// reserved characters are quoted: `sites."my.site".directory`.
package dotpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rjzaar/regstore/token"
)

var ErrPath = errors.New("bad path")

// Segment addresses one step into a document: a map key or a list index.
type Segment struct {
	Field   string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	if token.PathQuote(s.Field) {
		return token.Quote(s.Field)
	}
	return s.Field
}

type Path []Segment

// Fields builds a path of map keys.
func Fields(keys ...string) Path {
	p := make(Path, len(keys))
	for i, k := range keys {
		p[i] = Segment{Field: k}
	}
	return p
}

func (p Path) Append(seg Segment) Path {
	return append(p[:len(p):len(p)], seg)
}

func (p Path) Child(key string) Path {
	return p.Append(Segment{Field: key})
}

func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

func (p Path) HasIndex() bool {
	for _, s := range p {
		if s.IsIndex {
			return true
		}
	}
	return false
}

func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 && !s.IsIndex {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Parse parses a dotted path. The empty string is the root path.
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	var p Path
	i := 0
	wantField := true
	for i < len(s) {
		switch {
		case s[i] == '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("%w: unterminated index in %q", ErrPath, s)
			}
			n, err := strconv.Atoi(s[i+1 : i+j])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrPath, s[i+1:i+j], s)
			}
			p = append(p, Segment{Index: n, IsIndex: true})
			i += j + 1
			wantField = false
		case wantField && (s[i] == '"' || s[i] == '\''):
			f, n, err := token.Unquote(s[i:])
			if err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrPath, err, s)
			}
			p = append(p, Segment{Field: f})
			i += n
			wantField = false
		case wantField:
			j := strings.IndexAny(s[i:], ".[")
			if j < 0 {
				j = len(s) - i
			}
			if j == 0 {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrPath, s)
			}
			p = append(p, Segment{Field: s[i : i+j]})
			i += j
			wantField = false
		case s[i] == '.':
			i++
			wantField = true
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrPath, s[i], s)
		}
	}
	if wantField {
		return nil, fmt.Errorf("%w: trailing separator in %q", ErrPath, s)
	}
	return p, nil
}

// MustParse is Parse for statically known paths.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}
