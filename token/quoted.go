package token

import (
	"strings"
)

// NeedsQuote reports whether a scalar value cannot be written bare
// without changing how a rescan would read it.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	if v[0] == ' ' || v[len(v)-1] == ' ' {
		return true
	}
	switch v[0] {
	case '"', '\'', '#':
		return true
	}
	if strings.HasPrefix(v, "- ") || v == "-" {
		return true
	}
	return strings.ContainsAny(v, "\n\r\t")
}

// KeyNeedsQuote reports whether a map key must be quoted on its line.
func KeyNeedsQuote(k string) bool {
	if k == "" {
		return true
	}
	if k[0] == ' ' || k[len(k)-1] == ' ' {
		return true
	}
	switch k[0] {
	case '"', '\'', '#', '-':
		return true
	}
	return strings.ContainsAny(k, ":\n\r\t")
}

// PathQuote reports whether a key needs quoting inside a dotted path,
// which additionally reserves '.' and '['.
func PathQuote(k string) bool {
	return KeyNeedsQuote(k) || strings.ContainsAny(k, ".[]")
}

// Quote renders v as a double-quoted string.
func Quote(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// MaybeQuote quotes v only when it cannot be written bare.
func MaybeQuote(v string) string {
	if NeedsQuote(v) {
		return Quote(v)
	}
	return v
}

// Unquote reads one quoted string from the front of s, returning the
// decoded value and the number of bytes consumed including both quote
// characters. Single-quoted strings are literal except for '' which
// encodes one quote; double-quoted strings support backslash escapes.
func Unquote(s string) (string, int, error) {
	if len(s) < 2 {
		return "", 0, ErrQuote
	}
	q := s[0]
	if q != '"' && q != '\'' {
		return "", 0, ErrQuote
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == q && q == '\'':
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			return b.String(), i + 1, nil
		case c == q:
			return b.String(), i + 1, nil
		case c == '\\' && q == '"':
			if i+1 >= len(s) {
				return "", 0, ErrQuote
			}
			switch s[i+1] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", 0, ErrQuote
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, ErrQuote
}
