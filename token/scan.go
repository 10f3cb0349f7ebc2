package token

import (
	"strings"
)

// Split breaks a document into raw lines without their trailing
// newlines. The second result reports whether the document ended with a
// final newline, which must be reproduced on re-serialization.
func Split(d []byte) ([]string, bool) {
	if len(d) == 0 {
		return nil, false
	}
	lines := strings.Split(string(d), "\n")
	finalNL := false
	if lines[len(lines)-1] == "" {
		finalNL = true
		lines = lines[:len(lines)-1]
	}
	return lines, finalNL
}

// Join is the inverse of Split.
func Join(lines []string, finalNL bool) []byte {
	if len(lines) == 0 {
		return nil
	}
	s := strings.Join(lines, "\n")
	if finalNL {
		s += "\n"
	}
	return []byte(s)
}

// Scan classifies every line of a document.
func Scan(d []byte) ([]Line, bool, error) {
	raw, finalNL := Split(d)
	lines := make([]Line, len(raw))
	for i, r := range raw {
		ln, err := ScanLine(r, i)
		if err != nil {
			return nil, false, err
		}
		lines[i] = ln
	}
	return lines, finalNL, nil
}

// ScanLine classifies a single raw line. num is the zero-based line
// number used for error positions.
func ScanLine(raw string, num int) (Line, error) {
	ln := Line{Num: num, Raw: raw, ValOff: len(raw)}
	i := 0
	for i < len(raw) && raw[i] == ' ' {
		i++
	}
	if i < len(raw) && raw[i] == '\t' {
		return ln, newScanErr(ErrTabIndent, num, i)
	}
	ln.Indent = i
	rest := raw[i:]
	switch {
	case strings.TrimSpace(rest) == "":
		// whitespace-only lines carry no depth
		ln.Kind = LBlank
		ln.Indent = 0
		return ln, nil
	case rest[0] == '#':
		ln.Kind = LComment
		return ln, nil
	case rest == "-":
		ln.Kind = LItem
		ln.Value = ""
		ln.ValOff = len(raw)
		return ln, nil
	case strings.HasPrefix(rest, "- "):
		ln.Kind = LItem
		off := i + 2
		for off < len(raw) && raw[off] == ' ' {
			off++
		}
		ln.ValOff = off
		v, err := scanValue(raw[off:], num, off)
		if err != nil {
			return ln, err
		}
		ln.Value = v
		return ln, nil
	}
	return scanKeyLine(ln, raw, i, num)
}

func scanKeyLine(ln Line, raw string, i, num int) (Line, error) {
	rest := raw[i:]
	var key string
	var colon int
	if rest[0] == '"' || rest[0] == '\'' {
		k, n, err := Unquote(rest)
		if err != nil {
			return ln, newScanErr(err, num, i)
		}
		key = k
		colon = i + n
		if colon >= len(raw) || raw[colon] != ':' {
			return ln, newScanErr(ErrLine, num, colon)
		}
	} else {
		j := strings.IndexByte(rest, ':')
		if j < 0 {
			return ln, newScanErr(ErrLine, num, i)
		}
		key = strings.TrimRight(rest[:j], " ")
		if key == "" {
			return ln, newScanErr(ErrLine, num, i)
		}
		colon = i + j
	}
	ln.Key = key
	off := colon + 1
	for off < len(raw) && raw[off] == ' ' {
		off++
	}
	if off >= len(raw) {
		ln.Kind = LKeyOnly
		ln.ValOff = len(raw)
		return ln, nil
	}
	ln.Kind = LKeyValue
	ln.ValOff = off
	v, err := scanValue(raw[off:], num, off)
	if err != nil {
		return ln, err
	}
	ln.Value = v
	return ln, nil
}

func scanValue(s string, num, col int) (string, error) {
	if s == "" {
		return "", nil
	}
	if s[0] == '"' || s[0] == '\'' {
		v, n, err := Unquote(s)
		if err != nil {
			return "", newScanErr(err, num, col)
		}
		if strings.TrimSpace(s[n:]) != "" {
			return "", newScanErr(ErrQuote, num, col+n)
		}
		return v, nil
	}
	return strings.TrimRight(s, " "), nil
}
