package token

import "errors"

type LineKind int

const (
	LBlank LineKind = iota
	LComment
	LKeyValue // key: value
	LKeyOnly  // key:
	LItem     // - item
)

func (k LineKind) String() string {
	return map[LineKind]string{
		LBlank:    "LBlank",
		LComment:  "LComment",
		LKeyValue: "LKeyValue",
		LKeyOnly:  "LKeyOnly",
		LItem:     "LItem",
	}[k]
}

// Line is one classified raw line of a document. Raw holds the original
// text without its trailing newline; Key and Value are unquoted.
type Line struct {
	Kind   LineKind
	Num    int // zero-based index in the document
	Indent int // count of leading spaces
	Key    string
	Value  string
	// ValOff is the byte offset in Raw where the value text begins, for
	// LKeyValue and LItem lines. It lets an editor replace the value
	// substring while leaving the rest of the line untouched.
	ValOff int
	Raw    string
}

var (
	ErrLine      = errors.New("malformed line")
	ErrTabIndent = errors.New("tab in indentation")
	ErrQuote     = errors.New("bad quoted string")
)

type ScanErr struct {
	Err error
	Pos Pos
}

func (e *ScanErr) Unwrap() error {
	return e.Err
}

func (e *ScanErr) Error() string {
	return e.Err.Error() + " at " + e.Pos.String()
}

func newScanErr(err error, num, col int) *ScanErr {
	return &ScanErr{Err: err, Pos: Pos{Line: num + 1, Col: col + 1}}
}
