package token

import "fmt"

// Pos identifies a location in a document. Line and Col are 1-based;
// Col is 0 when only the line is known.
type Pos struct {
	Line int
	Col  int
}

func (p *Pos) String() string {
	if p == nil {
		return "?"
	}
	if p.Col == 0 {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("line %d, col %d", p.Line, p.Col)
}

func At(num int) *Pos {
	return &Pos{Line: num + 1}
}
