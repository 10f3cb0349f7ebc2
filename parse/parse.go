package parse

import (
	"fmt"

	"github.com/rjzaar/regstore/debug"
	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/token"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	lines, finalNL, err := token.Scan(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, pOpts.at(err.Error()))
	}
	doc := ir.NewDocument()
	doc.FinalNL = finalNL
	doc.Lines = make([]string, len(lines))
	for i := range lines {
		doc.Lines[i] = lines[i].Raw
	}
	if err := build(doc, lines, pOpts); err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseString(s string, opts ...ParseOption) (*ir.Document, error) {
	return Parse([]byte(s), opts...)
}

func build(doc *ir.Document, lines []token.Line, opts *parseOpts) error {
	stack := []*ir.Node{doc.Root}
	last := -1
	for i := range lines {
		ln := &lines[i]
		switch ln.Kind {
		case token.LBlank, token.LComment:
			continue
		}
		if debug.Parse() {
			debug.Logf("parse %s %q at %s\n", ln.Kind, ln.Raw, token.At(ln.Num))
		}
		for len(stack) > 1 && ln.Indent <= stack[len(stack)-1].Indent {
			stack[len(stack)-1].End = last + 1
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if len(top.Values) > 0 && ln.Indent != top.Values[0].Indent {
			return fmt.Errorf("%w: %w: %s", ErrParse, ErrIndent,
				opts.at(fmt.Sprintf("%q at %s", ln.Raw, token.At(ln.Num))))
		}
		if err := open(top, ln, opts); err != nil {
			return err
		}
		switch ln.Kind {
		case token.LItem:
			if top.Type != ir.ListType {
				return fmt.Errorf("%w: %s", ErrParse,
					opts.at(fmt.Sprintf("list item under %s at %s", top.Type, token.At(ln.Num))))
			}
			top.AddItem(&ir.Node{
				Type:   ir.ScalarType,
				Scalar: ln.Value,
				Start:  ln.Num,
				End:    ln.Num + 1,
				Indent: ln.Indent,
			})
		case token.LKeyValue, token.LKeyOnly:
			if top.Type != ir.MapType {
				return fmt.Errorf("%w: %s", ErrParse,
					opts.at(fmt.Sprintf("map key under %s at %s", top.Type, token.At(ln.Num))))
			}
			if top.Get(ln.Key) != nil {
				return fmt.Errorf("%w: %w: %s", ErrParse, ErrDuplicateKey,
					opts.at(fmt.Sprintf("%q at %s", ln.Key, token.At(ln.Num))))
			}
			n := &ir.Node{
				Type:   ir.ScalarType,
				Scalar: ln.Value,
				Empty:  ln.Kind == token.LKeyOnly,
				Start:  ln.Num,
				End:    ln.Num + 1,
				Indent: ln.Indent,
			}
			top.AddChild(ln.Key, n)
			if ln.Kind == token.LKeyOnly {
				stack = append(stack, n)
			}
		}
		last = ln.Num
	}
	for len(stack) > 0 {
		stack[len(stack)-1].End = last + 1
		stack = stack[:len(stack)-1]
	}
	return nil
}

// open converts a pending "key:" header into a map or list when its
// first deeper line arrives.
func open(top *ir.Node, ln *token.Line, opts *parseOpts) error {
	if top.Type != ir.ScalarType {
		return nil
	}
	if !top.Empty {
		// cannot happen: non-empty scalars are never pushed
		return fmt.Errorf("%w: %s", ErrParse,
			opts.at(fmt.Sprintf("content under scalar at %s", token.At(ln.Num))))
	}
	top.Empty = false
	top.Scalar = ""
	if ln.Kind == token.LItem {
		top.Type = ir.ListType
	} else {
		top.Type = ir.MapType
	}
	return nil
}
