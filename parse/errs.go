package parse

import "errors"

var (
	ErrParse        = errors.New("parse error")
	ErrIndent       = errors.New("inconsistent indentation")
	ErrDuplicateKey = errors.New("duplicate key")
)
