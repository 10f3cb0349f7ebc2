package regstore

import (
	"errors"

	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/ir/dotpath"
	"github.com/rjzaar/regstore/parse"
	"github.com/rjzaar/regstore/txn"
	"github.com/rjzaar/regstore/validate"
)

var (
	// ErrReadOnly reports a write against a read-only store.
	ErrReadOnly = errors.New("store is read-only")
	// ErrRestricted reports a bulk operation against a restricted
	// store, which only serves one path at a time.
	ErrRestricted = errors.New("store is restricted")

	ErrNotFound     = ir.ErrNotFound
	ErrPath         = dotpath.ErrPath
	ErrTypeMismatch = ir.ErrTypeMismatch
	ErrParse        = parse.ErrParse
	ErrValidation   = validate.ErrValidation
	ErrLockTimeout  = txn.ErrLockTimeout
)
