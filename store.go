// Package regstore is a layout-preserving configuration store for the
// site registry documents that drive ops automation.
//
// One Store handles one on-disk document. Reads parse the current
// bytes and never lock; writes run as transactions that re-read under
// an exclusive lock, mutate the minimal line range, validate, snapshot
// a backup, and atomically rename the new bytes into place. Comments,
// blank lines and key order survive every mutation untouched.
package regstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rjzaar/regstore/backup"
	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/ir/dotpath"
	"github.com/rjzaar/regstore/libdiff"
	"github.com/rjzaar/regstore/mutate"
	"github.com/rjzaar/regstore/parse"
	"github.com/rjzaar/regstore/txn"
	"github.com/rjzaar/regstore/validate"
)

type Store struct {
	path string
	o    storeOpts
}

// Open returns a handle on the document at path. No I/O happens until
// the first read or write; the file need not exist yet.
func Open(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(&s.o)
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

// load reads and parses the current on-disk bytes. A missing file
// reads as the empty document.
func (s *Store) load() (*ir.Document, error) {
	d, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ir.NewDocument(), nil
		}
		return nil, err
	}
	return parse.Parse(d, parse.WithFilename(s.path))
}

func (s *Store) resolve(path string) (*ir.Ref, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	p, err := dotpath.Parse(path)
	if err != nil {
		return nil, err
	}
	return ir.Resolve(doc, p)
}

// Get returns the scalar at path.
func (s *Store) Get(path string) (string, error) {
	ref, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if !ref.Resolved() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	n := ref.Node
	if n.Type != ir.ScalarType {
		return "", fmt.Errorf("%w: %s is a %s, not a scalar", ErrTypeMismatch, path, n.Type)
	}
	return n.Scalar, nil
}

// GetDefault is Get, with a missing path resolving to def instead of
// an error.
func (s *Store) GetDefault(path, def string) (string, error) {
	v, err := s.Get(path)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	return v, err
}

// GetList returns the items of the list at path.
func (s *Store) GetList(path string) ([]string, error) {
	ref, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	n := ref.Node
	switch {
	case n.Type == ir.ListType:
		return n.Items(), nil
	case n.Type == ir.ScalarType && n.Empty:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s is a %s, not a list", ErrTypeMismatch, path, n.Type)
	}
}

// Children returns the ordered keys of the map at path. The empty
// path enumerates the document's top-level keys.
func (s *Store) Children(path string) ([]string, error) {
	ref, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	if !ref.Resolved() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	n := ref.Node
	switch {
	case n.Type == ir.MapType:
		return append([]string(nil), n.Keys...), nil
	case n.Type == ir.ScalarType && n.Empty:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s is a %s, not a map", ErrTypeMismatch, path, n.Type)
	}
}

func (s *Store) update(ctx context.Context, ops ...txn.Op) error {
	if s.o.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, s.path)
	}
	return txn.Update(ctx, s.path, &s.o.txn, ops...)
}

// Set writes the scalar at path, creating missing intermediate maps.
func (s *Store) Set(ctx context.Context, path, value string) error {
	p, err := dotpath.Parse(path)
	if err != nil {
		return err
	}
	return s.update(ctx, func(doc *ir.Document) ([]string, error) {
		return mutate.SetScalar(doc, p, value)
	})
}

// SetList replaces the list at path with items.
func (s *Store) SetList(ctx context.Context, path string, items []string) error {
	p, err := dotpath.Parse(path)
	if err != nil {
		return err
	}
	return s.update(ctx, func(doc *ir.Document) ([]string, error) {
		return mutate.SetList(doc, p, items)
	})
}

// Append adds one item at the end of the list at path, creating the
// list if absent.
func (s *Store) Append(ctx context.Context, path, item string) error {
	p, err := dotpath.Parse(path)
	if err != nil {
		return err
	}
	return s.update(ctx, func(doc *ir.Document) ([]string, error) {
		return mutate.AppendList(doc, p, item)
	})
}

// Delete removes the node at path, cascading over emptied parents.
func (s *Store) Delete(ctx context.Context, path string) error {
	p, err := dotpath.Parse(path)
	if err != nil {
		return err
	}
	return s.update(ctx, func(doc *ir.Document) ([]string, error) {
		return mutate.Delete(doc, p)
	})
}

// Validate checks the on-disk document's structural well-formedness.
func (s *Store) Validate() error {
	return validate.File(s.path)
}

// Backup snapshots the current bytes and returns the backup id.
func (s *Store) Backup() (string, error) {
	if s.o.readOnly {
		return "", fmt.Errorf("%w: %s", ErrReadOnly, s.path)
	}
	return backup.Create(s.path)
}

// RestoreLatestBackup atomically replaces the document with the most
// recent valid backup.
func (s *Store) RestoreLatestBackup() error {
	if s.o.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, s.path)
	}
	return backup.Restore(s.path)
}

// PruneBackups keeps the keep most recent backups.
func (s *Store) PruneBackups(keep int) error {
	if s.o.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, s.path)
	}
	return backup.Prune(s.path, keep)
}

// Backups lists backup ids, oldest first.
func (s *Store) Backups() ([]string, error) {
	return backup.List(s.path)
}

// DiffLatestBackup renders the changes from the latest backup to the
// current document.
func (s *Store) DiffLatestBackup() (string, error) {
	id, err := backup.Latest(s.path)
	if err != nil {
		return "", err
	}
	old, err := os.ReadFile(id)
	if err != nil {
		return "", err
	}
	cur, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return libdiff.Text(string(old), string(cur)), nil
}
