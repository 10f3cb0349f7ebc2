// Package txn serializes writers to one document path.
//
// A transaction is: acquire the sibling lock file with a bounded wait,
// re-read and re-parse the on-disk bytes under the lock, apply the
// mutation ops, validate the candidate, snapshot the pre-mutation
// bytes, then atomically rename the new bytes into place. Readers
// never lock: the rename is the only way bytes reach the final path,
// so they always see a complete old or new version.
package txn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/rjzaar/regstore/backup"
	"github.com/rjzaar/regstore/debug"
	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/libdiff"
	"github.com/rjzaar/regstore/parse"
	"github.com/rjzaar/regstore/token"
	"github.com/rjzaar/regstore/validate"
)

var ErrLockTimeout = errors.New("lock timeout")

const (
	DefaultLockTimeout = 5 * time.Second
	DefaultRetryDelay  = 50 * time.Millisecond
	DefaultKeepBackups = 10
)

type Options struct {
	// LockTimeout bounds the wait for the exclusive lock.
	LockTimeout time.Duration
	// RetryDelay is the poll interval while waiting for the lock.
	RetryDelay time.Duration
	// KeepBackups is how many backups rotation retains; negative
	// keeps all.
	KeepBackups int
	// BackupEvery suppresses a new backup while the latest one is
	// younger than this; zero snapshots before every real change.
	BackupEvery time.Duration
	// DryRun, when set, receives a diff of the pending change and the
	// transaction commits nothing.
	DryRun io.Writer
}

func (o *Options) withDefaults() Options {
	res := Options{}
	if o != nil {
		res = *o
	}
	if res.LockTimeout == 0 {
		res.LockTimeout = DefaultLockTimeout
	}
	if res.RetryDelay == 0 {
		res.RetryDelay = DefaultRetryDelay
	}
	if res.KeepBackups == 0 {
		res.KeepBackups = DefaultKeepBackups
	}
	return res
}

// Op is one mutation applied inside a transaction. It receives the
// freshly parsed document and returns the new raw line list.
type Op func(doc *ir.Document) ([]string, error)

// Update runs ops against the document at path as one transaction. A
// missing file reads as the empty document and is created on commit.
// If nothing changes byte-wise, nothing is written and no backup is
// taken.
func Update(ctx context.Context, path string, opts *Options, ops ...Op) error {
	o := opts.withDefaults()
	unlock, err := acquire(ctx, path, &o)
	if err != nil {
		return err
	}
	defer unlock()

	orig, mode, err := readCurrent(path)
	if err != nil {
		return err
	}
	doc, err := parse.Parse(orig, parse.WithFilename(path))
	if err != nil {
		return err
	}
	finalNL := doc.FinalNL || len(doc.Lines) == 0
	candidate := orig
	for _, op := range ops {
		lines, err := op(doc)
		if err != nil {
			return err
		}
		candidate = token.Join(lines, finalNL)
		doc, err = parse.Parse(candidate, parse.WithFilename(path))
		if err != nil {
			// a mutation op produced unparseable lines; surface it as
			// a validation failure, the on-disk file is untouched
			return fmt.Errorf("%w: %w", validate.ErrValidation, err)
		}
	}
	if bytes.Equal(candidate, orig) {
		if debug.Txn() {
			debug.Logf("txn %s: no-op\n", path)
		}
		return nil
	}
	if err := validate.Document(doc); err != nil {
		return err
	}
	if o.DryRun != nil {
		_, err := io.WriteString(o.DryRun, libdiff.Text(string(orig), string(candidate)))
		return err
	}
	if len(orig) > 0 {
		if err := snapshot(path, &o); err != nil {
			return err
		}
	}
	if debug.Txn() {
		debug.Logf("txn %s: writing %d bytes\n", path, len(candidate))
	}
	return backup.WriteAtomic(path, candidate, mode)
}

func acquire(ctx context.Context, path string, o *Options) (func(), error) {
	fl := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, o.LockTimeout)
	defer cancel()
	if debug.Lock() {
		debug.Logf("lock %s: acquiring\n", fl.Path())
	}
	ok, err := fl.TryLockContext(lockCtx, o.RetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s after %s", ErrLockTimeout, fl.Path(), o.LockTimeout)
	}
	if debug.Lock() {
		debug.Logf("lock %s: acquired\n", fl.Path())
	}
	return func() {
		if err := fl.Unlock(); err != nil && debug.Lock() {
			debug.Logf("lock %s: unlock failed: %v\n", fl.Path(), err)
		}
	}, nil
}

func readCurrent(path string) ([]byte, os.FileMode, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0o644, nil
		}
		return nil, 0, err
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	return d, mode, nil
}

// snapshot takes the pre-mutation backup unless the newest one is
// still inside the BackupEvery window, then rotates old backups out.
func snapshot(path string, o *Options) error {
	if o.BackupEvery > 0 {
		lt, err := backup.LatestTime(path)
		if err == nil && time.Since(lt) < o.BackupEvery {
			return nil
		}
		if err != nil && !errors.Is(err, backup.ErrNoBackup) {
			return err
		}
	}
	if _, err := backup.Create(path); err != nil {
		return err
	}
	return backup.Prune(path, o.KeepBackups)
}
