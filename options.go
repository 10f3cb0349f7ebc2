package regstore

import (
	"io"
	"time"

	"github.com/rjzaar/regstore/txn"
)

type storeOpts struct {
	txn        txn.Options
	readOnly   bool
	restricted bool
}

type Option func(*storeOpts)

// LockTimeout bounds how long writers wait for the document lock.
func LockTimeout(d time.Duration) Option {
	return func(o *storeOpts) { o.txn.LockTimeout = d }
}

// KeepBackups sets how many backups rotation retains.
func KeepBackups(n int) Option {
	return func(o *storeOpts) { o.txn.KeepBackups = n }
}

// BackupEvery suppresses new backups while the latest is younger than
// d; zero snapshots before every byte-changing write.
func BackupEvery(d time.Duration) Option {
	return func(o *storeOpts) { o.txn.BackupEvery = d }
}

// DryRun diverts every write into a diff written to w; nothing
// commits.
func DryRun(w io.Writer) Option {
	return func(o *storeOpts) { o.txn.DryRun = w }
}

// ReadOnly rejects all writes through this handle.
func ReadOnly() Option {
	return func(o *storeOpts) { o.readOnly = true }
}

// Restricted marks a store holding sensitive credentials: read-only,
// and bulk operations (export, import, patch, where) are refused so
// callers must ask for one path at a time.
func Restricted() Option {
	return func(o *storeOpts) {
		o.readOnly = true
		o.restricted = true
	}
}
