// Package backup manages the timestamped pre-mutation snapshots kept
// alongside a document. Backups are write-once files: rotation deletes
// whole files and nothing ever edits one in place.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rjzaar/regstore/debug"
	"github.com/rjzaar/regstore/validate"
)

const (
	infix = ".bak."
	// stampLayout sorts lexicographically in time order.
	stampLayout = "20060102T150405.000000000"
)

var ErrNoBackup = errors.New("no backup")

// Create snapshots the document at path into a sibling backup file and
// returns the backup's path, which doubles as its id.
func Create(path string) (string, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	id := path + infix + time.Now().UTC().Format(stampLayout)
	if err := WriteAtomic(id, d, mode); err != nil {
		return "", err
	}
	if debug.Backup() {
		debug.Logf("backup %s -> %s\n", path, id)
	}
	return id, nil
}

// List returns the backup ids for path, oldest first.
func List(path string) ([]string, error) {
	matches, err := filepath.Glob(path + infix + "*")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Latest returns the most recent backup id for path.
func Latest(path string) (string, error) {
	ids, err := List(path)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w for %s", ErrNoBackup, path)
	}
	return ids[len(ids)-1], nil
}

// LatestTime returns the creation time of the most recent backup.
func LatestTime(path string) (time.Time, error) {
	id, err := Latest(path)
	if err != nil {
		return time.Time{}, err
	}
	return Stamp(id)
}

// Stamp extracts a backup id's creation time from its name.
func Stamp(id string) (time.Time, error) {
	i := strings.LastIndex(id, infix)
	if i < 0 {
		return time.Time{}, fmt.Errorf("%w: %q is not a backup id", ErrNoBackup, id)
	}
	return time.Parse(stampLayout, id[i+len(infix):])
}

// Restore atomically replaces the document at path with the most
// recent backup whose contents still validate, skipping corrupted
// backups.
func Restore(path string) error {
	ids, err := List(path)
	if err != nil {
		return err
	}
	for i := len(ids) - 1; i >= 0; i-- {
		d, err := os.ReadFile(ids[i])
		if err != nil {
			return err
		}
		if err := validate.Bytes(d); err != nil {
			if debug.Backup() {
				debug.Logf("skip invalid backup %s: %v\n", ids[i], err)
			}
			continue
		}
		mode := os.FileMode(0o644)
		if fi, err := os.Stat(ids[i]); err == nil {
			mode = fi.Mode().Perm()
		}
		if debug.Backup() {
			debug.Logf("restore %s <- %s\n", path, ids[i])
		}
		return WriteAtomic(path, d, mode)
	}
	return fmt.Errorf("%w: no valid backup for %s", ErrNoBackup, path)
}

// Prune keeps the keep most recent backups for path and deletes the
// rest. keep < 0 keeps everything.
func Prune(path string, keep int) error {
	if keep < 0 {
		return nil
	}
	ids, err := List(path)
	if err != nil {
		return err
	}
	if len(ids) <= keep {
		return nil
	}
	for _, id := range ids[:len(ids)-keep] {
		if err := os.Remove(id); err != nil {
			return err
		}
		if debug.Backup() {
			debug.Logf("pruned %s\n", id)
		}
	}
	return nil
}

// WriteAtomic writes d to a temp file in path's directory and renames
// it into place, so readers only ever see complete contents. The
// transaction manager shares it for the final commit.
func WriteAtomic(path string, d []byte, mode os.FileMode) error {
	dir, base := filepath.Split(path)
	f, err := os.CreateTemp(dir, "."+base+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(d); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
