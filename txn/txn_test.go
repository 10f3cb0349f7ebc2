package txn

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"github.com/rjzaar/regstore/backup"
	"github.com/rjzaar/regstore/ir"
	"github.com/rjzaar/regstore/ir/dotpath"
	"github.com/rjzaar/regstore/mutate"
	"github.com/rjzaar/regstore/validate"
)

func set(path string, value string) Op {
	return func(doc *ir.Document) ([]string, error) {
		return mutate.SetScalar(doc, dotpath.MustParse(path), value)
	}
}

func TestUpdateCreatesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reg.yml")
	err := Update(context.Background(), p, nil, set("sites.alpha.directory", "/srv/alpha"))
	if err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	want := "sites:\n  alpha:\n    directory: /srv/alpha\n"
	if string(d) != want {
		t.Errorf("got %q", d)
	}
	// creating a file takes no backup, there were no bytes to keep
	ids, _ := backup.List(p)
	if len(ids) != 0 {
		t.Errorf("unexpected backups %v", ids)
	}
}

func TestUpdateBacksUpBeforeChange(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reg.yml")
	if err := os.WriteFile(p, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Update(context.Background(), p, nil, set("a", "2")); err != nil {
		t.Fatal(err)
	}
	ids, err := backup.List(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Fatalf("backups = %v", ids)
	}
	d, _ := os.ReadFile(ids[0])
	if string(d) != "a: 1\n" {
		t.Errorf("backup holds %q, want pre-mutation bytes", d)
	}
}

func TestUpdateNoOpSkipsWriteAndBackup(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reg.yml")
	if err := os.WriteFile(p, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	before, _ := os.Stat(p)
	if err := Update(context.Background(), p, nil, set("a", "1")); err != nil {
		t.Fatal(err)
	}
	after, _ := os.Stat(p)
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("no-op write touched the file")
	}
	ids, _ := backup.List(p)
	if len(ids) != 0 {
		t.Errorf("no-op took backups %v", ids)
	}
}

func TestUpdateRejectsInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reg.yml")
	if err := os.WriteFile(p, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Update(context.Background(), p, nil, set("a", "x\ny"))
	if !errors.Is(err, validate.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	d, _ := os.ReadFile(p)
	if string(d) != "a: 1\n" {
		t.Errorf("rejected txn changed file to %q", d)
	}
}

func TestUpdateLockTimeout(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reg.yml")
	fl := flock.New(p + ".lock")
	if err := fl.Lock(); err != nil {
		t.Fatal(err)
	}
	defer fl.Unlock()
	opts := &Options{LockTimeout: 100 * time.Millisecond, RetryDelay: 10 * time.Millisecond}
	err := Update(context.Background(), p, opts, set("a", "1"))
	if !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("got %v, want ErrLockTimeout", err)
	}
	if _, err := os.Stat(p); !errors.Is(err, os.ErrNotExist) {
		t.Error("timed-out txn left side effects")
	}
}

func TestUpdateDryRun(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reg.yml")
	if err := os.WriteFile(p, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	opts := &Options{DryRun: &buf}
	if err := Update(context.Background(), p, opts, set("a", "2")); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("dry run produced no diff")
	}
	d, _ := os.ReadFile(p)
	if string(d) != "a: 1\n" {
		t.Errorf("dry run wrote %q", d)
	}
}

func TestConcurrentDisjointWriters(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reg.yml")
	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := "sites.s" + strconv.Itoa(i) + ".directory"
			errs[i] = Update(context.Background(), p, nil, set(key, "/srv/"+strconv.Itoa(i)))
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d: %v", i, err)
		}
	}
	d, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range n {
		key := "    directory: /srv/" + strconv.Itoa(i) + "\n"
		if !bytes.Contains(d, []byte(key)) {
			t.Errorf("lost write %d:\n%s", i, d)
		}
	}
	if err := validate.File(p); err != nil {
		t.Errorf("final document invalid: %v", err)
	}
}

func TestReadersSeeCompleteVersions(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reg.yml")
	if err := Update(context.Background(), p, nil, set("counter", "0")); err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 20; i++ {
			if err := Update(context.Background(), p, nil, set("counter", strconv.Itoa(i))); err != nil {
				t.Errorf("writer: %v", err)
				return
			}
		}
	}()
	for {
		select {
		case <-done:
			return
		default:
		}
		d, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("reader: %v", err)
		}
		if err := validate.Bytes(d); err != nil {
			t.Fatalf("reader saw torn bytes %q: %v", d, err)
		}
	}
}
