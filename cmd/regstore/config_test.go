package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadToolConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.toml")
	contents := `document = "/srv/registry.reg"
lock_timeout = "2s"
keep_backups = 5
backup_every = "1m"
`
	if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadToolConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Document != "/srv/registry.reg" {
		t.Errorf("document = %q", cfg.Document)
	}
	if cfg.LockTimeout.Duration != 2*time.Second {
		t.Errorf("lock_timeout = %v", cfg.LockTimeout.Duration)
	}
	if cfg.KeepBackups != 5 {
		t.Errorf("keep_backups = %d", cfg.KeepBackups)
	}
	if cfg.BackupEvery.Duration != time.Minute {
		t.Errorf("backup_every = %v", cfg.BackupEvery.Duration)
	}
}

func TestLoadToolConfigMissing(t *testing.T) {
	// an explicitly named missing file is an error
	if _, err := LoadToolConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing named config: no error")
	}
}

func TestExitCode(t *testing.T) {
	// spot-check the taxonomy mapping; full coverage lives with the
	// errors themselves
	if c := exitCode(nil); c != exitOK {
		t.Errorf("nil = %d", c)
	}
	if c := exitCode(os.ErrPermission); c != exitIO {
		t.Errorf("io = %d", c)
	}
}
