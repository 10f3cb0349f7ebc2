package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ToolConfig is the optional on-disk tool configuration. Every field
// has a working zero value; flags override whatever is set here.
type ToolConfig struct {
	Document    string   `toml:"document"`
	LockTimeout duration `toml:"lock_timeout"`
	KeepBackups int      `toml:"keep_backups"`
	BackupEvery duration `toml:"backup_every"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// LoadToolConfig reads the config at path, or at $REGSTORE_CONFIG, or
// at ~/.config/regstore/config.toml. Only an explicitly named file is
// required to exist.
func LoadToolConfig(path string) (*ToolConfig, error) {
	required := path != ""
	if path == "" {
		path = os.Getenv("REGSTORE_CONFIG")
		required = path != ""
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &ToolConfig{}, nil
		}
		path = filepath.Join(home, ".config", "regstore", "config.toml")
	}
	cfg := &ToolConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return &ToolConfig{}, nil
		}
		return nil, err
	}
	return cfg, nil
}
