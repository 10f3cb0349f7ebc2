package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rjzaar/regstore"
	"github.com/rjzaar/regstore/encode"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	File       string `cli:"name=f aliases=file desc='registry document path'"`
	ConfigPath string `cli:"name=config desc='tool config file (default $REGSTORE_CONFIG, then ~/.config/regstore/config.toml)'"`
	Color      bool   `cli:"name=color desc='render trees and diffs with color'"`
	Verbose    bool   `cli:"name=v desc='log each write verb'"`

	RO         bool `cli:"name=ro aliases=readonly desc='refuse every write through this invocation'"`
	Restricted bool `cli:"name=restricted desc='credentials mode: single-path reads only, no bulk verbs'"`
	DryRun     bool `cli:"name=n aliases=dry-run desc='preview the write as a diff, commit nothing'"`

	Keep int `cli:"name=keep desc='backups kept by rotation'"`

	// durations are FuncOpts; the set flags distinguish an explicit
	// zero from an absent flag when merging with the tool config.
	LockTimeout    time.Duration
	lockTimeoutSet bool
	BackupEvery    time.Duration
	backupEverySet bool

	Tool *ToolConfig

	Main *cli.Command
}

func (cfg *MainConfig) durOpt(d *time.Duration, set *bool) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		v, err := time.ParseDuration(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*d = v
		*set = true
		return v, nil
	})
}

func (cfg *MainConfig) optSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

// document resolves the target path from -f, falling back to the tool
// config.
func (cfg *MainConfig) document() (string, error) {
	if cfg.File != "" {
		return cfg.File, nil
	}
	if cfg.Tool != nil && cfg.Tool.Document != "" {
		return cfg.Tool.Document, nil
	}
	return "", fmt.Errorf("%w: no document: pass -f or set document in the tool config", cli.ErrUsage)
}

func (cfg *MainConfig) storeOpts() []regstore.Option {
	var opts []regstore.Option
	if d, ok := cfg.lockTimeout(); ok {
		opts = append(opts, regstore.LockTimeout(d))
	}
	if n, ok := cfg.keepBackups(); ok {
		opts = append(opts, regstore.KeepBackups(n))
	}
	if d, ok := cfg.backupEvery(); ok {
		opts = append(opts, regstore.BackupEvery(d))
	}
	switch {
	case cfg.Restricted:
		opts = append(opts, regstore.Restricted())
	case cfg.RO:
		opts = append(opts, regstore.ReadOnly())
	}
	if cfg.DryRun {
		opts = append(opts, regstore.DryRun(os.Stdout))
	}
	return opts
}

func (cfg *MainConfig) lockTimeout() (time.Duration, bool) {
	if cfg.lockTimeoutSet {
		return cfg.LockTimeout, true
	}
	if cfg.Tool != nil && cfg.Tool.LockTimeout.Duration > 0 {
		return cfg.Tool.LockTimeout.Duration, true
	}
	return 0, false
}

func (cfg *MainConfig) keepBackups() (int, bool) {
	if cfg.optSet("keep") {
		return cfg.Keep, true
	}
	if cfg.Tool != nil && cfg.Tool.KeepBackups > 0 {
		return cfg.Tool.KeepBackups, true
	}
	return 0, false
}

func (cfg *MainConfig) backupEvery() (time.Duration, bool) {
	if cfg.backupEverySet {
		return cfg.BackupEvery, true
	}
	if cfg.Tool != nil && cfg.Tool.BackupEvery.Duration > 0 {
		return cfg.Tool.BackupEvery.Duration, true
	}
	return 0, false
}

func (cfg *MainConfig) store() (*regstore.Store, error) {
	doc, err := cfg.document()
	if err != nil {
		return nil, err
	}
	return regstore.Open(doc, cfg.storeOpts()...), nil
}

// encOpts turns on colors when asked for, or when writing to a tty
// with -color left untouched.
func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if cfg.Color {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	if cfg.optSet("color") {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	return nil
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ListConfig struct {
	*MainConfig

	Where string `cli:"name=where desc='keep children whose scalar fields satisfy the expression'"`

	List *cli.Command
}

type ItemsConfig struct {
	*MainConfig

	Items *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type AppendConfig struct {
	*MainConfig

	Append *cli.Command
}

type DeleteConfig struct {
	*MainConfig

	Delete *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Validate *cli.Command
}

type BackupConfig struct {
	*MainConfig

	L bool `cli:"name=l aliases=list desc='list backups instead of creating one'"`

	Backup *cli.Command
}

type RestoreConfig struct {
	*MainConfig

	Restore *cli.Command
}

type PruneConfig struct {
	*MainConfig

	Keep int `cli:"name=keep desc='backups to retain'"`

	Prune *cli.Command
}

type ExportConfig struct {
	*MainConfig

	Format string `cli:"name=format aliases=o desc='output format: native, yaml, json'"`

	Export *cli.Command
}

type ImportConfig struct {
	*MainConfig

	Import *cli.Command
}

type PatchConfig struct {
	*MainConfig

	String bool `cli:"name=s desc='patch arg is a literal merge patch'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
