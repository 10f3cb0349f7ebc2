package main

import (
	"fmt"

	"github.com/rjzaar/regstore/txn"

	"github.com/scott-cotton/cli"
)

func validateDoc(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: validate takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, "ok")
	return nil
}

func backupDoc(cfg *BackupConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Backup.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: backup takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if cfg.L {
		ids, err := s.Backups()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cc.Out, id)
		}
		return nil
	}
	id, err := s.Backup()
	if err != nil {
		return err
	}
	cfg.vlog("backup", "doc", s.Path(), "id", id)
	fmt.Fprintln(cc.Out, id)
	return nil
}

func restore(cfg *RestoreConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Restore.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: restore takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if err := s.RestoreLatestBackup(); err != nil {
		return err
	}
	cfg.vlog("restore", "doc", s.Path())
	return nil
}

func prune(cfg *PruneConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Prune.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: prune takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	keep := cfg.Keep
	if !pruneKeepSet(cfg) {
		var ok bool
		keep, ok = cfg.MainConfig.keepBackups()
		if !ok {
			keep = txn.DefaultKeepBackups
		}
	}
	if err := s.PruneBackups(keep); err != nil {
		return err
	}
	cfg.vlog("prune", "doc", s.Path(), "keep", keep)
	return nil
}

func pruneKeepSet(cfg *PruneConfig) bool {
	for _, opt := range cfg.Prune.Opts {
		if opt.Name == "keep" {
			return opt.Value != nil
		}
	}
	return false
}
