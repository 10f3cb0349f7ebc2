package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch takes a path and an optional patch argument", cli.ErrUsage)
	}
	path := args[0]
	var p []byte
	switch {
	case len(args) == 1:
		p, err = io.ReadAll(os.Stdin)
	case cfg.String:
		p = []byte(args[1])
	default:
		p, err = os.ReadFile(args[1])
	}
	if err != nil {
		return err
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if err := s.MergePatch(context.Background(), path, p); err != nil {
		return err
	}
	cfg.vlog("patch", "doc", s.Path(), "path", path)
	return nil
}

func importDoc(cfg *ImportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Import.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 2 {
		return fmt.Errorf("%w: import takes an optional path and an optional file", cli.ErrUsage)
	}
	path := ""
	if len(args) >= 1 {
		path = args[0]
	}
	var d []byte
	if len(args) == 2 {
		d, err = os.ReadFile(args[1])
	} else {
		d, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if err := s.Import(context.Background(), path, d); err != nil {
		return err
	}
	cfg.vlog("import", "doc", s.Path(), "path", path)
	return nil
}
