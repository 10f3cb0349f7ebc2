package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rjzaar/regstore"
	"github.com/rjzaar/regstore/encode"
	"github.com/rjzaar/regstore/libdiff"
	"github.com/rjzaar/regstore/parse"

	"github.com/scott-cotton/cli"
)

func export(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: export takes at most one path", cli.ErrUsage)
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	format := cfg.Format
	if format == "" {
		format = regstore.FormatNative
	}

	// a scalar target prints as its bare value in any format
	v, err := s.Get(path)
	switch {
	case err == nil:
		fmt.Fprintln(cc.Out, v)
		return nil
	case errors.Is(err, regstore.ErrTypeMismatch):
		// a tree; fall through to the real export
	default:
		return err
	}

	d, err := s.Export(path, format)
	if err != nil {
		return err
	}
	if format == regstore.FormatNative {
		if opts := cfg.encOpts(cc.Out); len(opts) > 0 {
			doc, err := parse.Parse(d)
			if err != nil {
				return err
			}
			return encode.Encode(doc.Root, cc.Out, opts...)
		}
	}
	_, err = cc.Out.Write(d)
	return err
}

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: diff takes no arguments", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if opts := cfg.encOpts(cc.Out); len(opts) > 0 {
		ids, err := s.Backups()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("no backup of %s to diff against", s.Path())
		}
		old, err := os.ReadFile(ids[len(ids)-1])
		if err != nil {
			return err
		}
		cur, err := os.ReadFile(s.Path())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		fmt.Fprint(cc.Out, libdiff.Pretty(string(old), string(cur)))
		return nil
	}
	txt, err := s.DiffLatestBackup()
	if err != nil {
		return err
	}
	fmt.Fprint(cc.Out, txt)
	return nil
}
