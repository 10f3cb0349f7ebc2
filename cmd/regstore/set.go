package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: set takes a path and a value", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if err := s.Set(context.Background(), args[0], args[1]); err != nil {
		return err
	}
	cfg.vlog("set", "doc", s.Path(), "path", args[0], "value", args[1])
	return nil
}

func appendItem(cfg *AppendConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Append.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: append takes a path and an item", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if err := s.Append(context.Background(), args[0], args[1]); err != nil {
		return err
	}
	cfg.vlog("append", "doc", s.Path(), "path", args[0], "item", args[1])
	return nil
}

func del(cfg *DeleteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Delete.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: delete takes exactly one path", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	if err := s.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	cfg.vlog("delete", "doc", s.Path(), "path", args[0])
	return nil
}
