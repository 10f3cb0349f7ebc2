package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: get takes a path and an optional default", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	var v string
	if len(args) == 2 {
		v, err = s.GetDefault(args[0], args[1])
	} else {
		v, err = s.Get(args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, v)
	return nil
}

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: list takes at most one path", cli.ErrUsage)
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	var keys []string
	if cfg.Where != "" {
		keys, err = s.Where(path, cfg.Where)
	} else {
		keys, err = s.Children(path)
	}
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(cc.Out, k)
	}
	return nil
}

func items(cfg *ItemsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Items.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: items takes exactly one path", cli.ErrUsage)
	}
	s, err := cfg.store()
	if err != nil {
		return err
	}
	its, err := s.GetList(args[0])
	if err != nil {
		return err
	}
	for _, it := range its {
		fmt.Fprintln(cc.Out, it)
	}
	return nil
}
