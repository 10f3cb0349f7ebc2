package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rjzaar/regstore"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
)

// Exit codes, stable for scripting.
const (
	exitOK = iota
	exitIO
	exitUsage
	exitNotFound
	exitTypeMismatch
	exitParse
	exitValidation
	exitLockTimeout
)

func regstoreMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	cfg.Tool, err = LoadToolConfig(cfg.ConfigPath)
	if err != nil {
		return err
	}
	err = sub.Run(cc, args[1:])
	if err == nil {
		return nil
	}
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("regstore:"), err)
	return cli.ExitCodeErr(exitCode(err))
}

// exitCode maps the error taxonomy onto the documented codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrUsage), errors.Is(err, regstore.ErrPath):
		return exitUsage
	case errors.Is(err, regstore.ErrNotFound):
		return exitNotFound
	case errors.Is(err, regstore.ErrTypeMismatch):
		return exitTypeMismatch
	case errors.Is(err, regstore.ErrValidation):
		return exitValidation
	case errors.Is(err, regstore.ErrParse):
		return exitParse
	case errors.Is(err, regstore.ErrLockTimeout):
		return exitLockTimeout
	default:
		return exitIO
	}
}
