package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "lock-timeout",
			Description: "how long writes wait for the document lock",
			Type:        cli.NamedFuncOpt(cfg.durOpt(&cfg.LockTimeout, &cfg.lockTimeoutSet), "(duration)"),
		},
		&cli.Opt{
			Name:        "backup-every",
			Description: "skip new backups while the latest is younger than this",
			Type:        cli.NamedFuncOpt(cfg.durOpt(&cfg.BackupEvery, &cfg.backupEverySet), "(duration)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "regstore").
		WithSynopsis("regstore [opts] command [opts]").
		WithDescription("regstore reads and rewrites site registry documents without disturbing their layout.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return regstoreMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			ListCommand(cfg),
			ItemsCommand(cfg),
			SetCommand(cfg),
			AppendCommand(cfg),
			DeleteCommand(cfg),
			ValidateCommand(cfg),
			BackupCommand(cfg),
			RestoreCommand(cfg),
			PruneCommand(cfg),
			ExportCommand(cfg),
			ImportCommand(cfg),
			PatchCommand(cfg),
			DiffCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [default]").
		WithDescription("print the scalar at path").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithOpts(opts...).
		WithSynopsis("list [-where expr] [path]").
		WithDescription("print the keys under the map at path, optionally filtered").
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func ItemsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ItemsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Items, "items").
		WithAliases("i").
		WithSynopsis("items <path>").
		WithDescription("print the items of the list at path").
		WithRun(func(cc *cli.Context, args []string) error {
			return items(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set <path> <value>").
		WithDescription("write the scalar at path, creating missing parents").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func AppendCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AppendConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Append, "append").
		WithAliases("a", "add").
		WithSynopsis("append <path> <item>").
		WithDescription("add one item at the end of the list at path").
		WithRun(func(cc *cli.Context, args []string) error {
			return appendItem(cfg, cc, args)
		})
}

func DeleteCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DeleteConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Delete, "delete").
		WithAliases("d", "del", "rm").
		WithSynopsis("delete <path>").
		WithDescription("remove the node at path, cascading over emptied parents").
		WithRun(func(cc *cli.Context, args []string) error {
			return del(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("check").
		WithSynopsis("validate").
		WithDescription("check the document's structural well-formedness").
		WithRun(func(cc *cli.Context, args []string) error {
			return validateDoc(cfg, cc, args)
		})
}

func BackupCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BackupConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Backup, "backup").
		WithSynopsis("backup [-l]").
		WithDescription("snapshot the document, or list existing snapshots").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return backupDoc(cfg, cc, args)
		})
}

func RestoreCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RestoreConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Restore, "restore").
		WithSynopsis("restore").
		WithDescription("replace the document with the newest backup that still parses").
		WithRun(func(cc *cli.Context, args []string) error {
			return restore(cfg, cc, args)
		})
}

func PruneCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PruneConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Prune, "prune").
		WithSynopsis("prune [-keep n]").
		WithDescription("drop all but the most recent backups").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return prune(cfg, cc, args)
		})
}

func ExportCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExportConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Export, "export").
		WithAliases("e", "dump").
		WithOpts(opts...).
		WithSynopsis("export [-format f] [path]").
		WithDescription("render the subtree at path as native, yaml or json").
		WithRun(func(cc *cli.Context, args []string) error {
			return export(cfg, cc, args)
		})
}

func ImportCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ImportConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Import, "import").
		WithSynopsis("import [path] [file]").
		WithDescription("merge a yaml document into the subtree at path (stdin when no file)").
		WithRun(func(cc *cli.Context, args []string) error {
			return importDoc(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithOpts(opts...).
		WithSynopsis("patch [-s] <path> [patch]").
		WithDescription("apply a json merge patch to the map at path (stdin when no arg)").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithSynopsis("diff").
		WithDescription("show what changed since the latest backup").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
