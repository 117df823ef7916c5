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
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "dp").
		WithSynopsis("dp [opts] command [opts]").
		WithDescription("dp applies patch operations to tree documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dpMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			CheckCommand(cfg),
			ReadCommand(cfg),
			DiffCommand(cfg),
			JSONPatchCommand(cfg))
}

type ApplyConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q aliases=quiet desc='print only the result status'"`

	rules []rule
	Apply *cli.Command
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, ruleOpts(&cfg.rules)...)
	cmd := cli.NewCommand("apply").
		WithAliases("a", "ap").
		WithSynopsis("apply [opts] <docfile> <patchfile>").
		WithDescription("apply a patch list to a document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
	cfg.Apply = cmd
	return cmd
}

type CheckConfig struct {
	*MainConfig

	rules []rule
	Check *cli.Command
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, ruleOpts(&cfg.rules)...)
	cmd := cli.NewCommand("check").
		WithAliases("c", "ch").
		WithSynopsis("check [opts] <docfile> <patchfile>").
		WithDescription("preflight a patch list without applying it").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

type ReadConfig struct {
	*MainConfig
	Read *cli.Command
}

func ReadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReadConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("read").
		WithAliases("r").
		WithSynopsis("read <path> <docfile>").
		WithDescription("read the value at a path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return read(cfg, cc, args)
		})
	cfg.Read = cmd
	return cmd
}

type DiffConfig struct {
	*MainConfig
	Color bool `cli:"name=color desc='force colored diff'"`

	rules []rule
	Diff  *cli.Command
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, ruleOpts(&cfg.rules)...)
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff [opts] <docfile> <patchfile>").
		WithDescription("show what a patch list would change").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

type JSONPatchConfig struct {
	*MainConfig
	JSONPatch *cli.Command
}

func JSONPatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JSONPatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("jsonpatch").
		WithAliases("jp").
		WithSynopsis("jsonpatch <docfile> <rfc6902-file>").
		WithDescription("apply an RFC 6902 JSON Patch document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return applyJSONPatch(cfg, cc, args)
		})
	cfg.JSONPatch = cmd
	return cmd
}
