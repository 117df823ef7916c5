package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/docpatch/docpatch"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: apply requires <docfile> <patchfile>", cli.ErrUsage)
	}
	doc, err := loadDoc(args[0])
	if err != nil {
		return err
	}
	patches, err := loadPatches(args[1])
	if err != nil {
		return err
	}
	eng := docpatch.New(doc, patches)
	if err := applyRules(eng, cfg.rules); err != nil {
		return err
	}
	res := eng.Process()
	if !res.Ok() {
		return res.Err()
	}
	if cfg.Quiet {
		fmt.Fprintf(cc.Out, "%s\n", res)
		return nil
	}
	return cfg.emit(cc.Out, eng.Document())
}
