package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/docpatch/docpatch"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: check requires <docfile> <patchfile>", cli.ErrUsage)
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
	res := eng.Check()
	fmt.Fprintf(cc.Out, "%s\n", res)
	if !res.Ok() {
		return cli.ExitCodeErr(1)
	}
	return nil
}
