package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/docpatch/docpatch"
	"github.com/docpatch/docpatch/codec"
	"github.com/docpatch/docpatch/textdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires <docfile> <patchfile>", cli.ErrUsage)
	}
	doc, err := loadDoc(args[0])
	if err != nil {
		return err
	}
	patches, err := loadPatches(args[1])
	if err != nil {
		return err
	}
	before := codec.MustYAML(doc)
	eng := docpatch.New(doc.Clone(), patches)
	if err := applyRules(eng, cfg.rules); err != nil {
		return err
	}
	if res := eng.Process(); !res.Ok() {
		return res.Err()
	}
	after := codec.MustYAML(eng.Document())
	if before == after {
		return nil
	}
	useColor := cfg.Color || (colorOut(cc.Out) && !color.NoColor)
	if useColor {
		fmt.Fprintln(cc.Out, textdiff.Pretty(before, after))
		return nil
	}
	fmt.Fprintln(cc.Out, textdiff.Plain(before, after))
	return nil
}
