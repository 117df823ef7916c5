package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/docpatch/docpatch/rfc6902"
)

func applyJSONPatch(cfg *JSONPatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.JSONPatch.Parse(cc, args)
	if err != nil {
		cfg.JSONPatch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: jsonpatch requires <docfile> <rfc6902-file>", cli.ErrUsage)
	}
	doc, err := loadDoc(args[0])
	if err != nil {
		return err
	}
	patchJSON, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	out, err := rfc6902.Apply(doc, patchJSON)
	if err != nil {
		return err
	}
	return cfg.emit(cc.Out, out)
}
