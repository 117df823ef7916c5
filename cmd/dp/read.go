package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/docpatch/docpatch"
)

func read(cfg *ReadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Read.Parse(cc, args)
	if err != nil {
		cfg.Read.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: read requires <path> <docfile>", cli.ErrUsage)
	}
	doc, err := loadDoc(args[1])
	if err != nil {
		return err
	}
	eng := docpatch.New(doc, nil)
	res := eng.Read(args[0])
	if !res.Ok() {
		return res.Err()
	}
	return cfg.emit(cc.Out, res.Payload)
}
