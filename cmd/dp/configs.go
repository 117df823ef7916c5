package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/docpatch/docpatch"
	"github.com/docpatch/docpatch/codec"
	"github.com/docpatch/docpatch/eval"
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/patch"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='output json (default)'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) emit(w io.Writer, node *ir.Node) error {
	var (
		d   []byte
		err error
	)
	if cfg.Y {
		d, err = codec.MarshalYAML(node)
	} else {
		d, err = codec.MarshalJSON(node)
		d = append(d, '\n')
	}
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func colorOut(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func loadDoc(file string) (*ir.Node, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	doc, err := codec.Unmarshal(d)
	if err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", file, err)
	}
	return doc, nil
}

func loadPatches(file string) ([]*patch.Patch, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	ps, err := codec.DecodePatches(d)
	if err != nil {
		return nil, fmt.Errorf("parsing patches %s: %w", file, err)
	}
	return ps, nil
}

// rule is a registration collected from repeatable flags, applied
// to the engine in flag order.
type rule struct {
	kind    string // restrict, validate, prepatch, postpatch
	pattern string
	arg     string
}

func splitRule(a string) (pattern, arg string, err error) {
	for i := 0; i < len(a); i++ {
		if a[i] == '=' {
			return a[:i], a[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("%w: want pattern=arg, got %q", cli.ErrUsage, a)
}

func ruleOpt(rules *[]rule, kind string) func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		pattern, arg, err := splitRule(a)
		if err != nil {
			return nil, err
		}
		*rules = append(*rules, rule{kind: kind, pattern: pattern, arg: arg})
		return 0, nil
	}
}

func applyRules(eng *docpatch.Engine, rules []rule) error {
	for _, r := range rules {
		switch r.kind {
		case "restrict":
			if err := eng.Restrict(r.pattern, r.arg); err != nil {
				return err
			}
		case "validate":
			fn, err := eval.Validator(r.arg)
			if err != nil {
				return err
			}
			if err := eng.Validate(r.pattern, fn, nil); err != nil {
				return err
			}
		case "prepatch":
			fn, err := eval.Hook(r.arg)
			if err != nil {
				return err
			}
			if err := eng.PrePatch(r.pattern, fn, nil); err != nil {
				return err
			}
		case "postpatch":
			fn, err := eval.Hook(r.arg)
			if err != nil {
				return err
			}
			if err := eng.PostPatch(r.pattern, fn, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func ruleOpts(rules *[]rule) []*cli.Opt {
	return []*cli.Opt{
		{
			Name:        "restrict",
			Description: "forbid ops on matching paths, e.g. ^/secret=wd",
			Type:        cli.NamedFuncOpt(ruleOpt(rules, "restrict"), "(pattern=rwd)"),
		},
		{
			Name:        "validate",
			Description: "validator expression for matching paths",
			Type:        cli.NamedFuncOpt(ruleOpt(rules, "validate"), "(pattern=expr)"),
		},
		{
			Name:        "prepatch",
			Description: "pre-hook expression for matching paths",
			Type:        cli.NamedFuncOpt(ruleOpt(rules, "prepatch"), "(pattern=expr)"),
		},
		{
			Name:        "postpatch",
			Description: "post-hook expression for matching paths",
			Type:        cli.NamedFuncOpt(ruleOpt(rules, "postpatch"), "(pattern=expr)"),
		},
	}
}
