package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/docpatch/docpatch/codec"
	"github.com/docpatch/docpatch/debug"
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/patch"
)

// Validator compiles an expression into a validator callback. The
// expression sees:
//
//	value   - the candidate value as plain Go data
//	kind    - the value's type name ("String", "Object", ...)
//	options - the options the validator was registered with
//
// The expression result follows the validator protocol: true
// passes, a string rejects with that message, anything else is a
// validator malfunction.
func Validator(src string) (patch.ValidatorFunc, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling validator: %w", err)
	}
	return func(value *ir.Node, opts patch.Options) (any, error) {
		if debug.Eval() {
			debug.Logf("validator expr on %s\n", codec.MustJSON(value))
		}
		return run(prg, map[string]any{
			"value":   codec.ToAny(value),
			"kind":    value.Type.String(),
			"options": map[string]any(opts),
		})
	}, nil
}

// Hook compiles an expression into a hook callback. The expression
// sees:
//
//	op, path, from - the main patch's fields
//	value          - the main patch's value as plain Go data
//	doc            - the current document as plain Go data
//
// It must return a list of patch records (maps with op/path/...),
// possibly empty.
func Hook(src string) (patch.HookFunc, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling hook: %w", err)
	}
	return func(p *patch.Patch, doc *ir.Node) ([]*patch.Patch, error) {
		env := map[string]any{
			"op":   string(p.Op),
			"path": p.Raw,
			"from": p.FromRaw,
			"doc":  codec.ToAny(doc),
		}
		if p.Value != nil {
			env["value"] = codec.ToAny(p.Value)
		}
		if debug.Eval() {
			debug.Logf("hook expr for %s %s\n", string(p.Op), p.Raw)
		}
		res, err := run(prg, env)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, nil
		}
		items, ok := res.([]any)
		if !ok {
			return nil, fmt.Errorf("hook expression returned %T, want a patch list", res)
		}
		out := make([]*patch.Patch, 0, len(items))
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("hook patch %d is %T, want a mapping", i, item)
			}
			hp, err := codec.PatchFromMap(m)
			if err != nil {
				return nil, fmt.Errorf("hook patch %d: %w", i, err)
			}
			out = append(out, hp)
		}
		return out, nil
	}, nil
}

func run(prg *vm.Program, env map[string]any) (any, error) {
	return expr.Run(prg, env)
}
