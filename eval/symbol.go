package eval

import (
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/patch"
)

// Symbol is a named callback resolvable at call time. Concrete
// symbols are validators or hooks.
type Symbol interface {
	String() string
}

// ValidatorSymbol is a named validator callback.
type ValidatorSymbol interface {
	Symbol
	Validate(value *ir.Node, opts patch.Options) (any, error)
}

// HookSymbol is a named hook callback.
type HookSymbol interface {
	Symbol
	Hook(p *patch.Patch, doc *ir.Node) ([]*patch.Patch, error)
}

type name string

func (s name) String() string {
	return string(s)
}

type funcValidator struct {
	name
	fn patch.ValidatorFunc
}

func (v *funcValidator) Validate(value *ir.Node, opts patch.Options) (any, error) {
	return v.fn(value, opts)
}

// NewValidator wraps a validator function as a registrable symbol.
func NewValidator(s string, fn patch.ValidatorFunc) ValidatorSymbol {
	return &funcValidator{name: name(s), fn: fn}
}

type funcHook struct {
	name
	fn patch.HookFunc
}

func (h *funcHook) Hook(p *patch.Patch, doc *ir.Node) ([]*patch.Patch, error) {
	return h.fn(p, doc)
}

// NewHook wraps a hook function as a registrable symbol.
func NewHook(s string, fn patch.HookFunc) HookSymbol {
	return &funcHook{name: name(s), fn: fn}
}
