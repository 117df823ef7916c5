// Package patch defines the patch model: one operation against one
// path, plus the callback signatures for validators and hooks.
package patch

import (
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/kpath"
	"github.com/docpatch/docpatch/status"
)

type Op string

const (
	OpAdd     Op = "add"
	OpReplace Op = "replace"
	OpInsert  Op = "insert"
	OpRemove  Op = "remove"
	OpCopy    Op = "copy"
	OpMove    Op = "move"
	OpTest    Op = "test"
)

func (o Op) Known() bool {
	switch o {
	case OpAdd, OpReplace, OpInsert, OpRemove, OpCopy, OpMove, OpTest:
		return true
	}
	return false
}

// NeedsValue reports whether the op requires a value field.
func (o Op) NeedsValue() bool {
	switch o {
	case OpAdd, OpReplace, OpInsert, OpTest:
		return true
	}
	return false
}

// NeedsFrom reports whether the op requires a from path.
func (o Op) NeedsFrom() bool {
	return o == OpCopy || o == OpMove
}

// Patch is a single operation. Raw and FromRaw keep the original
// path text; restriction and hook patterns match against Raw, not
// against the parsed form.
type Patch struct {
	Op      Op
	Path    kpath.Path
	Raw     string
	From    kpath.Path
	FromRaw string
	Value   *ir.Node
	Fill    *ir.Node
	Silent  bool
	// Strict applies to test only; exact type+value equality.
	Strict bool
	// Mode is the target-write mode for copy and move.
	Mode Op
}

type Options map[string]any

// ValidatorFunc checks a value about to be written. A true result
// passes, a string result rejects with that message, and any other
// result (or an error) is a validator malfunction.
type ValidatorFunc func(value *ir.Node, opts Options) (any, error)

// HookFunc produces extra patches to run before or after the main
// patch. The document is the live document; hooks must not mutate
// it directly.
type HookFunc func(p *Patch, doc *ir.Node) ([]*Patch, error)

func Add(path string, value *ir.Node) (*Patch, error) {
	return withValue(OpAdd, path, value)
}

func Replace(path string, value *ir.Node) (*Patch, error) {
	return withValue(OpReplace, path, value)
}

func Insert(path string, value *ir.Node) (*Patch, error) {
	return withValue(OpInsert, path, value)
}

func Test(path string, value *ir.Node) (*Patch, error) {
	p, err := withValue(OpTest, path, value)
	if err != nil {
		return nil, err
	}
	p.Strict = true
	return p, nil
}

func Remove(path string) (*Patch, error) {
	kp, err := kpath.Parse(path)
	if err != nil {
		return nil, err
	}
	return &Patch{Op: OpRemove, Path: kp, Raw: path}, nil
}

func Copy(from, path string) (*Patch, error) {
	return fromTo(OpCopy, from, path)
}

func Move(from, path string) (*Patch, error) {
	return fromTo(OpMove, from, path)
}

func withValue(op Op, path string, value *ir.Node) (*Patch, error) {
	kp, err := kpath.Parse(path)
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = ir.Null()
	}
	return &Patch{Op: op, Path: kp, Raw: path, Value: value}, nil
}

func fromTo(op Op, from, path string) (*Patch, error) {
	kp, err := kpath.Parse(path)
	if err != nil {
		return nil, err
	}
	fp, err := kpath.Parse(from)
	if err != nil {
		return nil, err
	}
	return &Patch{Op: op, Path: kp, Raw: path, From: fp, FromRaw: from, Mode: OpAdd}, nil
}

// WithFill sets the sequence padding value.
func (p *Patch) WithFill(fill *ir.Node) *Patch {
	p.Fill = fill
	return p
}

// WithSilent marks the patch silent: replace of an absent path and
// insert on an existing one become no-ops instead of errors.
func (p *Patch) WithSilent(v bool) *Patch {
	p.Silent = v
	return p
}

// WithStrict controls test equality; loose tests allow scalar
// coercion.
func (p *Patch) WithStrict(v bool) *Patch {
	p.Strict = v
	return p
}

// WithMode sets the target-write mode of a copy or move.
func (p *Patch) WithMode(mode Op) *Patch {
	p.Mode = mode
	return p
}

// Validate performs the structural checks on a decoded patch: known
// op, well-formed paths, and required fields by op kind.
func (p *Patch) Validate() *status.Result {
	if !p.Op.Known() {
		return status.Errorf(status.Unprocessable, "unsupported op %q", string(p.Op))
	}
	if p.Raw == "" {
		return status.Errorf(status.BadRequest, "missing path")
	}
	if p.Path == nil {
		kp, err := kpath.Parse(p.Raw)
		if err != nil {
			return status.Errorf(status.BadRequest, "%v", err)
		}
		p.Path = kp
	}
	if p.Op.NeedsFrom() {
		if p.FromRaw == "" {
			return status.Errorf(status.BadRequest, "%s requires from", p.Op)
		}
		if p.From == nil {
			fp, err := kpath.Parse(p.FromRaw)
			if err != nil {
				return status.Errorf(status.BadRequest, "%v", err)
			}
			p.From = fp
		}
		if p.Mode == "" {
			p.Mode = OpAdd
		}
		if p.Mode != OpAdd && p.Mode != OpReplace && p.Mode != OpInsert {
			return status.Errorf(status.Unprocessable, "invalid %s mode %q", p.Op, string(p.Mode))
		}
	}
	if p.Op.NeedsValue() && p.Value == nil {
		return status.Errorf(status.BadRequest, "%s requires value", p.Op)
	}
	return status.Done()
}
