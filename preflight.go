package docpatch

import (
	"slices"

	"github.com/docpatch/docpatch/debug"
	"github.com/docpatch/docpatch/eval"
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/kpath"
	"github.com/docpatch/docpatch/patch"
	"github.com/docpatch/docpatch/status"
)

// preflight validates one patch without mutating the document:
// structure, restrictions, validators, existence preconditions, and
// a recursive sub-preflight of composite values so that restricted
// or invalid content cannot be smuggled inside a larger write.
func (e *Engine) preflight(p *patch.Patch) *status.Result {
	if debug.Preflight() {
		debug.Logf("preflight %s %s\n", string(p.Op), p.Raw)
	}
	if res := p.Validate(); !res.Ok() {
		return res
	}
	if res := e.checkRestrictions(p); !res.Ok() {
		return res
	}
	testValue, res := e.writtenValue(p)
	if !res.Ok() {
		return res
	}
	if testValue != nil {
		if res := e.runValidators(p, testValue); !res.Ok() {
			return res
		}
	}
	if (p.Op == patch.OpReplace && !p.Silent) || p.Op == patch.OpTest {
		if res := e.traverse(p.Path, &traversal{mode: modeRead}); !res.Ok() {
			return res
		}
	}
	if testValue != nil && !testValue.Type.IsLeaf() {
		return e.preflightChildren(p, testValue)
	}
	return status.Done()
}

// writtenValue resolves the value the patch would write: its own
// value, or for copy/move a read of the source path, whose failure
// propagates as-is.
func (e *Engine) writtenValue(p *patch.Patch) (*ir.Node, *status.Result) {
	switch p.Op {
	case patch.OpAdd, patch.OpReplace, patch.OpInsert:
		return p.Value, status.Done()
	case patch.OpCopy, patch.OpMove:
		res := e.traverse(p.From, &traversal{mode: modeRead})
		if !res.Ok() {
			return nil, status.Prefix(res, "from %s: ", p.FromRaw)
		}
		return res.Payload, status.Done()
	}
	// remove and test write nothing
	return nil, status.Done()
}

// checkRestrictions matches every restriction against the patch's
// target path and, for copy/move, its source path. Insert counts as
// a write: it lands a value just like add does.
func (e *Engine) checkRestrictions(p *patch.Patch) *status.Result {
	for i := range e.restrictions {
		r := &e.restrictions[i]
		if r.pattern.MatchString(p.Raw) {
			switch p.Op {
			case patch.OpAdd, patch.OpReplace, patch.OpInsert, patch.OpCopy, patch.OpMove:
				if r.write {
					return status.Errorf(status.Forbidden,
						"write to %q restricted by %q (%s)", p.Raw, r.pattern, permsString(r))
				}
			case patch.OpRemove:
				if r.delete {
					return status.Errorf(status.Forbidden,
						"delete of %q restricted by %q (%s)", p.Raw, r.pattern, permsString(r))
				}
			case patch.OpTest:
				if r.read {
					return status.Errorf(status.Forbidden,
						"read of %q restricted by %q (%s)", p.Raw, r.pattern, permsString(r))
				}
			}
		}
		if !p.Op.NeedsFrom() || !r.pattern.MatchString(p.FromRaw) {
			continue
		}
		if p.Op == patch.OpMove && r.delete {
			return status.Errorf(status.Forbidden,
				"delete of %q restricted by %q (%s)", p.FromRaw, r.pattern, permsString(r))
		}
		if r.read {
			return status.Errorf(status.Forbidden,
				"read of %q restricted by %q (%s)", p.FromRaw, r.pattern, permsString(r))
		}
	}
	return status.Done()
}

// runValidators invokes every matching validator against the value
// about to be written. Named validators resolve through the eval
// registry here, at call time.
func (e *Engine) runValidators(p *patch.Patch, value *ir.Node) *status.Result {
	for _, v := range e.matchingValidators(p.Raw) {
		fn := v.fn
		if fn == nil {
			fn = eval.LookupValidator(v.named)
			if fn == nil {
				return status.Errorf(status.Internal,
					"cannot resolve validator %q", v.named)
			}
		}
		res, err := fn(value, v.opts)
		if err != nil {
			return status.Errorf(status.Unprocessable, "validator error: %v", err)
		}
		switch x := res.(type) {
		case bool:
			if x {
				continue
			}
			return status.Errorf(status.Unprocessable, "validator error")
		case string:
			return status.Errorf(status.Forbidden, "%s", x)
		default:
			return status.Errorf(status.Unprocessable, "validator error")
		}
	}
	return status.Done()
}

// preflightChildren synthesizes one add-patch per entry of a
// composite value and preflights it recursively; the synthesized
// patches are never executed.
func (e *Engine) preflightChildren(p *patch.Patch, value *ir.Node) *status.Result {
	switch value.Type {
	case ir.ObjectType:
		for i, key := range value.Keys {
			field := kpath.EncodeField(key)
			child := &patch.Patch{
				Op:    patch.OpAdd,
				Path:  append(slices.Clone(p.Path), kpath.Segment{Field: &field}),
				Raw:   kpath.Child(p.Path, &key, 0),
				Value: value.Values[i],
			}
			if res := e.preflight(child); !res.Ok() {
				return res
			}
		}
	case ir.ArrayType:
		for i, elt := range value.Values {
			idx := i
			child := &patch.Patch{
				Op:    patch.OpAdd,
				Path:  append(slices.Clone(p.Path), kpath.Segment{Index: &idx}),
				Raw:   kpath.Child(p.Path, nil, i),
				Value: elt,
			}
			if res := e.preflight(child); !res.Ok() {
				return res
			}
		}
	}
	return status.Done()
}
