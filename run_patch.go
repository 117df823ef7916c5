package docpatch

import (
	"github.com/docpatch/docpatch/codec"
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/patch"
	"github.com/docpatch/docpatch/status"
)

// runPatch dispatches a validated patch to the traversal engine.
func (e *Engine) runPatch(p *patch.Patch) *status.Result {
	switch p.Op {
	case patch.OpAdd, patch.OpReplace, patch.OpInsert, patch.OpRemove:
		t := &traversal{
			mode:   modeOf(p.Op),
			value:  p.Value,
			fill:   p.Fill,
			silent: p.Silent,
		}
		return status.Prefix(e.traverse(p.Path, t), "%s %s: ", string(p.Op), p.Raw)
	case patch.OpCopy:
		return e.copyPatch(p)
	case patch.OpMove:
		return e.movePatch(p)
	case patch.OpTest:
		return e.testPatch(p)
	}
	return status.Errorf(status.Unprocessable, "unsupported op %q", string(p.Op))
}

func (e *Engine) copyPatch(p *patch.Patch) *status.Result {
	rd := e.traverse(p.From, &traversal{mode: modeRead})
	if !rd.Ok() {
		return status.Prefix(rd, "copy from %s: ", p.FromRaw)
	}
	wt := &traversal{
		mode:   modeOf(p.Mode),
		value:  rd.Payload,
		fill:   p.Fill,
		silent: p.Silent,
	}
	return status.Prefix(e.traverse(p.Path, wt), "copy to %s: ", p.Raw)
}

func (e *Engine) movePatch(p *patch.Patch) *status.Result {
	rd := e.traverse(p.From, &traversal{mode: modeRead})
	if !rd.Ok() {
		return status.Prefix(rd, "move from %s: ", p.FromRaw)
	}
	rm := e.traverse(p.From, &traversal{mode: modeRemove})
	if !rm.Ok() {
		return status.Prefix(rm, "move from %s: ", p.FromRaw)
	}
	wt := &traversal{
		mode:   modeOf(p.Mode),
		value:  rd.Payload,
		fill:   p.Fill,
		silent: p.Silent,
	}
	return status.Prefix(e.traverse(p.Path, wt), "move to %s: ", p.Raw)
}

func (e *Engine) testPatch(p *patch.Patch) *status.Result {
	rd := e.traverse(p.Path, &traversal{mode: modeRead})
	if !rd.Ok() {
		return status.Prefix(rd, "test %s: ", p.Raw)
	}
	eq := ir.Equal
	if !p.Strict {
		eq = ir.LooseEqual
	}
	if !eq(rd.Payload, p.Value) {
		return status.Errorf(status.FailedPrecondition,
			"test %s: got %s, want %s",
			p.Raw, codec.MustJSON(rd.Payload), codec.MustJSON(p.Value))
	}
	return status.Done()
}
