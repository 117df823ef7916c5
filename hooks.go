package docpatch

import (
	"github.com/docpatch/docpatch/debug"
	"github.com/docpatch/docpatch/eval"
	"github.com/docpatch/docpatch/patch"
	"github.com/docpatch/docpatch/status"
)

// runHooks invokes every hook matching the main patch's path and
// executes the patches it returns directly through the executor:
// no preflight, no nested hooks. The first failure aborts.
func (e *Engine) runHooks(hooks []hook, p *patch.Patch, phase string) *status.Result {
	for i := range hooks {
		h := &hooks[i]
		if !h.pattern.MatchString(p.Raw) {
			continue
		}
		fn := h.fn
		if fn == nil {
			fn = eval.LookupHook(h.named)
			if fn == nil {
				return status.Errorf(status.Internal,
					"cannot resolve %s hook %q", phase, h.named)
			}
		}
		if debug.Hook() {
			debug.Logf("%s hook %q on %s %s\n", phase, h.pattern, string(p.Op), p.Raw)
		}
		injected, err := fn(p, e.doc)
		if err != nil {
			return status.Errorf(status.Internal, "%s hook: %v", phase, err)
		}
		for j, hp := range injected {
			if res := hp.Validate(); !res.Ok() {
				return status.Prefix(res, "%s hook patch %d: ", phase, j)
			}
			if res := e.runPatch(hp); !res.Ok() {
				return status.Prefix(res, "%s hook patch %d: ", phase, j)
			}
		}
	}
	return status.Done()
}
