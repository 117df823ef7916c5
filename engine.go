// Package docpatch applies ordered lists of patch operations to a
// tree-shaped document, enforcing per-path restrictions, running
// validators against values before they are written, and letting
// registered hooks inject extra patches around each main patch.
//
// An Engine owns one document for the duration of a Process call
// and mutates it in place. There is no atomicity across a batch: if
// patch k fails, patches 1..k-1 and any hook-injected patches
// already run stay applied. Callers embedding the engine in a
// concurrent host must serialize Process calls per document.
package docpatch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docpatch/docpatch/debug"
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/kpath"
	"github.com/docpatch/docpatch/patch"
	"github.com/docpatch/docpatch/status"
)

type restriction struct {
	pattern *regexp.Regexp
	read    bool
	write   bool
	delete  bool
}

type validator struct {
	pattern *regexp.Regexp
	fn      patch.ValidatorFunc
	named   string
	opts    patch.Options
}

type hook struct {
	pattern *regexp.Regexp
	fn      patch.HookFunc
	named   string
	opts    patch.Options
}

// Engine owns a document and a patch list. Restrictions,
// validators, and hooks registered on an Engine persist across
// Process calls when the Engine is reused with SetPatches.
type Engine struct {
	doc          *ir.Node
	patches      []*patch.Patch
	restrictions []restriction
	validators   []validator
	pre          []hook
	post         []hook
}

func New(doc *ir.Node, patches []*patch.Patch) *Engine {
	if doc == nil {
		doc = ir.Null()
	}
	return &Engine{doc: doc, patches: patches}
}

// Document returns the engine's live document, including any
// mutations a failed Process left behind.
func (e *Engine) Document() *ir.Node {
	return e.doc
}

// SetPatches replaces the patch list for the next Process call.
func (e *Engine) SetPatches(patches []*patch.Patch) {
	e.patches = patches
}

// Restrict forbids operations on paths matching pattern. perms is
// any combination of 'r' (forbid test reads), 'w' (forbid add,
// replace, insert, and copy/move targets), and 'd' (forbid
// remove). The pattern matches against raw path text.
func (e *Engine) Restrict(pattern, perms string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	r := restriction{pattern: re}
	for _, c := range perms {
		switch c {
		case 'r':
			r.read = true
		case 'w':
			r.write = true
		case 'd':
			r.delete = true
		default:
			return fmt.Errorf("invalid permission %q: want a combination of \"rwd\"", string(c))
		}
	}
	e.restrictions = append(e.restrictions, r)
	return nil
}

// Validate registers a validator callback for paths matching
// pattern.
func (e *Engine) Validate(pattern string, fn patch.ValidatorFunc, opts patch.Options) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	e.validators = append(e.validators, validator{pattern: re, fn: fn, opts: opts})
	return nil
}

// ValidateNamed registers a validator by symbol name, resolved
// through the eval registry each time a patch is preflighted. An
// unresolvable name surfaces as an internal error at process time.
func (e *Engine) ValidateNamed(pattern, name string, opts patch.Options) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	e.validators = append(e.validators, validator{pattern: re, named: name, opts: opts})
	return nil
}

// PrePatch registers a hook run before each matching patch.
func (e *Engine) PrePatch(pattern string, fn patch.HookFunc, opts patch.Options) error {
	h, err := newHook(pattern, fn, "", opts)
	if err != nil {
		return err
	}
	e.pre = append(e.pre, h)
	return nil
}

// PrePatchNamed registers a pre-hook by symbol name.
func (e *Engine) PrePatchNamed(pattern, name string, opts patch.Options) error {
	h, err := newHook(pattern, nil, name, opts)
	if err != nil {
		return err
	}
	e.pre = append(e.pre, h)
	return nil
}

// PostPatch registers a hook run after each matching patch
// succeeds.
func (e *Engine) PostPatch(pattern string, fn patch.HookFunc, opts patch.Options) error {
	h, err := newHook(pattern, fn, "", opts)
	if err != nil {
		return err
	}
	e.post = append(e.post, h)
	return nil
}

// PostPatchNamed registers a post-hook by symbol name.
func (e *Engine) PostPatchNamed(pattern, name string, opts patch.Options) error {
	h, err := newHook(pattern, nil, name, opts)
	if err != nil {
		return err
	}
	e.post = append(e.post, h)
	return nil
}

func newHook(pattern string, fn patch.HookFunc, named string, opts patch.Options) (hook, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return hook{}, err
	}
	return hook{pattern: re, fn: fn, named: named, opts: opts}, nil
}

// Process applies the patch list in order, preflighting each patch,
// running pre-hooks, executing, then running post-hooks. It stops
// at the first failing result and returns it prefixed with the
// failing patch's position; earlier mutations are not rolled back.
func (e *Engine) Process() *status.Result {
	if len(e.patches) == 0 {
		return status.Errorf(status.BadRequest, "empty patch list")
	}
	for i, p := range e.patches {
		if res := e.processOne(i, p); !res.Ok() {
			return res
		}
	}
	return status.Done()
}

func (e *Engine) processOne(i int, p *patch.Patch) *status.Result {
	if debug.Patch() {
		debug.Logf("patch %d: %s %s\n", i, string(p.Op), p.Raw)
	}
	if res := e.preflight(p); !res.Ok() {
		return status.Prefix(res, "patch %d (%s): ", i, p.Raw)
	}
	if res := e.runHooks(e.pre, p, "pre"); !res.Ok() {
		return status.Prefix(res, "patch %d (%s): ", i, p.Raw)
	}
	if res := e.runPatch(p); !res.Ok() {
		return status.Prefix(res, "patch %d: ", i)
	}
	if res := e.runHooks(e.post, p, "post"); !res.Ok() {
		return status.Prefix(res, "patch %d (%s): ", i, p.Raw)
	}
	return status.Done()
}

// Check preflights every patch in order without executing any of
// them. Later patches are checked against the unmodified document,
// so a passing Check does not guarantee a passing Process.
func (e *Engine) Check() *status.Result {
	if len(e.patches) == 0 {
		return status.Errorf(status.BadRequest, "empty patch list")
	}
	for i, p := range e.patches {
		if res := e.preflight(p); !res.Ok() {
			return status.Prefix(res, "patch %d (%s): ", i, p.Raw)
		}
	}
	return status.Done()
}

// Read resolves a single path against the document and returns its
// value.
func (e *Engine) Read(path string) *status.Result {
	kp, err := kpath.Parse(path)
	if err != nil {
		return status.Errorf(status.BadRequest, "%v", err)
	}
	return e.traverse(kp, &traversal{mode: modeRead})
}

func (e *Engine) matchingValidators(raw string) []*validator {
	var res []*validator
	for i := range e.validators {
		if e.validators[i].pattern.MatchString(raw) {
			res = append(res, &e.validators[i])
		}
	}
	return res
}

func permsString(r *restriction) string {
	var b strings.Builder
	if r.read {
		b.WriteByte('r')
	}
	if r.write {
		b.WriteByte('w')
	}
	if r.delete {
		b.WriteByte('d')
	}
	return b.String()
}
