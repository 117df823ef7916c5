package docpatch

import (
	"errors"
	"strings"
	"testing"

	"github.com/docpatch/docpatch/codec"
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/patch"
	"github.com/docpatch/docpatch/status"
)

func restricted(t *testing.T, doc, pattern, perms string) *Engine {
	t.Helper()
	eng := New(mustDoc(t, doc), nil)
	if err := eng.Restrict(pattern, perms); err != nil {
		t.Fatal(err)
	}
	return eng
}

func setPatches(t *testing.T, eng *Engine, patches string) {
	t.Helper()
	ps, err := codec.DecodePatches([]byte(patches))
	if err != nil {
		t.Fatal(err)
	}
	eng.SetPatches(ps)
}

func TestRestrictions(t *testing.T) {
	tests := []struct {
		Name    string
		Perms   string
		Patches string
		Code    status.Code
	}{
		{
			"write-add", "w",
			`[{"op": "add", "path": "/locked", "value": 1}]`,
			status.Forbidden,
		},
		{
			"write-replace", "w",
			`[{"op": "replace", "path": "/locked", "value": 1}]`,
			status.Forbidden,
		},
		{
			"write-insert", "w",
			`[{"op": "insert", "path": "/locked2", "value": 1}]`,
			status.Forbidden,
		},
		{
			"write-copy-target", "w",
			`[{"op": "copy", "from": "/open", "path": "/locked"}]`,
			status.Forbidden,
		},
		{
			"write-move-target", "w",
			`[{"op": "move", "from": "/open", "path": "/locked"}]`,
			status.Forbidden,
		},
		{
			"write-allows-remove", "w",
			`[{"op": "remove", "path": "/locked"}]`,
			status.NoContent,
		},
		{
			"write-allows-test", "w",
			`[{"op": "test", "path": "/locked", "value": 1}]`,
			status.NoContent,
		},
		{
			"delete-remove", "d",
			`[{"op": "remove", "path": "/locked"}]`,
			status.Forbidden,
		},
		{
			"delete-allows-add", "d",
			`[{"op": "add", "path": "/locked", "value": 2}]`,
			status.NoContent,
		},
		{
			"read-test", "r",
			`[{"op": "test", "path": "/locked", "value": 1}]`,
			status.Forbidden,
		},
		{
			"read-allows-add", "r",
			`[{"op": "add", "path": "/locked", "value": 2}]`,
			status.NoContent,
		},
		{
			"move-from-delete", "d",
			`[{"op": "move", "from": "/locked", "path": "/elsewhere"}]`,
			status.Forbidden,
		},
		{
			"move-from-read", "r",
			`[{"op": "move", "from": "/locked", "path": "/elsewhere"}]`,
			status.Forbidden,
		},
		{
			"copy-from-read", "r",
			`[{"op": "copy", "from": "/locked", "path": "/elsewhere"}]`,
			status.Forbidden,
		},
		{
			"copy-from-allows-delete", "d",
			`[{"op": "copy", "from": "/locked", "path": "/elsewhere"}]`,
			status.NoContent,
		},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			eng := restricted(t, `{"locked": 1, "open": 2}`, "^/locked", tc.Perms)
			setPatches(t, eng, tc.Patches)
			res := eng.Process()
			if res.Code != tc.Code {
				t.Errorf("code %d, want %d (%s)", res.Code, tc.Code, res.Message)
			}
		})
	}
}

func TestRestrictionBypassPrevention(t *testing.T) {
	// a composite write cannot smuggle content into a restricted path
	eng := restricted(t, `{}`, "secret", "w")
	setPatches(t, eng, `[{"op": "add", "path": "/cfg", "value": {"name": "x", "secret": 1}}]`)
	res := eng.Process()
	if res.Code != status.Forbidden {
		t.Fatalf("code %d (%s)", res.Code, res.Message)
	}
	if got := codec.MustJSON(eng.Document()); got != `{}` {
		t.Errorf("document mutated: %s", got)
	}
	// nested two levels down still caught
	setPatches(t, eng, `[{"op": "add", "path": "/cfg", "value": {"inner": [{"secret": 1}]}}]`)
	if res := eng.Process(); res.Code != status.Forbidden {
		t.Errorf("nested: %s", res)
	}
	// the same value without the restricted key passes
	setPatches(t, eng, `[{"op": "add", "path": "/cfg", "value": {"name": "x"}}]`)
	if res := eng.Process(); !res.Ok() {
		t.Errorf("clean value: %s", res)
	}
}

func TestValidatorProtocol(t *testing.T) {
	tests := []struct {
		Name string
		Fn   patch.ValidatorFunc
		Code status.Code
	}{
		{
			"pass",
			func(*ir.Node, patch.Options) (any, error) { return true, nil },
			status.NoContent,
		},
		{
			"reject-string",
			func(*ir.Node, patch.Options) (any, error) { return "not allowed", nil },
			status.Forbidden,
		},
		{
			"false",
			func(*ir.Node, patch.Options) (any, error) { return false, nil },
			status.Unprocessable,
		},
		{
			"bad-result",
			func(*ir.Node, patch.Options) (any, error) { return 42, nil },
			status.Unprocessable,
		},
		{
			"error",
			func(*ir.Node, patch.Options) (any, error) { return nil, errors.New("boom") },
			status.Unprocessable,
		},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			eng := New(mustDoc(t, `{}`), nil)
			if err := eng.Validate("^/a", tc.Fn, nil); err != nil {
				t.Fatal(err)
			}
			setPatches(t, eng, `[{"op": "add", "path": "/a", "value": 1}]`)
			res := eng.Process()
			if res.Code != tc.Code {
				t.Errorf("code %d, want %d (%s)", res.Code, tc.Code, res.Message)
			}
		})
	}
}

func TestValidatorMessage(t *testing.T) {
	eng := New(mustDoc(t, `{}`), nil)
	err := eng.Validate("^/a", func(*ir.Node, patch.Options) (any, error) {
		return "value is not welcome here", nil
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	setPatches(t, eng, `[{"op": "add", "path": "/a", "value": 1}]`)
	res := eng.Process()
	if !strings.Contains(res.Message, "value is not welcome here") {
		t.Errorf("message: %q", res.Message)
	}
}

func TestValidatorSkipsRemoveAndTest(t *testing.T) {
	eng := New(mustDoc(t, `{"a": 1}`), nil)
	called := false
	err := eng.Validate("^/a", func(*ir.Node, patch.Options) (any, error) {
		called = true
		return "never", nil
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	setPatches(t, eng, `[{"op": "test", "path": "/a", "value": 1}, {"op": "remove", "path": "/a"}]`)
	if res := eng.Process(); !res.Ok() {
		t.Fatal(res)
	}
	if called {
		t.Error("validator ran for a non-writing op")
	}
}

func TestValidatorSeesCopiedValue(t *testing.T) {
	eng := New(mustDoc(t, `{"src": ""}`), nil)
	if err := eng.ValidateNamed("^/dst", "nonempty", nil); err != nil {
		t.Fatal(err)
	}
	setPatches(t, eng, `[{"op": "copy", "from": "/src", "path": "/dst"}]`)
	res := eng.Process()
	if res.Code != status.Forbidden {
		t.Errorf("code %d (%s)", res.Code, res.Message)
	}
}

func TestValidatorChildren(t *testing.T) {
	// sub-preflight runs validators against synthesized child paths
	eng := New(mustDoc(t, `{}`), nil)
	if err := eng.ValidateNamed("^/cfg/name$", "nonempty", nil); err != nil {
		t.Fatal(err)
	}
	setPatches(t, eng, `[{"op": "add", "path": "/cfg", "value": {"name": ""}}]`)
	if res := eng.Process(); res.Code != status.Forbidden {
		t.Errorf("empty child: %s", res)
	}
	setPatches(t, eng, `[{"op": "add", "path": "/cfg", "value": {"name": "ok"}}]`)
	if res := eng.Process(); !res.Ok() {
		t.Errorf("clean child: %s", res)
	}
}

func TestValidatorUnresolvable(t *testing.T) {
	eng := New(mustDoc(t, `{}`), nil)
	if err := eng.ValidateNamed(".", "no-such-validator", nil); err != nil {
		t.Fatal(err)
	}
	setPatches(t, eng, `[{"op": "add", "path": "/a", "value": 1}]`)
	res := eng.Process()
	if res.Code != status.Internal {
		t.Fatalf("code %d (%s)", res.Code, res.Message)
	}
	if !strings.Contains(res.Message, "no-such-validator") {
		t.Errorf("message: %q", res.Message)
	}
}

func TestValidatorOptions(t *testing.T) {
	eng := New(mustDoc(t, `{}`), nil)
	err := eng.Validate("^/a", func(v *ir.Node, opts patch.Options) (any, error) {
		max, _ := opts["max"].(int64)
		if v.Int64 != nil && *v.Int64 > max {
			return "over limit", nil
		}
		return true, nil
	}, patch.Options{"max": int64(5)})
	if err != nil {
		t.Fatal(err)
	}
	setPatches(t, eng, `[{"op": "add", "path": "/a", "value": 9}]`)
	if res := eng.Process(); res.Code != status.Forbidden {
		t.Errorf("over: %s", res)
	}
	setPatches(t, eng, `[{"op": "add", "path": "/a", "value": 3}]`)
	if res := eng.Process(); !res.Ok() {
		t.Errorf("under: %s", res)
	}
}

func TestPreflightStructural(t *testing.T) {
	eng := New(mustDoc(t, `{}`), nil)
	for _, tc := range []struct {
		Patch *patch.Patch
		Code  status.Code
	}{
		{&patch.Patch{Op: "merge", Raw: "/a"}, status.Unprocessable},
		{&patch.Patch{Op: patch.OpAdd, Raw: "bad", Value: ir.Null()}, status.BadRequest},
		{&patch.Patch{Op: patch.OpAdd, Raw: "/a"}, status.BadRequest},
	} {
		eng.SetPatches([]*patch.Patch{tc.Patch})
		res := eng.Process()
		if res.Code != tc.Code {
			t.Errorf("%+v: code %d, want %d (%s)", tc.Patch, res.Code, tc.Code, res.Message)
		}
	}
}
