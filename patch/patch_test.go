package patch

import (
	"testing"

	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/status"
)

func TestConstructors(t *testing.T) {
	p, err := Add("/a/b", ir.FromInt(1))
	if err != nil {
		t.Fatal(err)
	}
	if p.Op != OpAdd || p.Raw != "/a/b" || len(p.Path) != 2 {
		t.Errorf("add: %+v", p)
	}
	if _, err := Add("bad", ir.Null()); err == nil {
		t.Error("add with bad path")
	}

	p, err = Test("/a", ir.FromString("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Strict {
		t.Error("test defaults loose")
	}
	if p = p.WithStrict(false); p.Strict {
		t.Error("WithStrict")
	}

	p, err = Move("/a", "/b")
	if err != nil {
		t.Fatal(err)
	}
	if p.Mode != OpAdd || p.FromRaw != "/a" || p.Raw != "/b" {
		t.Errorf("move: %+v", p)
	}

	p, err = Replace("/a", nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Value == nil || p.Value.Type != ir.NullType {
		t.Errorf("nil value not defaulted: %+v", p.Value)
	}
}

func TestOpPredicates(t *testing.T) {
	for _, op := range []Op{OpAdd, OpReplace, OpInsert, OpRemove, OpCopy, OpMove, OpTest} {
		if !op.Known() {
			t.Errorf("%s not known", op)
		}
	}
	if Op("merge").Known() {
		t.Error("merge known")
	}
	if !OpAdd.NeedsValue() || OpRemove.NeedsValue() || OpCopy.NeedsValue() {
		t.Error("NeedsValue")
	}
	if !OpCopy.NeedsFrom() || !OpMove.NeedsFrom() || OpAdd.NeedsFrom() {
		t.Error("NeedsFrom")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		Name string
		P    *Patch
		Code status.Code
	}{
		{
			"ok",
			&Patch{Op: OpAdd, Raw: "/a", Value: ir.FromInt(1)},
			status.NoContent,
		},
		{
			"unknown-op",
			&Patch{Op: "merge", Raw: "/a"},
			status.Unprocessable,
		},
		{
			"missing-path",
			&Patch{Op: OpAdd, Value: ir.FromInt(1)},
			status.BadRequest,
		},
		{
			"bad-path",
			&Patch{Op: OpRemove, Raw: "a/b"},
			status.BadRequest,
		},
		{
			"missing-value",
			&Patch{Op: OpReplace, Raw: "/a"},
			status.BadRequest,
		},
		{
			"missing-from",
			&Patch{Op: OpCopy, Raw: "/a"},
			status.BadRequest,
		},
		{
			"bad-from",
			&Patch{Op: OpMove, Raw: "/a", FromRaw: ":x"},
			status.BadRequest,
		},
		{
			"bad-mode",
			&Patch{Op: OpCopy, Raw: "/a", FromRaw: "/b", Mode: OpRemove},
			status.Unprocessable,
		},
		{
			"remove-no-value",
			&Patch{Op: OpRemove, Raw: "/a"},
			status.NoContent,
		},
	}
	for _, tc := range tests {
		res := tc.P.Validate()
		if res.Code != tc.Code {
			t.Errorf("%s: code %d, want %d (%s)", tc.Name, res.Code, tc.Code, res.Message)
		}
	}
}

func TestValidateDefaultsMode(t *testing.T) {
	p := &Patch{Op: OpMove, Raw: "/b", FromRaw: "/a"}
	if res := p.Validate(); !res.Ok() {
		t.Fatal(res)
	}
	if p.Mode != OpAdd {
		t.Errorf("mode: %q", p.Mode)
	}
	if p.Path == nil || p.From == nil {
		t.Error("paths not parsed")
	}
}
