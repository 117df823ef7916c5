package status

import (
	"testing"

	"github.com/docpatch/docpatch/ir"
)

func TestOk(t *testing.T) {
	for _, tc := range []struct {
		Code Code
		Ok   bool
	}{
		{OK, true},
		{NoContent, true},
		{BadRequest, false},
		{Forbidden, false},
		{NotFound, false},
		{Unprocessable, false},
		{FailedPrecondition, false},
		{Internal, false},
	} {
		r := &Result{Code: tc.Code}
		if r.Ok() != tc.Ok {
			t.Errorf("%d: Ok = %t", int(tc.Code), r.Ok())
		}
	}
}

func TestErr(t *testing.T) {
	if err := Payload(ir.Null()).Err(); err != nil {
		t.Errorf("payload err: %v", err)
	}
	if err := Done().Err(); err != nil {
		t.Errorf("done err: %v", err)
	}
	err := Errorf(NotFound, "no such key %q", "a").Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if CodeOf(err) != NotFound {
		t.Errorf("CodeOf = %v", CodeOf(err))
	}
	if got := err.Error(); got != `not found: no such key "a"` {
		t.Errorf("message: %q", got)
	}
}

func TestPrefix(t *testing.T) {
	ok := Payload(ir.FromInt(1))
	if got := Prefix(ok, "patch %d: ", 0); got != ok {
		t.Error("success was rewrapped")
	}
	bad := Errorf(Unprocessable, "path mismatch")
	got := Prefix(bad, "patch %d: ", 2)
	if got.Code != Unprocessable || got.Message != "patch 2: path mismatch" {
		t.Errorf("prefix: %v", got)
	}
}

func TestString(t *testing.T) {
	if got := Done().String(); got != "204 no content" {
		t.Errorf("done: %q", got)
	}
	if got := Errorf(Forbidden, "write restricted").String(); got != "403 forbidden: write restricted" {
		t.Errorf("fail: %q", got)
	}
}
