// Package status provides the result envelope returned by every
// engine operation: a code drawn from a small HTTP-flavored
// taxonomy, a message on failure, and an optional payload on
// success. Results replace raised errors across component
// boundaries.
package status

import (
	"fmt"

	"github.com/docpatch/docpatch/ir"
)

type Code int

const (
	OK                 Code = 200
	NoContent          Code = 204
	BadRequest         Code = 400
	Forbidden          Code = 403
	NotFound           Code = 404
	Unprocessable      Code = 422
	FailedPrecondition Code = 424
	Internal           Code = 500
)

func (c Code) String() string {
	s, ok := map[Code]string{
		OK:                 "ok",
		NoContent:          "no content",
		BadRequest:         "bad request",
		Forbidden:          "forbidden",
		NotFound:           "not found",
		Unprocessable:      "unprocessable",
		FailedPrecondition: "failed precondition",
		Internal:           "internal error",
	}[c]
	if ok {
		return s
	}
	return fmt.Sprintf("code %d", int(c))
}

type Result struct {
	Code    Code
	Message string
	Payload *ir.Node
}

// Ok reports success: any code below 400.
func (r *Result) Ok() bool {
	return r.Code < 400
}

// Err returns nil on success and an error carrying the code and
// message otherwise.
func (r *Result) Err() error {
	if r.Ok() {
		return nil
	}
	return &codeError{code: r.Code, msg: r.Message}
}

func (r *Result) String() string {
	if r.Ok() {
		return fmt.Sprintf("%d %s", int(r.Code), r.Code)
	}
	return fmt.Sprintf("%d %s: %s", int(r.Code), r.Code, r.Message)
}

type codeError struct {
	code Code
	msg  string
}

func (e *codeError) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// CodeOf extracts the status code from an error produced by
// Result.Err, defaulting to Internal.
func CodeOf(err error) Code {
	if ce, ok := err.(*codeError); ok {
		return ce.code
	}
	return Internal
}

func Payload(n *ir.Node) *Result {
	return &Result{Code: OK, Payload: n}
}

func Done() *Result {
	return &Result{Code: NoContent}
}

func Errorf(code Code, format string, args ...any) *Result {
	return &Result{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Prefix wraps a failing result's message with positional context,
// passing successes through untouched.
func Prefix(r *Result, format string, args ...any) *Result {
	if r.Ok() {
		return r
	}
	return &Result{
		Code:    r.Code,
		Message: fmt.Sprintf(format, args...) + r.Message,
	}
}
