// Package debug provides env-driven debug flags for tracing the
// engine: set DOCPATCH_DEBUG_TRAVERSE=1 (or _PREFLIGHT, _PATCH,
// _HOOK, _EVAL) to log the corresponding stage to stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Traverse  bool
	Preflight bool
	Patch     bool
	Hook      bool
	Eval      bool
}

var d *debug

func init() {
	d = &debug{}
	d.Traverse = boolEnv("DOCPATCH_DEBUG_TRAVERSE")
	d.Preflight = boolEnv("DOCPATCH_DEBUG_PREFLIGHT")
	d.Patch = boolEnv("DOCPATCH_DEBUG_PATCH")
	d.Hook = boolEnv("DOCPATCH_DEBUG_HOOK")
	d.Eval = boolEnv("DOCPATCH_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Traverse() bool {
	return d.Traverse
}
func Preflight() bool {
	return d.Preflight
}
func Patch() bool {
	return d.Patch
}
func Hook() bool {
	return d.Hook
}
func Eval() bool {
	return d.Eval
}
