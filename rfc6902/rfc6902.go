// Package rfc6902 bridges RFC 6902 JSON Patch documents to the
// native patch model. Decode converts a JSON Patch into native
// patches; Apply round-trips a document through a JSON Patch
// unchanged, for interop checks.
//
// JSON Pointer does not distinguish object keys from array
// indices, so Decode maps tokens syntactically: decimal tokens
// become index segments, "-" (the position after the last element)
// becomes the append selector, and everything else becomes a field
// segment. Non-writing ops on an appended position then fail the
// same way a JSON Patch processor rejects "-" outside add.
package rfc6902

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/docpatch/docpatch/codec"
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/kpath"
	"github.com/docpatch/docpatch/patch"
)

type rawOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

var indexToken = regexp.MustCompile(`^(0|[1-9][0-9]*|-)$`)

// PointerToPath converts an RFC 6901 JSON Pointer to native path
// text. The root pointer "" has no native equivalent.
func PointerToPath(ptr string) (string, error) {
	if ptr == "" {
		return "", fmt.Errorf("the root pointer has no path equivalent")
	}
	if ptr[0] != '/' {
		return "", fmt.Errorf("pointer %q must start with '/'", ptr)
	}
	var b strings.Builder
	for _, tok := range strings.Split(ptr[1:], "/") {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		if indexToken.MatchString(tok) {
			if tok == "-" {
				tok = "+"
			}
			b.WriteByte(':')
			b.WriteString(tok)
			continue
		}
		b.WriteByte('/')
		b.WriteString(kpath.EncodeField(tok))
	}
	return b.String(), nil
}

// Decode converts an RFC 6902 patch document into native patches.
// The input is validated with the json-patch decoder first, so
// malformed patch documents fail the same way they would in a JSON
// Patch processor.
func Decode(data []byte) ([]*patch.Patch, error) {
	if _, err := jsonpatch.DecodePatch(data); err != nil {
		return nil, err
	}
	var ops []rawOp
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, err
	}
	res := make([]*patch.Patch, 0, len(ops))
	for i, op := range ops {
		p, err := decodeOp(&op)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		res = append(res, p)
	}
	return res, nil
}

func decodeOp(op *rawOp) (*patch.Patch, error) {
	path, err := PointerToPath(op.Path)
	if err != nil {
		return nil, err
	}
	var value *ir.Node
	if len(op.Value) != 0 {
		value, err = codec.Unmarshal(op.Value)
		if err != nil {
			return nil, err
		}
	} else if patch.Op(op.Op).NeedsValue() {
		// "value": null arrives as the 4-byte literal, so an empty
		// raw message means the member was absent.
		return nil, fmt.Errorf("%s requires a value member", op.Op)
	}
	switch op.Op {
	case "add":
		return patch.Add(path, value)
	case "replace":
		return patch.Replace(path, value)
	case "remove":
		return patch.Remove(path)
	case "test":
		return patch.Test(path, value)
	case "copy", "move":
		from, err := PointerToPath(op.From)
		if err != nil {
			return nil, err
		}
		if op.Op == "copy" {
			return patch.Copy(from, path)
		}
		return patch.Move(from, path)
	default:
		return nil, fmt.Errorf("unsupported op %q", op.Op)
	}
}

// Apply applies an RFC 6902 patch to a document by round-tripping
// it through JSON.
func Apply(doc *ir.Node, patchJSON []byte) (*ir.Node, error) {
	d, err := codec.MarshalJSON(doc)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return codec.Unmarshal(out)
}
