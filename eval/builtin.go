package eval

import (
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/patch"
)

// nonEmpty rejects empty strings and empty containers.
func nonEmpty(value *ir.Node, _ patch.Options) (any, error) {
	switch value.Type {
	case ir.StringType:
		if value.String == "" {
			return "value must not be an empty string", nil
		}
	case ir.ObjectType, ir.ArrayType:
		if value.Len() == 0 {
			return "value must not be empty", nil
		}
	}
	return true, nil
}

// scalar rejects composite values.
func scalar(value *ir.Node, _ patch.Options) (any, error) {
	if !value.Type.IsLeaf() {
		return "value must be a scalar", nil
	}
	return true, nil
}

// recordPath emits a follow-up patch recording the main patch's
// path under /audit/last.
func recordPath(p *patch.Patch, _ *ir.Node) ([]*patch.Patch, error) {
	rec, err := patch.Add("/audit/last", ir.FromString(p.Raw))
	if err != nil {
		return nil, err
	}
	return []*patch.Patch{rec}, nil
}
