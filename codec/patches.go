package codec

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/docpatch/docpatch/patch"
)

type rawPatch struct {
	Op     string
	Path   string
	From   string
	Value  any
	Fill   any
	Silent bool
	Strict *bool
	Mode   string

	hasValue bool
	hasFill  bool
}

// DecodePatches decodes an ordered patch list from YAML or JSON.
// Structural problems (unknown op, malformed path, missing fields)
// surface later through preflight; this only rejects input that is
// not a list of patch records.
func DecodePatches(data []byte) ([]*patch.Patch, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("patch list must be a sequence, got %T", v)
	}
	res := make([]*patch.Patch, 0, len(items))
	for i, item := range items {
		rp, err := decodeRawPatch(item)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		p, err := rp.toPatch()
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		res = append(res, p)
	}
	return res, nil
}

func decodeRawPatch(item any) (*rawPatch, error) {
	fields, ok := item.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("patch must be a mapping, got %T", item)
	}
	rp := &rawPatch{}
	for _, f := range fields {
		key, ok := f.Key.(string)
		if !ok {
			return nil, fmt.Errorf("patch field key %v is not a string", f.Key)
		}
		switch key {
		case "op":
			s, err := stringField(key, f.Value)
			if err != nil {
				return nil, err
			}
			rp.Op = s
		case "path":
			s, err := stringField(key, f.Value)
			if err != nil {
				return nil, err
			}
			rp.Path = s
		case "from":
			s, err := stringField(key, f.Value)
			if err != nil {
				return nil, err
			}
			rp.From = s
		case "mode":
			s, err := stringField(key, f.Value)
			if err != nil {
				return nil, err
			}
			rp.Mode = s
		case "value":
			rp.Value = f.Value
			rp.hasValue = true
		case "fill":
			rp.Fill = f.Value
			rp.hasFill = true
		case "silent":
			b, ok := f.Value.(bool)
			if !ok {
				return nil, fmt.Errorf("silent must be a bool, got %T", f.Value)
			}
			rp.Silent = b
		case "strict":
			b, ok := f.Value.(bool)
			if !ok {
				return nil, fmt.Errorf("strict must be a bool, got %T", f.Value)
			}
			rp.Strict = &b
		default:
			return nil, fmt.Errorf("unknown patch field %q", key)
		}
	}
	return rp, nil
}

// PatchFromMap builds a patch from a plain map, as produced by hook
// expressions.
func PatchFromMap(m map[string]any) (*patch.Patch, error) {
	rp := &rawPatch{Strict: nil}
	for key, v := range m {
		switch key {
		case "op":
			s, err := stringField(key, v)
			if err != nil {
				return nil, err
			}
			rp.Op = s
		case "path":
			s, err := stringField(key, v)
			if err != nil {
				return nil, err
			}
			rp.Path = s
		case "from":
			s, err := stringField(key, v)
			if err != nil {
				return nil, err
			}
			rp.From = s
		case "mode":
			s, err := stringField(key, v)
			if err != nil {
				return nil, err
			}
			rp.Mode = s
		case "value":
			rp.Value = v
			rp.hasValue = true
		case "fill":
			rp.Fill = v
			rp.hasFill = true
		case "silent":
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("silent must be a bool, got %T", v)
			}
			rp.Silent = b
		case "strict":
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("strict must be a bool, got %T", v)
			}
			rp.Strict = &b
		default:
			return nil, fmt.Errorf("unknown patch field %q", key)
		}
	}
	return rp.toPatch()
}

func stringField(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

func (rp *rawPatch) toPatch() (*patch.Patch, error) {
	p := &patch.Patch{
		Op:      patch.Op(rp.Op),
		Raw:     rp.Path,
		FromRaw: rp.From,
		Silent:  rp.Silent,
		Strict:  true,
		Mode:    patch.Op(rp.Mode),
	}
	if rp.Strict != nil {
		p.Strict = *rp.Strict
	}
	if rp.hasValue {
		v, err := FromAny(rp.Value)
		if err != nil {
			return nil, err
		}
		p.Value = v
	}
	if rp.hasFill {
		v, err := FromAny(rp.Fill)
		if err != nil {
			return nil, err
		}
		p.Fill = v
	}
	return p, nil
}
