package codec

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/docpatch/docpatch/ir"
)

// FromAny converts a decoded Go value into a document node.
// Ordered maps (yaml.MapSlice) keep their key order; plain maps are
// ordered by sorted key.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case *ir.Node:
		return x.Clone(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case yaml.MapSlice:
		res := ir.NewObject()
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			if res.Get(key) != nil {
				return nil, fmt.Errorf("duplicate key %q", key)
			}
			val, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			res.Set(key, val)
		}
		return res, nil
	case map[string]any:
		res := ir.NewObject()
		for _, key := range slices.Sorted(maps.Keys(x)) {
			val, err := FromAny(x[key])
			if err != nil {
				return nil, err
			}
			res.Set(key, val)
		}
		return res, nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, elt := range x {
			val, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return ir.FromSlice(vals), nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a document value", v)
	}
}

// ToAny converts a node to plain Go values: map[string]any for
// objects (order lost), []any for arrays.
func ToAny(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		res := make(map[string]any, len(node.Keys))
		for i, key := range node.Keys {
			res[key] = ToAny(node.Values[i])
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return 0
	case ir.BoolType:
		return node.Bool
	case ir.NullType:
		return nil
	default:
		panic("impossible production")
	}
}

// ToOrdered is ToAny with object order kept, for YAML encoding.
func ToOrdered(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Keys))
		for i, key := range node.Keys {
			res[i] = yaml.MapItem{Key: key, Value: ToOrdered(node.Values[i])}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToOrdered(elt)
		}
		return res
	default:
		return ToAny(node)
	}
}
