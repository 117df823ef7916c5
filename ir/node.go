package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Node is a single document value. Objects keep their entries in
// insertion order with unique keys; Keys and Values are parallel
// slices for ObjectType, and Keys is nil for ArrayType.
type Node struct {
	Type   Type
	Keys   []string
	Values []*Node

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.String = n.String
	dst.Bool = n.Bool
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Keys != nil {
		dst.Keys = slices.Clone(n.Keys)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

// FromMap builds an object with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	res := NewObject()
	for _, key := range slices.Sorted(maps.Keys(m)) {
		res.Set(key, m[key])
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

// Get returns the value at key, or nil when absent or when n is not
// an object.
func (n *Node) Get(key string) *Node {
	if n.Type != ObjectType {
		return nil
	}
	for i := range n.Keys {
		if n.Keys[i] == key {
			return n.Values[i]
		}
	}
	return nil
}

// Set writes key to v, replacing an existing entry in place or
// appending a new one.
func (n *Node) Set(key string, v *Node) {
	for i := range n.Keys {
		if n.Keys[i] == key {
			n.Values[i] = v
			return
		}
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
}

// Delete removes the entry at key. Reports whether an entry was
// removed.
func (n *Node) Delete(key string) bool {
	for i := range n.Keys {
		if n.Keys[i] == key {
			n.Keys = slices.Delete(n.Keys, i, i+1)
			n.Values = slices.Delete(n.Values, i, i+1)
			return true
		}
	}
	return false
}

// Splice removes the element at index i from an array, shifting the
// tail down.
func (n *Node) Splice(i int) {
	n.Values = slices.Delete(n.Values, i, i+1)
}

func (n *Node) Len() int {
	return len(n.Values)
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// NumberString renders a number node canonically; other types give
// their scalar text where one exists.
func (n *Node) NumberString() string {
	if n.Int64 != nil {
		return strconv.FormatInt(*n.Int64, 10)
	}
	if n.Float64 != nil {
		return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
	}
	return ""
}
