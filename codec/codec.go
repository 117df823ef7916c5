// Package codec decodes documents and patch lists from YAML or JSON
// (YAML being a superset, one decoder serves both) and encodes
// documents back out with object key order preserved.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/docpatch/docpatch/ir"
)

// Unmarshal decodes one document from YAML or JSON text.
func Unmarshal(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return FromAny(v)
}

// MarshalJSON encodes a node as compact JSON, object keys in
// document order.
func MarshalJSON(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustJSON is MarshalJSON for messages and tests.
func MustJSON(node *ir.Node) string {
	d, err := MarshalJSON(node)
	if err != nil {
		panic(err)
	}
	return string(d)
}

func writeJSON(buf *bytes.Buffer, node *ir.Node) error {
	switch node.Type {
	case ir.NullType:
		buf.WriteString("null")
	case ir.BoolType:
		if node.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case ir.NumberType:
		s := node.NumberString()
		if s == "" {
			s = "0"
		}
		buf.WriteString(s)
	case ir.StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ir.ArrayType:
		buf.WriteByte('[')
		for i, elt := range node.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elt); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ir.ObjectType:
		buf.WriteByte('{')
		for i, key := range node.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, node.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode type %s", node.Type)
	}
	return nil
}

// MarshalYAML encodes a node as YAML, object keys in document
// order.
func MarshalYAML(node *ir.Node) ([]byte, error) {
	return yaml.Marshal(ToOrdered(node))
}

// MustYAML is MarshalYAML for messages and tests.
func MustYAML(node *ir.Node) string {
	d, err := MarshalYAML(node)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(string(d))
}
