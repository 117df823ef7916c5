package ir

import "strconv"

// Equal reports deep structural equality. Numbers must agree in
// representation: an integer node and a float node never compare
// equal, matching the exact type+value requirement of strict tests.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		if (a.Int64 == nil) != (b.Int64 == nil) {
			return false
		}
		if (a.Float64 == nil) != (b.Float64 == nil) {
			return false
		}
		if a.Int64 != nil {
			return *a.Int64 == *b.Int64
		}
		if a.Float64 != nil {
			return *a.Float64 == *b.Float64
		}
		return true
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i, key := range a.Keys {
			bv := b.Get(key)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

// LooseEqual is Equal with scalar coercion: integer and float nodes
// compare by numeric value, strings compare to numbers they parse
// as, and bools coerce to 0/1 or "true"/"false". Containers still
// require matching shapes, compared element-wise loosely.
func LooseEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type == b.Type {
		switch a.Type {
		case ArrayType:
			if len(a.Values) != len(b.Values) {
				return false
			}
			for i := range a.Values {
				if !LooseEqual(a.Values[i], b.Values[i]) {
					return false
				}
			}
			return true
		case ObjectType:
			if len(a.Keys) != len(b.Keys) {
				return false
			}
			for i, key := range a.Keys {
				bv := b.Get(key)
				if bv == nil || !LooseEqual(a.Values[i], bv) {
					return false
				}
			}
			return true
		case NumberType:
			return numValue(a) == numValue(b)
		default:
			return Equal(a, b)
		}
	}
	af, aok := coerceNum(a)
	bf, bok := coerceNum(b)
	if aok && bok {
		return af == bf
	}
	as, aok := coerceString(a)
	bs, bok := coerceString(b)
	if aok && bok {
		return as == bs
	}
	return false
}

func numValue(n *Node) float64 {
	if n.Int64 != nil {
		return float64(*n.Int64)
	}
	if n.Float64 != nil {
		return *n.Float64
	}
	return 0
}

func coerceNum(n *Node) (float64, bool) {
	switch n.Type {
	case NumberType:
		return numValue(n), true
	case BoolType:
		if n.Bool {
			return 1, true
		}
		return 0, true
	case StringType:
		f, err := strconv.ParseFloat(n.String, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func coerceString(n *Node) (string, bool) {
	switch n.Type {
	case StringType:
		return n.String, true
	case NumberType:
		return n.NumberString(), true
	case BoolType:
		return strconv.FormatBool(n.Bool), true
	}
	return "", false
}
