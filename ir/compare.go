package ir

// Equal reports whether a and b hold the same JSON value. Object keys are
// compared in order. Numbers are equal when their values are, so 1 and 1.0
// match; numbers outside float64 range match on their text.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Type != b.Type {
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
		return numbersEqual(a, b)
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
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].String != b.Fields[i].String || !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b *Node) bool {
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	if a.Number != "" && b.Number != "" && a.Number == b.Number {
		return true
	}
	fa, okA := a.AsFloat64()
	fb, okB := b.AsFloat64()
	if okA && okB {
		return fa == fb
	}
	return a.NumberText() == b.NumberText()
}
