package meta

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Value holds one value of a reflectable type together with its Type. The
// zero Value is invalid and stands for null.
type Value struct {
	t  *Type
	rv reflect.Value
}

func ValueOf(t *Type, v any) Value {
	return Value{t: t, rv: reflect.ValueOf(v)}
}

func MakeValue(t *Type, rv reflect.Value) Value {
	return Value{t: t, rv: rv}
}

func (v Value) Type() *Type {
	return v.t
}

func (v Value) RV() reflect.Value {
	return v.rv
}

func (v Value) IsValid() bool {
	return v.rv.IsValid()
}

// IsNil reports whether v is invalid or a nil pointer, interface, map or
// slice.
func (v Value) IsNil() bool {
	if !v.rv.IsValid() {
		return true
	}
	switch v.rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.rv.IsNil()
	}
	return false
}

func (v Value) Interface() any {
	if !v.rv.IsValid() {
		return nil
	}
	return v.rv.Interface()
}

func (v Value) String() string {
	if !v.rv.IsValid() {
		return "<null>"
	}
	return fmt.Sprintf("%v (%s)", v.rv.Interface(), v.t.Name())
}

// Convert converts v to type to. Conversions never truncate: numbers must
// fit the target exactly and strings only convert to numbers or booleans
// when they parse. An invalid v converts to the zero value of nullable
// types only.
func (r *Registry) Convert(v Value, to *Type) (Value, error) {
	if to == nil || (to.IsUnknown() && (to.rt == nil || to.rt == anyType)) {
		return v, nil
	}
	if !v.rv.IsValid() {
		if to.Nullable() {
			return Value{t: to, rv: reflect.Zero(to.rt)}, nil
		}
		return Value{}, fmt.Errorf("%w null to %s", ErrConvert, to.name)
	}
	rv, err := convertRV(v.rv, to.rt)
	if err != nil {
		return Value{}, fmt.Errorf("%w %s to %s: %w", ErrConvert, v.rv.Type(), to.name, err)
	}
	return Value{t: to, rv: rv}, nil
}

func convertRV(rv reflect.Value, to reflect.Type) (reflect.Value, error) {
	from := rv.Type()
	if from == to {
		return rv, nil
	}
	if from.AssignableTo(to) {
		n := reflect.New(to).Elem()
		n.Set(rv)
		return n, nil
	}
	fk, tk := from.Kind(), to.Kind()
	switch {
	case fk == reflect.Interface:
		if rv.IsNil() {
			if nillable(tk) {
				return reflect.Zero(to), nil
			}
			return reflect.Value{}, fmt.Errorf("nil value")
		}
		return convertRV(rv.Elem(), to)
	case isNumber(fk) && isNumber(tk):
		return convertNumber(rv, to)
	case fk == reflect.String && isNumber(tk):
		return parseNumber(rv.String(), to)
	case fk == reflect.String && tk == reflect.Bool:
		b, err := strconv.ParseBool(rv.String())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b).Convert(to), nil
	case fk == reflect.String && tk == reflect.String,
		fk == reflect.Bool && tk == reflect.Bool:
		return rv.Convert(to), nil
	case tk == reflect.Pointer:
		if fk == reflect.Pointer && rv.IsNil() {
			return reflect.Zero(to), nil
		}
		inner, err := convertRV(rv, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(to.Elem())
		p.Elem().Set(inner)
		return p, nil
	case fk == reflect.Pointer:
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil pointer")
		}
		return convertRV(rv.Elem(), to)
	case fk == reflect.Slice && tk == reflect.Slice:
		if rv.IsNil() {
			return reflect.Zero(to), nil
		}
		n := reflect.MakeSlice(to, rv.Len(), rv.Len())
		for i := range rv.Len() {
			e, err := convertRV(rv.Index(i), to.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			n.Index(i).Set(e)
		}
		return n, nil
	case fk == reflect.Map && tk == reflect.Map &&
		from.Key().Kind() == reflect.String && to.Key().Kind() == reflect.String:
		if rv.IsNil() {
			return reflect.Zero(to), nil
		}
		n := reflect.MakeMapWithSize(to, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			e, err := convertRV(iter.Value(), to.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("[%q]: %w", iter.Key().String(), err)
			}
			n.SetMapIndex(iter.Key().Convert(to.Key()), e)
		}
		return n, nil
	}
	return reflect.Value{}, fmt.Errorf("incompatible types")
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumber(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || isFloat(k)
}

func convertNumber(rv reflect.Value, to reflect.Type) (reflect.Value, error) {
	fk, tk := rv.Kind(), to.Kind()
	switch {
	case isFloat(tk):
		out := rv.Convert(to)
		if isFloat(fk) && !math.IsInf(rv.Float(), 0) && math.IsInf(out.Float(), 0) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", rv.Float(), to)
		}
		return out, nil
	case isFloat(fk):
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return reflect.Value{}, fmt.Errorf("%v is not an integer", f)
		}
		if isInt(tk) {
			if f < math.MinInt64 || f >= math.MaxInt64 {
				return reflect.Value{}, fmt.Errorf("%v overflows %s", f, to)
			}
			return setInt(to, int64(f))
		}
		if f < 0 || f >= math.MaxUint64 {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", f, to)
		}
		return setUint(to, uint64(f))
	case isInt(fk):
		i := rv.Int()
		if isInt(tk) {
			return setInt(to, i)
		}
		if i < 0 {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", i, to)
		}
		return setUint(to, uint64(i))
	default:
		u := rv.Uint()
		if isUint(tk) {
			return setUint(to, u)
		}
		if u > math.MaxInt64 {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", u, to)
		}
		return setInt(to, int64(u))
	}
}

func setInt(to reflect.Type, i int64) (reflect.Value, error) {
	n := reflect.New(to).Elem()
	if n.OverflowInt(i) {
		return reflect.Value{}, fmt.Errorf("%d overflows %s", i, to)
	}
	n.SetInt(i)
	return n, nil
}

func setUint(to reflect.Type, u uint64) (reflect.Value, error) {
	n := reflect.New(to).Elem()
	if n.OverflowUint(u) {
		return reflect.Value{}, fmt.Errorf("%d overflows %s", u, to)
	}
	n.SetUint(u)
	return n, nil
}

func parseNumber(s string, to reflect.Type) (reflect.Value, error) {
	tk := to.Kind()
	switch {
	case isInt(tk):
		i, err := strconv.ParseInt(s, 10, to.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return setInt(to, i)
	case isUint(tk):
		u, err := strconv.ParseUint(s, 10, to.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return setUint(to, u)
	default:
		f, err := strconv.ParseFloat(s, to.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		n := reflect.New(to).Elem()
		n.SetFloat(f)
		return n, nil
	}
}
