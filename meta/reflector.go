package meta

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Reflector is the introspection capability converters work through.
// *Registry implements it.
type Reflector interface {
	PropertiesOf(t *Type) []*Property
	Property(t *Type, name string) *Property
	Read(instance Value, p *Property) (Value, error)
	Write(instance Value, p *Property, v Value) error
	Construct(t *Type, owner Objecter) (Value, error)
	TypeByName(name string) (*Type, bool)
	IsSubtype(a, b *Type) bool

	TypeFor(rt reflect.Type) *Type
	DynamicType(v Value) *Type
	Unknown() *Type
	Convert(v Value, to *Type) (Value, error)
	Zero(t *Type) Value
	New(t *Type) Value

	Wrap(t *Type, instance Value) (Value, error)
	Unwrap(v Value) (Value, bool)
	SetDynamicProperty(instance Value, name string, v Value) error

	Elements(v Value) ([]Value, error)
	MakeList(t *Type, elems []Value) (Value, error)
	Entries(v Value) ([]Entry, error)
	MakeMap(t *Type, entries []Entry) (Value, error)
	Components(v Value) ([]Value, error)
	MakeTuple(t *Type, comps []Value) (Value, error)

	EnumValue(v Value) (int64, bool)
	MakeEnum(t *Type, n int64) (Value, error)
}

var _ Reflector = (*Registry)(nil)

// Entry is a key and value of a map.
type Entry struct {
	Key   string
	Value Value
}

// Construct creates a new instance of the class of t owned by owner. The
// result is an exclusive pointer; use Wrap to obtain the reference mode of
// t.
func (r *Registry) Construct(t *Type, owner Objecter) (Value, error) {
	if t == nil || !t.Is(FlagObject) || t.class == nil {
		return Value{}, fmt.Errorf("%w: %s", ErrNotConstructible, t.Name())
	}
	c := t.class
	if c.abstract {
		return Value{}, fmt.Errorf("%w: %s is abstract", ErrNotConstructible, c.name)
	}
	var obj Objecter
	if c.ctor != nil {
		obj = c.ctor()
		if obj == nil || reflect.TypeOf(obj) != c.ptr.rt {
			return Value{}, fmt.Errorf("%w: constructor of %s returned %T", ErrNotConstructible, c.name, obj)
		}
	} else {
		obj = reflect.New(c.rt).Interface().(Objecter)
	}
	if owner != nil {
		SetParent(obj, owner)
	}
	return Value{t: c.ptr, rv: reflect.ValueOf(obj)}, nil
}

// IsSubtype reports whether values of a may be held by references of
// type b.
func (r *Registry) IsSubtype(a, b *Type) bool {
	switch {
	case a == nil || b == nil:
		return false
	case a == b, b.IsUnknown():
		return true
	case a.class != nil && a.class == b.class && !b.Is(FlagInterface):
		return true
	case b.Is(FlagInterface) && a.Is(FlagObject) && a.own == OwnPointer && !a.Is(FlagInterface):
		return a.rt.Implements(b.rt)
	}
	return false
}

// DynamicType returns the type of the value held by v, looking through
// interfaces.
func (r *Registry) DynamicType(v Value) *Type {
	rv := v.rv
	if rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return r.unknown
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return r.unknown
	}
	return r.TypeFor(rv.Type())
}

// Zero returns the zero value of t.
func (r *Registry) Zero(t *Type) Value {
	if t == nil || t.rt == nil {
		return Value{}
	}
	if t.IsUnknown() {
		return Value{t: t}
	}
	return Value{t: t, rv: reflect.Zero(t.rt)}
}

// New returns an addressable zero value of t.
func (r *Registry) New(t *Type) Value {
	if t == nil || t.rt == nil {
		return Value{}
	}
	return Value{t: t, rv: reflect.New(t.rt).Elem()}
}

// Wrap turns an exclusive object pointer into a reference of type t.
func (r *Registry) Wrap(t *Type, instance Value) (Value, error) {
	if instance.IsNil() {
		return r.Zero(t), nil
	}
	switch t.own {
	case OwnShared, OwnTracking:
		h := reflect.Zero(t.rt).Interface().(handle)
		if instance.rv.Type() != reflect.PointerTo(h.classType()) {
			return Value{}, fmt.Errorf("%w %s to %s", ErrConvert, instance.rv.Type(), t.name)
		}
		return Value{t: t, rv: h.wrap(instance.rv)}, nil
	}
	return r.Convert(instance, t)
}

// Unwrap returns the object pointer held by v, whatever its reference mode.
// ok is false if v holds no object.
func (r *Registry) Unwrap(v Value) (Value, bool) {
	rv := v.rv
	if !rv.IsValid() {
		return Value{}, false
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct && rv.Type().Implements(handleType) {
		rv = rv.Interface().(handle).target()
	}
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Value{}, false
	}
	if _, ok := rv.Interface().(Objecter); !ok {
		return Value{}, false
	}
	return Value{t: r.TypeFor(rv.Type()), rv: rv}, true
}

// SetDynamicProperty stores v under name on an object instance.
func (r *Registry) SetDynamicProperty(instance Value, name string, v Value) error {
	o, ok := instance.Interface().(Objecter)
	if !ok {
		return fmt.Errorf("%w: cannot set %q", ErrNotObject, name)
	}
	o.metaObject().SetProperty(name, v.Interface())
	return nil
}

func deref(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

// Elements returns the elements of a slice or array.
func (r *Registry) Elements(v Value) ([]Value, error) {
	rv := deref(v.rv)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%w: %s", ErrWrongContainer, v.t.Name())
	}
	et := r.TypeFor(rv.Type().Elem())
	res := make([]Value, rv.Len())
	for i := range res {
		res[i] = Value{t: et, rv: rv.Index(i)}
	}
	return res, nil
}

// MakeList builds a slice of type t from elems.
func (r *Registry) MakeList(t *Type, elems []Value) (Value, error) {
	if t.rt == nil || t.rt.Kind() != reflect.Slice {
		return Value{}, fmt.Errorf("%w: %s", ErrWrongContainer, t.Name())
	}
	et := r.TypeFor(t.rt.Elem())
	s := reflect.MakeSlice(t.rt, len(elems), len(elems))
	for i, e := range elems {
		if err := r.setConverted(s.Index(i), e, et); err != nil {
			return Value{}, fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return Value{t: t, rv: s}, nil
}

func (r *Registry) setConverted(dst reflect.Value, v Value, t *Type) error {
	cv, err := r.Convert(v, t)
	if err != nil {
		return err
	}
	if !cv.rv.IsValid() {
		dst.SetZero()
		return nil
	}
	dst.Set(cv.rv)
	return nil
}

// Entries returns the entries of a string keyed map sorted by key.
func (r *Registry) Entries(v Value) ([]Entry, error) {
	rv := deref(v.rv)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %s", ErrWrongContainer, v.t.Name())
	}
	vt := r.TypeFor(rv.Type().Elem())
	res := make([]Entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		res = append(res, Entry{Key: iter.Key().String(), Value: Value{t: vt, rv: iter.Value()}})
	}
	slices.SortFunc(res, func(a, b Entry) int { return cmp.Compare(a.Key, b.Key) })
	return res, nil
}

// MakeMap builds a map of type t from entries. Later entries replace
// earlier ones with the same key.
func (r *Registry) MakeMap(t *Type, entries []Entry) (Value, error) {
	if t.rt == nil || t.rt.Kind() != reflect.Map || t.rt.Key().Kind() != reflect.String {
		return Value{}, fmt.Errorf("%w: %s", ErrWrongContainer, t.Name())
	}
	vt := r.TypeFor(t.rt.Elem())
	m := reflect.MakeMapWithSize(t.rt, len(entries))
	for _, e := range entries {
		ev := reflect.New(t.rt.Elem()).Elem()
		if err := r.setConverted(ev, e.Value, vt); err != nil {
			return Value{}, fmt.Errorf("[%q]: %w", e.Key, err)
		}
		m.SetMapIndex(reflect.ValueOf(e.Key).Convert(t.rt.Key()), ev)
	}
	return Value{t: t, rv: m}, nil
}

func tupleFields(rt reflect.Type) []int {
	var res []int
	for i := range rt.NumField() {
		if rt.Field(i).IsExported() {
			res = append(res, i)
		}
	}
	return res
}

// Components returns the components of a pair or tuple in order.
func (r *Registry) Components(v Value) ([]Value, error) {
	rv := deref(v.rv)
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrWrongContainer, v.t.Name())
	}
	fields := tupleFields(rv.Type())
	res := make([]Value, len(fields))
	for i, fi := range fields {
		fv := rv.Field(fi)
		res[i] = Value{t: r.TypeFor(fv.Type()), rv: fv}
	}
	return res, nil
}

// MakeTuple builds a pair or tuple of type t. The number of components must
// match exactly.
func (r *Registry) MakeTuple(t *Type, comps []Value) (Value, error) {
	if t.rt == nil || t.rt.Kind() != reflect.Struct {
		return Value{}, fmt.Errorf("%w: %s", ErrWrongContainer, t.Name())
	}
	fields := tupleFields(t.rt)
	if len(fields) != len(comps) {
		return Value{}, fmt.Errorf("%w: %s has %d components, got %d", ErrArity, t.name, len(fields), len(comps))
	}
	sv := reflect.New(t.rt).Elem()
	for i, fi := range fields {
		fv := sv.Field(fi)
		if err := r.setConverted(fv, comps[i], r.TypeFor(fv.Type())); err != nil {
			return Value{}, fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return Value{t: t, rv: sv}, nil
}

// EnumValue returns the integer held by v.
func (r *Registry) EnumValue(v Value) (int64, bool) {
	rv := deref(v.rv)
	switch {
	case !rv.IsValid():
		return 0, false
	case isInt(rv.Kind()):
		return rv.Int(), true
	case isUint(rv.Kind()):
		return int64(rv.Uint()), true
	}
	return 0, false
}

// MakeEnum returns n as a value of the enumeration t.
func (r *Registry) MakeEnum(t *Type, n int64) (Value, error) {
	if t.rt == nil {
		return Value{}, fmt.Errorf("%w: %s", ErrConvert, t.Name())
	}
	var (
		rv  reflect.Value
		err error
	)
	switch {
	case isInt(t.rt.Kind()):
		rv, err = setInt(t.rt, n)
	case isUint(t.rt.Kind()):
		// uint64 flags using the top bit come back as negative numbers
		rv, err = setUint(t.rt, uint64(n))
	default:
		return Value{}, fmt.Errorf("%w: %s is not an integer type", ErrConvert, t.name)
	}
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrConvert, err)
	}
	return Value{t: t, rv: rv}, nil
}
