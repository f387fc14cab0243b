package meta

import (
	"fmt"
	"reflect"
)

// Identity is the name of the identity property every object carries.
const Identity = "objectName"

// Property describes a property of a gadget or class.
type Property struct {
	Name string
	Type *Type
	// Stored properties take part in serialization.
	Stored   bool
	Readable bool
	Writable bool
	// Identity marks the object name property.
	Identity bool

	field string
	index []int
	owner reflect.Type
}

func (p *Property) String() string {
	return p.Name + " " + p.Type.Name()
}

// structProps derives properties from the exported fields of st in
// declaration order, promoted fields of embedded structs in place of the
// embedding field. Lock must be held.
func (r *Registry) structProps(st reflect.Type, isClass bool) []*Property {
	var props []*Property
	seen := map[string]bool{}
	if isClass {
		props = append(props, &Property{
			Name:     Identity,
			Type:     r.typeFor(stringType),
			Stored:   true,
			Readable: true,
			Writable: true,
			Identity: true,
			owner:    st,
		})
		seen[Identity] = true
	}
	for _, f := range reflect.VisibleFields(st) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		if throughPointer(st, f.Index) {
			continue
		}
		tags, err := ParseStructTag(f.Tag.Get(TagKey))
		if err != nil {
			tags = map[string]string{}
		}
		if _, ok := tags["-"]; ok {
			continue
		}
		if _, ok := tags["omit"]; ok {
			continue
		}
		name := propertyName(f.Name)
		if n := tags["name"]; n != "" {
			name = n
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		_, notStored := tags["notstored"]
		_, readOnly := tags["readonly"]
		props = append(props, &Property{
			Name:     name,
			Type:     r.typeFor(f.Type),
			Stored:   !notStored,
			Readable: true,
			Writable: !readOnly,
			field:    f.Name,
			index:    f.Index,
			owner:    st,
		})
	}
	return props
}

func throughPointer(st reflect.Type, index []int) bool {
	t := st
	for _, i := range index[:len(index)-1] {
		ft := t.Field(i).Type
		if ft.Kind() == reflect.Pointer {
			return true
		}
		t = ft
	}
	return false
}

// PropertiesOf returns the properties of a gadget, class or object
// reference type in declaration order. Object types start with the
// identity property.
func (r *Registry) PropertiesOf(t *Type) []*Property {
	if t == nil {
		return nil
	}
	if t.class != nil {
		return t.class.props
	}
	return t.props
}

// Property looks up the property name of t.
func (r *Registry) Property(t *Type, name string) *Property {
	for _, p := range r.PropertiesOf(t) {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// structOf dereferences pointers and interfaces down to a struct value.
func structOf(rv reflect.Value) (reflect.Value, error) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil instance", ErrNotObject)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s is not a struct", ErrNotObject, rv.Kind())
	}
	return rv, nil
}

func (p *Property) fieldOf(sv reflect.Value) (reflect.Value, error) {
	if sv.Type() == p.owner {
		return sv.FieldByIndex(p.index), nil
	}
	// the instance is of a type derived from the owner
	sf, ok := sv.Type().FieldByName(p.field)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s on %s", ErrNoSuchProperty, p.Name, sv.Type())
	}
	fv, err := sv.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %s: %w", ErrNoSuchProperty, p.Name, err)
	}
	return fv, nil
}

// Read reads p from instance.
func (r *Registry) Read(instance Value, p *Property) (Value, error) {
	if !p.Readable {
		return Value{}, fmt.Errorf("%w: %s", ErrNotReadable, p.Name)
	}
	if p.Identity {
		o, ok := instance.Interface().(Objecter)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s", ErrNotObject, instance.rv.Type())
		}
		return Value{t: p.Type, rv: reflect.ValueOf(o.metaObject().name)}, nil
	}
	sv, err := structOf(instance.rv)
	if err != nil {
		return Value{}, err
	}
	fv, err := p.fieldOf(sv)
	if err != nil {
		return Value{}, err
	}
	return Value{t: p.Type, rv: fv}, nil
}

// Write converts v to the type of p and stores it in instance, which must
// be a pointer or an addressable struct.
func (r *Registry) Write(instance Value, p *Property, v Value) error {
	if !p.Writable {
		return fmt.Errorf("%w: %s", ErrNotWritable, p.Name)
	}
	cv, err := r.Convert(v, p.Type)
	if err != nil {
		return err
	}
	if p.Identity {
		o, ok := instance.Interface().(Objecter)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotObject, instance.rv.Type())
		}
		name, _ := cv.Interface().(string)
		o.metaObject().name = name
		return nil
	}
	sv, err := structOf(instance.rv)
	if err != nil {
		return err
	}
	fv, err := p.fieldOf(sv)
	if err != nil {
		return err
	}
	if !fv.CanSet() {
		return fmt.Errorf("%w: %s: instance not addressable", ErrNotWritable, p.Name)
	}
	if !cv.rv.IsValid() {
		fv.SetZero()
		return nil
	}
	fv.Set(cv.rv)
	return nil
}
