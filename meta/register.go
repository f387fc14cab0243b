package meta

import (
	"fmt"
	"reflect"
)

// RegisterEnum registers E as an enumeration with the given enumerators.
func RegisterEnum[E Integer](r *Registry, es ...Enumerator) (*Type, error) {
	return r.registerEnum(reflect.TypeFor[E](), FlagEnum, es)
}

// RegisterFlags registers E as a bit flag type. A value of a flag type is
// any bitwise OR of its enumerators.
func RegisterFlags[E Integer](r *Registry, es ...Enumerator) (*Type, error) {
	return r.registerEnum(reflect.TypeFor[E](), FlagEnum|FlagFlags, es)
}

func (r *Registry) registerEnum(rt reflect.Type, flags Flags, es []Enumerator) (*Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnseen(rt); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, e := range es {
		if e.Name == "" || seen[e.Name] {
			return nil, fmt.Errorf("%w: enumerator %q of %s", ErrRegistration, e.Name, rt)
		}
		seen[e.Name] = true
	}
	t := &Type{name: goName(rt), rt: rt, flags: flags, enumerators: append([]Enumerator(nil), es...)}
	return r.add(t), nil
}

// RegisterInterface registers the interface I as a polymorphic object
// reference type whose static class is B. *B must implement I.
func RegisterInterface[I any, B any](r *Registry) (*Type, error) {
	it := reflect.TypeFor[I]()
	bt := reflect.TypeFor[B]()
	if it.Kind() != reflect.Interface || !it.Implements(objecterType) {
		return nil, fmt.Errorf("%w: %s is not an object interface", ErrRegistration, it)
	}
	if bt.Kind() != reflect.Struct || !reflect.PointerTo(bt).Implements(it) {
		return nil, fmt.Errorf("%w: *%s does not implement %s", ErrRegistration, bt, it)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnseen(it); err != nil {
		return nil, err
	}
	c := r.classFor(bt)
	return r.add(&Type{name: goName(it), rt: it, flags: FlagObject | FlagInterface, own: OwnPointer, class: c}), nil
}

type ClassOption func(*Class)

// Abstract marks a class as not constructible.
func Abstract() ClassOption {
	return func(c *Class) { c.abstract = true }
}

// Constructor sets the function used to create instances of C.
func Constructor[C any](f func() *C) ClassOption {
	return func(c *Class) {
		c.ctor = func() Objecter {
			o, _ := any(f()).(Objecter)
			return o
		}
	}
}

// RegisterClass registers the struct C, which must embed Object, and
// applies opts to its class. It returns the *C type.
func RegisterClass[C any](r *Registry, opts ...ClassOption) (*Type, error) {
	ct := reflect.TypeFor[C]()
	if ct.Kind() != reflect.Struct || !reflect.PointerTo(ct).Implements(objecterType) {
		return nil, fmt.Errorf("%w: %s does not embed meta.Object", ErrRegistration, ct)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.classFor(ct)
	for _, opt := range opts {
		opt(c)
	}
	return c.ptr, nil
}

// RegisterTuple registers the struct T as a fixed arity tuple of its
// exported fields.
func RegisterTuple[T any](r *Registry) (*Type, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: tuple %s is not a struct", ErrRegistration, rt)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnseen(rt); err != nil {
		return nil, err
	}
	var params []*Type
	for _, i := range tupleFields(rt) {
		params = append(params, r.typeFor(rt.Field(i).Type))
	}
	return r.add(&Type{name: containerName("Tuple", params...), rt: rt, flags: FlagTuple, params: params}), nil
}

// RegisterLeaf registers rt under name as a type handled by a dedicated
// converter.
func (r *Registry) RegisterLeaf(name string, rt reflect.Type) (*Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnseen(rt); err != nil {
		return nil, err
	}
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("%w: name %q taken", ErrRegistration, name)
	}
	return r.add(&Type{name: name, rt: rt, flags: FlagLeaf}), nil
}
