package meta

import (
	"reflect"
	"weak"
)

// handle is implemented by the reference wrappers so the registry can
// wrap and unwrap them without knowing their type parameter.
type handle interface {
	ownership() Ownership
	classType() reflect.Type
	target() reflect.Value
	wrap(p reflect.Value) reflect.Value
}

var handleType = reflect.TypeFor[handle]()

// Shared is a reference to an object which may be held by several owners.
type Shared[T any] struct {
	p *T
}

func NewShared[T any](p *T) Shared[T] {
	return Shared[T]{p: p}
}

func (s Shared[T]) Get() *T {
	return s.p
}

func (s Shared[T]) IsNull() bool {
	return s.p == nil
}

func (Shared[T]) ownership() Ownership    { return OwnShared }
func (Shared[T]) classType() reflect.Type { return reflect.TypeFor[T]() }
func (s Shared[T]) target() reflect.Value { return reflect.ValueOf(s.p) }
func (Shared[T]) wrap(p reflect.Value) reflect.Value {
	var s Shared[T]
	if p.IsValid() && !p.IsNil() {
		s.p = p.Interface().(*T)
	}
	return reflect.ValueOf(s)
}

// Tracking is a weak reference to an object. It does not keep the object
// alive; Get returns nil once the object has been collected.
type Tracking[T any] struct {
	w weak.Pointer[T]
}

func Track[T any](p *T) Tracking[T] {
	if p == nil {
		return Tracking[T]{}
	}
	return Tracking[T]{w: weak.Make(p)}
}

func (t Tracking[T]) Get() *T {
	return t.w.Value()
}

func (t Tracking[T]) IsNull() bool {
	return t.Get() == nil
}

func (Tracking[T]) ownership() Ownership    { return OwnTracking }
func (Tracking[T]) classType() reflect.Type { return reflect.TypeFor[T]() }
func (t Tracking[T]) target() reflect.Value { return reflect.ValueOf(t.Get()) }
func (Tracking[T]) wrap(p reflect.Value) reflect.Value {
	var t Tracking[T]
	if p.IsValid() && !p.IsNil() {
		t.w = weak.Make(p.Interface().(*T))
	}
	return reflect.ValueOf(t)
}

// Pair holds two values of possibly different types.
type Pair[A, B any] struct {
	First  A
	Second B
}

func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (Pair[A, B]) isPair() {}

type pairer interface {
	isPair()
}

var pairType = reflect.TypeFor[pairer]()
