package meta

import (
	"reflect"
	"strings"
)

// Flags classify a Type.
type Flags uint32

const (
	FlagScalar Flags = 1 << iota
	FlagObject
	FlagInterface
	FlagGadget
	FlagPointer
	FlagList
	FlagMap
	FlagPair
	FlagTuple
	FlagEnum
	FlagFlags
	FlagLeaf
	FlagUnknown
)

var flagNames = []struct {
	f Flags
	n string
}{
	{FlagScalar, "Scalar"},
	{FlagObject, "Object"},
	{FlagInterface, "Interface"},
	{FlagGadget, "Gadget"},
	{FlagPointer, "Pointer"},
	{FlagList, "List"},
	{FlagMap, "Map"},
	{FlagPair, "Pair"},
	{FlagTuple, "Tuple"},
	{FlagEnum, "Enum"},
	{FlagFlags, "Flags"},
	{FlagLeaf, "Leaf"},
	{FlagUnknown, "Unknown"},
}

func (f Flags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f&fn.f != 0 {
			parts = append(parts, fn.n)
		}
	}
	return strings.Join(parts, "|")
}

// Ownership is the reference mode of an object type.
type Ownership int

const (
	OwnNone Ownership = iota
	// OwnPointer is an exclusive *T reference.
	OwnPointer
	// OwnShared is a Shared[T] reference.
	OwnShared
	// OwnTracking is a Tracking[T] weak reference.
	OwnTracking
)

func (o Ownership) String() string {
	switch o {
	case OwnPointer:
		return "pointer"
	case OwnShared:
		return "shared"
	case OwnTracking:
		return "tracking"
	default:
		return "none"
	}
}

// Enumerator is a named value of an enumeration or flag type.
type Enumerator struct {
	Name  string
	Value int64
}

// Integer is the set of types that can be registered as enumerations.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

func Enum[E Integer](name string, v E) Enumerator {
	return Enumerator{Name: name, Value: int64(v)}
}

// Type describes a reflectable type. Types are created and owned by a
// Registry and are immutable once returned.
type Type struct {
	id    int
	name  string
	rt    reflect.Type
	flags Flags
	own   Ownership

	// class is set for object types and names the struct type carrying
	// the properties.
	class *Class
	// elem is the element of lists, the value of maps, the target of
	// pointers.
	elem *Type
	// params holds the component types of pairs and tuples.
	params []*Type

	enumerators []Enumerator
	props       []*Property
}

func (t *Type) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

func (t *Type) String() string {
	return t.Name()
}

// ID is the index of t in the registry that created it.
func (t *Type) ID() int {
	return t.id
}

func (t *Type) RT() reflect.Type {
	return t.rt
}

func (t *Type) Flags() Flags {
	return t.flags
}

// Is reports whether t carries every flag in f.
func (t *Type) Is(f Flags) bool {
	return t != nil && t.flags&f == f
}

func (t *Type) Ownership() Ownership {
	return t.own
}

func (t *Type) IsUnknown() bool {
	return t == nil || t.flags&FlagUnknown != 0
}

// Class returns the class of an object type, or nil.
func (t *Type) Class() *Class {
	return t.class
}

func (t *Type) Enumerators() []Enumerator {
	return t.enumerators
}

// Nullable reports whether the zero value of t represents null.
func (t *Type) Nullable() bool {
	if t.IsUnknown() {
		return true
	}
	if t.flags&(FlagObject|FlagPointer|FlagInterface) != 0 {
		return true
	}
	return false
}

// Class describes a struct type embedding Object.
type Class struct {
	name     string
	rt       reflect.Type
	abstract bool
	ctor     func() Objecter
	// ptr is the *C type, which is also what the class name resolves to.
	ptr   *Type
	props []*Property
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) Abstract() bool {
	return c.abstract
}

// Pointer returns the exclusive pointer type of the class.
func (c *Class) Pointer() *Type {
	return c.ptr
}

// Elem returns the element type of lists and pointers and the value type
// of maps.
func (t *Type) Elem() *Type {
	return t.elem
}

// Params returns the component types of pairs, tuples and maps.
func (t *Type) Params() []*Type {
	return t.params
}
