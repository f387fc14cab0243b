package meta

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

var (
	anyType      = reflect.TypeFor[any]()
	stringType   = reflect.TypeFor[string]()
	objecterType = reflect.TypeFor[Objecter]()
)

// Registry is an arena of Type descriptors indexed by reflect.Type and by
// name. Types are derived on first use; enumerations, interfaces, tuples,
// leaves and class options must be registered before a type is first
// derived.
type Registry struct {
	mu      sync.Mutex
	types   []*Type
	byRT    map[reflect.Type]*Type
	byName  map[string]*Type
	classes map[reflect.Type]*Class
	unknown *Type
}

// NewRegistry returns a registry with the scalar, container and leaf types
// already known.
func NewRegistry() *Registry {
	r := &Registry{
		byRT:    map[reflect.Type]*Type{},
		byName:  map[string]*Type{},
		classes: map[reflect.Type]*Class{},
	}
	r.unknown = r.add(&Type{name: "any", rt: anyType, flags: FlagUnknown})
	r.registerBuiltins()
	return r
}

// add inserts t into the arena. On a name collision t is renamed to the
// fully qualified Go type name.
func (r *Registry) add(t *Type) *Type {
	t.id = len(r.types)
	if other, ok := r.byName[t.name]; ok && other != t {
		if t.rt != nil {
			t.name = t.rt.String()
		}
		if _, ok := r.byName[t.name]; ok {
			t.name += "#" + strconv.Itoa(t.id)
		}
	}
	r.types = append(r.types, t)
	if t.rt != nil {
		r.byRT[t.rt] = t
	}
	r.byName[t.name] = t
	return t
}

func (r *Registry) alias(name string, t *Type) {
	if _, ok := r.byName[name]; ok {
		return
	}
	r.byName[name] = t
}

// Unknown is the placeholder type used when a type cannot be resolved.
// Values of unknown type are converted by their dynamic JSON kind.
func (r *Registry) Unknown() *Type {
	return r.unknown
}

// Types returns every type known to the registry in creation order.
func (r *Registry) Types() []*Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*Type, len(r.types))
	copy(res, r.types)
	return res
}

func (r *Registry) TypeFor(rt reflect.Type) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.typeFor(rt)
}

func TypeFor[T any](r *Registry) *Type {
	return r.TypeFor(reflect.TypeFor[T]())
}

// TypeOf returns the type of the dynamic value of v.
func (r *Registry) TypeOf(v any) *Type {
	if v == nil {
		return r.unknown
	}
	return r.TypeFor(reflect.TypeOf(v))
}

// TypeByName resolves a registered name, a class name, or a container name
// whose parameters resolve.
func (r *Registry) TypeByName(name string) (*Type, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupName(name)
}

func (r *Registry) typeFor(rt reflect.Type) *Type {
	if rt == nil {
		return r.unknown
	}
	if t, ok := r.byRT[rt]; ok {
		return t
	}
	return r.derive(rt)
}

func (r *Registry) derive(rt reflect.Type) *Type {
	switch rt.Kind() {
	case reflect.Interface:
		if rt.Implements(objecterType) {
			return r.add(&Type{name: goName(rt), rt: rt, flags: FlagObject | FlagInterface, own: OwnPointer})
		}
		return r.add(&Type{name: goName(rt), rt: rt, flags: FlagUnknown})

	case reflect.Pointer:
		el := rt.Elem()
		if el.Kind() == reflect.Struct && rt.Implements(objecterType) {
			return r.classFor(el).ptr
		}
		elem := r.typeFor(el)
		if t, ok := r.byRT[rt]; ok {
			return t
		}
		return r.add(&Type{name: "*" + elem.name, rt: rt, flags: FlagPointer, elem: elem})

	case reflect.Struct:
		return r.deriveStruct(rt)

	case reflect.Slice:
		elem := r.typeFor(rt.Elem())
		if t, ok := r.byRT[rt]; ok {
			return t
		}
		return r.add(&Type{name: namedOr(rt, containerName("List", elem)), rt: rt, flags: FlagList, elem: elem})

	case reflect.Map:
		if rt.Key().Kind() != reflect.String {
			return r.add(&Type{name: rt.String(), rt: rt})
		}
		key := r.typeFor(rt.Key())
		val := r.typeFor(rt.Elem())
		if t, ok := r.byRT[rt]; ok {
			return t
		}
		return r.add(&Type{name: namedOr(rt, containerName("Map", key, val)), rt: rt, flags: FlagMap, elem: val, params: []*Type{key, val}})

	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return r.add(&Type{name: goName(rt), rt: rt, flags: FlagScalar})

	default:
		// arrays, channels, funcs and complex numbers have no
		// representation
		return r.add(&Type{name: rt.String(), rt: rt})
	}
}

// namedOr names declared container types by their Go name. The synthesized
// name belongs to the unnamed type.
func namedOr(rt reflect.Type, name string) string {
	if rt.Name() != "" {
		return goName(rt)
	}
	return name
}

func (r *Registry) deriveStruct(rt reflect.Type) *Type {
	switch {
	case rt.Implements(handleType):
		h := reflect.Zero(rt).Interface().(handle)
		ct := h.classType()
		if ct.Kind() != reflect.Struct || !reflect.PointerTo(ct).Implements(objecterType) {
			return r.add(&Type{name: rt.String(), rt: rt})
		}
		c := r.classFor(ct)
		if t, ok := r.byRT[rt]; ok {
			return t
		}
		outer := "Shared"
		if h.ownership() == OwnTracking {
			outer = "Tracking"
		}
		return r.add(&Type{name: outer + "<" + c.name + ">", rt: rt, flags: FlagObject, own: h.ownership(), class: c})

	case rt.Implements(pairType):
		a := r.typeFor(rt.Field(0).Type)
		b := r.typeFor(rt.Field(1).Type)
		if t, ok := r.byRT[rt]; ok {
			return t
		}
		return r.add(&Type{name: containerName("Pair", a, b), rt: rt, flags: FlagPair, params: []*Type{a, b}})

	case reflect.PointerTo(rt).Implements(objecterType):
		// class values have no identity to convert; only pointers and
		// handles do.
		r.classFor(rt)
		if t, ok := r.byRT[rt]; ok {
			return t
		}
		return r.add(&Type{name: rt.String(), rt: rt})
	}
	t := r.add(&Type{name: goName(rt), rt: rt, flags: FlagGadget})
	t.props = r.structProps(rt, false)
	return t
}

func (r *Registry) classFor(st reflect.Type) *Class {
	if c, ok := r.classes[st]; ok {
		return c
	}
	c := &Class{name: goName(st), rt: st}
	if _, ok := r.byName[c.name]; ok {
		c.name = st.String()
	}
	r.classes[st] = c
	c.ptr = r.add(&Type{name: "*" + c.name, rt: reflect.PointerTo(st), flags: FlagObject, own: OwnPointer, class: c})
	r.alias(c.name, c.ptr)
	c.props = r.structProps(st, true)
	c.ptr.props = c.props
	return c
}

func (r *Registry) registerBuiltins() {
	for _, rt := range []reflect.Type{
		reflect.TypeFor[bool](),
		reflect.TypeFor[int](),
		reflect.TypeFor[int8](),
		reflect.TypeFor[int16](),
		reflect.TypeFor[int32](),
		reflect.TypeFor[int64](),
		reflect.TypeFor[uint](),
		reflect.TypeFor[uint8](),
		reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](),
		reflect.TypeFor[uint64](),
		reflect.TypeFor[float32](),
		reflect.TypeFor[float64](),
		reflect.TypeFor[string](),
	} {
		r.typeFor(rt)
	}
	for _, l := range leafTypes {
		r.add(&Type{name: l.name, rt: l.rt, flags: FlagLeaf})
	}
	str := r.byRT[stringType]
	r.add(&Type{name: "StringList", rt: reflect.TypeFor[[]string](), flags: FlagList, elem: str})
	r.add(&Type{name: "BytesList", rt: reflect.TypeFor[[][]byte](), flags: FlagList, elem: r.byName["Bytes"]})
	r.add(&Type{name: "List<any>", rt: reflect.TypeFor[[]any](), flags: FlagList, elem: r.unknown})
	r.add(&Type{name: "Map<string, any>", rt: reflect.TypeFor[map[string]any](), flags: FlagMap, elem: r.unknown, params: []*Type{str, r.unknown}})
}

func (r *Registry) checkUnseen(rt reflect.Type) error {
	if t, ok := r.byRT[rt]; ok {
		return fmt.Errorf("%w: %s already known as %s", ErrRegistration, rt, t.name)
	}
	return nil
}
