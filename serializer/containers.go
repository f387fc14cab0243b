package serializer

import (
	"regexp"
	"strings"

	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
)

var allKinds = ir.Types()

// PointerConverter converts pointers to non-object types. A nil pointer is
// JSON null.
type PointerConverter struct{}

func (PointerConverter) Priority() int { return PriorityStandard }

func (PointerConverter) Kinds() []ir.Type { return allKinds }

func (PointerConverter) CanConvert(t *meta.Type) bool {
	return t.Is(meta.FlagPointer) && t.Elem() != nil
}

func (PointerConverter) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	rv := elem(v.RV())
	if !rv.IsValid() || rv.IsNil() {
		return ir.Null(), nil
	}
	return h.SerializeSubtype(t.Elem(), meta.MakeValue(t.Elem(), rv.Elem()))
}

// Deserialize returns the pointed-to value; the caller's conversion to t
// allocates the pointer.
func (PointerConverter) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	if node.Type == ir.NullType {
		return h.Reflector().Zero(t), nil
	}
	return h.DeserializeSubtype(t.Elem(), node, owner)
}

var listPattern = regexp.MustCompile(`^List<\s*(.*)\s*>$`)

const (
	stringListName = "StringList"
	bytesListName  = "BytesList"
)

// ListConverter converts List<T> types and the StringList and BytesList
// specializations to JSON arrays.
type ListConverter struct{}

func (ListConverter) Priority() int { return PriorityStandard }

func (ListConverter) Kinds() []ir.Type {
	return []ir.Type{ir.ArrayType}
}

func (ListConverter) CanConvert(t *meta.Type) bool {
	if !t.Is(meta.FlagList) {
		return false
	}
	switch t.Name() {
	case stringListName, bytesListName:
		return true
	}
	return listPattern.MatchString(t.Name()) || t.Elem() != nil
}

// elementType extracts the element type from the list name. Lists with a
// declared Go name use their recorded element type.
func (ListConverter) elementType(t *meta.Type, r meta.Reflector) *meta.Type {
	var name string
	switch t.Name() {
	case stringListName:
		name = "string"
	case bytesListName:
		name = "Bytes"
	default:
		m := listPattern.FindStringSubmatch(t.Name())
		if m == nil {
			return elemOrUnknown(t.Elem(), r)
		}
		name = strings.TrimSpace(m[1])
	}
	et, ok := r.TypeByName(name)
	if !ok {
		return r.Unknown()
	}
	return et
}

func (c ListConverter) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	r := h.Reflector()
	elems, err := r.Elements(v)
	if err != nil {
		return nil, wrapError(ErrSerialization, err, "cannot iterate %s", t.Name())
	}
	et := c.elementType(t, r)
	res := make([]*ir.Node, len(elems))
	for i, e := range elems {
		en, err := h.SerializeSubtype(et, e)
		if err != nil {
			return nil, err
		}
		res[i] = en
	}
	return ir.FromSlice(res), nil
}

func (c ListConverter) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	r := h.Reflector()
	et := c.elementType(t, r)
	elems := make([]meta.Value, len(node.Values))
	for i, vn := range node.Values {
		ev, err := h.DeserializeSubtype(et, vn, owner)
		if err != nil {
			return meta.Value{}, err
		}
		elems[i] = ev
	}
	res, err := r.MakeList(t, elems)
	if err != nil {
		return meta.Value{}, wrapError(ErrDeserialization, err, "cannot build %s", t.Name())
	}
	return res, nil
}

// MapConverter converts Map<K, V> types with string kinded keys to JSON
// objects. Keys are written in sorted order.
type MapConverter struct{}

func (MapConverter) Priority() int { return PriorityStandard }

func (MapConverter) Kinds() []ir.Type {
	return []ir.Type{ir.ObjectType}
}

func (MapConverter) CanConvert(t *meta.Type) bool {
	if !t.Is(meta.FlagMap) {
		return false
	}
	outer, params, ok := meta.ParseTypeName(t.Name())
	return (ok && outer == "Map" && len(params) == 2) || len(t.Params()) == 2
}

func (MapConverter) valueType(t *meta.Type, r meta.Reflector) *meta.Type {
	outer, params, ok := meta.ParseTypeName(t.Name())
	if !ok || outer != "Map" || len(params) != 2 {
		return elemOrUnknown(t.Elem(), r)
	}
	vt, ok := r.TypeByName(params[1])
	if !ok {
		return r.Unknown()
	}
	return vt
}

func (c MapConverter) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	r := h.Reflector()
	entries, err := r.Entries(v)
	if err != nil {
		return nil, wrapError(ErrSerialization, err, "cannot iterate %s", t.Name())
	}
	vt := c.valueType(t, r)
	kvs := make([]ir.KeyVal, len(entries))
	for i, e := range entries {
		vn, err := h.SerializeSubtype(vt, e.Value)
		if err != nil {
			return nil, err
		}
		kvs[i] = ir.KeyVal{Key: ir.FromString(e.Key), Val: vn}
	}
	return ir.FromKeyVals(kvs), nil
}

func (c MapConverter) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	r := h.Reflector()
	vt := c.valueType(t, r)
	entries := make([]meta.Entry, len(node.Fields))
	for i, kn := range node.Fields {
		ev, err := h.DeserializeSubtype(vt, node.Values[i], owner)
		if err != nil {
			return meta.Value{}, err
		}
		entries[i] = meta.Entry{Key: kn.String, Value: ev}
	}
	res, err := r.MakeMap(t, entries)
	if err != nil {
		return meta.Value{}, wrapError(ErrDeserialization, err, "cannot build %s", t.Name())
	}
	return res, nil
}

func elemOrUnknown(t *meta.Type, r meta.Reflector) *meta.Type {
	if t == nil {
		return r.Unknown()
	}
	return t
}

// TupleConverter converts pairs and registered tuples to JSON arrays of
// fixed length.
type TupleConverter struct{}

func (TupleConverter) Priority() int { return PriorityStandard }

func (TupleConverter) Kinds() []ir.Type {
	return []ir.Type{ir.ArrayType}
}

func (TupleConverter) CanConvert(t *meta.Type) bool {
	return t.Is(meta.FlagPair) || t.Is(meta.FlagTuple)
}

func (TupleConverter) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	comps, err := h.Reflector().Components(v)
	if err != nil {
		return nil, wrapError(ErrSerialization, err, "cannot decompose %s", t.Name())
	}
	params := t.Params()
	if len(comps) != len(params) {
		return nil, newError(ErrSerialization, "%s has %d components, value has %d", t.Name(), len(params), len(comps))
	}
	res := make([]*ir.Node, len(comps))
	for i, cv := range comps {
		cn, err := h.SerializeSubtype(params[i], cv)
		if err != nil {
			return nil, err
		}
		res[i] = cn
	}
	return ir.FromSlice(res), nil
}

func (TupleConverter) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	params := t.Params()
	if len(node.Values) != len(params) {
		return meta.Value{}, newError(ErrDeserialization, "expected array of %d elements for %s, got %d", len(params), t.Name(), len(node.Values))
	}
	comps := make([]meta.Value, len(params))
	for i, vn := range node.Values {
		cv, err := h.DeserializeSubtype(params[i], vn, owner)
		if err != nil {
			return meta.Value{}, err
		}
		comps[i] = cv
	}
	res, err := h.Reflector().MakeTuple(t, comps)
	if err != nil {
		return meta.Value{}, wrapError(ErrDeserialization, err, "cannot build %s", t.Name())
	}
	return res, nil
}
