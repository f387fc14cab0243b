package serializer

import (
	"math"
	"reflect"
	"strconv"

	"github.com/signadot/objson/debug"
	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
)

type activeKey struct {
	p  uintptr
	rt reflect.Type
}

// call carries the state of one top level Serialize or Deserialize and is
// the Helper passed to converters.
type call struct {
	s   *Serializer
	reg *meta.Registry
	cfg Config

	// active holds the references on the path being serialized.
	active map[activeKey]string
}

func (s *Serializer) newCall() *call {
	return &call{
		s:      s,
		reg:    s.reg,
		cfg:    s.Config(),
		active: map[activeKey]string{},
	}
}

func (c *call) Config() Config {
	return c.cfg
}

func (c *call) Reflector() meta.Reflector {
	return c.reg
}

func (c *call) SerializeSubtype(t *meta.Type, v meta.Value) (*ir.Node, error) {
	if t == nil {
		t = c.reg.Unknown()
	}
	if t.IsUnknown() {
		// untyped slots are converted by what they hold
		if dt := c.reg.DynamicType(v); !dt.IsUnknown() {
			t = dt
			v = meta.MakeValue(dt, elem(v.RV()))
		}
	}
	if key, ok := c.reference(v); ok {
		if prev, seen := c.active[key]; seen {
			return nil, newError(ErrSerialization, "circular reference detected: %s -> %s", prev, t.Name())
		}
		c.active[key] = t.Name()
		defer delete(c.active, key)
	}
	conv := c.s.convs.serializer(t)
	if conv == nil {
		return c.serializeValue(t, v)
	}
	node, err := conv.Serialize(t, v, c)
	if err != nil {
		return nil, asError(ErrSerialization, err)
	}
	return node, nil
}

// reference returns the identity of the object or struct pointer held by v.
func (c *call) reference(v meta.Value) (activeKey, bool) {
	if obj, ok := c.reg.Unwrap(v); ok {
		return activeKey{p: obj.RV().Pointer(), rt: obj.RV().Type()}, true
	}
	rv := elem(v.RV())
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Type().Elem().Kind() != reflect.Struct {
		return activeKey{}, false
	}
	return activeKey{p: rv.Pointer(), rt: rv.Type()}, true
}

func elem(rv reflect.Value) reflect.Value {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// serializeValue maps scalars directly to JSON when no converter applies.
func (c *call) serializeValue(t *meta.Type, v meta.Value) (*ir.Node, error) {
	c.s.stats.fallbacks.Inc(1)
	if debug.Fallback() {
		c.s.log.Debug("serialize fallback", "type", t.Name())
	}
	rv := elem(v.RV())
	if !rv.IsValid() {
		return ir.Null(), nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		return ir.FromBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, newError(ErrSerialization, "%v of type %s is not representable in JSON", f, t.Name())
		}
		return ir.FromFloat(f), nil
	case reflect.String:
		return ir.FromString(rv.String()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return ir.Null(), nil
		}
	}
	return nil, newError(ErrSerialization, "cannot convert value of type %s to JSON", t.Name())
}

func (c *call) DeserializeSubtype(t *meta.Type, node *ir.Node, owner meta.Objecter) (meta.Value, error) {
	if t == nil {
		t = c.reg.Unknown()
	}
	if node == nil {
		node = ir.Null()
	}
	var (
		v   meta.Value
		err error
	)
	if conv := c.s.convs.deserializer(node.Type, t); conv != nil {
		v, err = conv.Deserialize(t, node, owner, c)
	} else {
		v, err = c.deserializeValue(t, node, owner)
	}
	if err != nil {
		return meta.Value{}, c.locate(asError(ErrDeserialization, err), node)
	}
	cv, err := c.reg.Convert(v, t)
	if err == nil {
		return cv, nil
	}
	if c.cfg.AllowDefaultNull && node.Type == ir.NullType {
		return c.reg.Zero(t), nil
	}
	from := "null"
	if v.IsValid() {
		from = v.Type().Name()
	}
	e := wrapError(ErrDeserialization, err, "failed to convert deserialized value of type %s to type %s", from, t.Name())
	return meta.Value{}, c.locate(e, node)
}

func (c *call) locate(e *Error, node *ir.Node) *Error {
	if e.Location == "" {
		e.Location = node.Path()
	}
	return e
}

// deserializeValue maps JSON directly to untyped Go values when no
// converter applies: bool, int64, uint64, float64, string, []any and
// map[string]any.
func (c *call) deserializeValue(t *meta.Type, node *ir.Node, owner meta.Objecter) (meta.Value, error) {
	c.s.stats.fallbacks.Inc(1)
	if debug.Fallback() {
		c.s.log.Debug("deserialize fallback", "type", t.Name(), "kind", node.Type)
	}
	switch node.Type {
	case ir.NullType:
		return meta.Value{}, nil
	case ir.BoolType:
		return c.untyped(node.Bool), nil
	case ir.StringType:
		return c.untyped(node.String), nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return c.untyped(*node.Int64), nil
		case node.Float64 != nil:
			return c.untyped(*node.Float64), nil
		}
		if u, err := strconv.ParseUint(node.Number, 10, 64); err == nil {
			return c.untyped(u), nil
		}
		f, err := strconv.ParseFloat(node.Number, 64)
		if err != nil {
			return meta.Value{}, wrapError(ErrDeserialization, err, "number %s out of range", node.Number)
		}
		return c.untyped(f), nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, vn := range node.Values {
			v, err := c.DeserializeSubtype(c.reg.Unknown(), vn, owner)
			if err != nil {
				return meta.Value{}, err
			}
			res[i] = v.Interface()
		}
		return c.untyped(res), nil
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			v, err := c.DeserializeSubtype(c.reg.Unknown(), node.Values[i], owner)
			if err != nil {
				return meta.Value{}, err
			}
			res[f.String] = v.Interface()
		}
		return c.untyped(res), nil
	}
	return meta.Value{}, newError(ErrDeserialization, "unexpected JSON %s", node.Type)
}

func (c *call) untyped(v any) meta.Value {
	return meta.ValueOf(c.reg.TypeOf(v), v)
}
