package serializer

import (
	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
)

// ClassKey is the key holding the class name of a polymorphic object.
const ClassKey = "@class"

// ObjectConverter converts referenced objects in each reference mode:
// exclusive pointers, Shared, Tracking and object interfaces.
type ObjectConverter struct{}

func (ObjectConverter) Priority() int { return PriorityStandard }

func (ObjectConverter) Kinds() []ir.Type {
	return []ir.Type{ir.ObjectType, ir.NullType}
}

func (ObjectConverter) CanConvert(t *meta.Type) bool {
	return t.Is(meta.FlagObject)
}

// staticType returns the class pointer type a reference of type t
// declares, or nil for interfaces without a base class.
func staticType(t *meta.Type) *meta.Type {
	if c := t.Class(); c != nil {
		return c.Pointer()
	}
	return nil
}

func (ObjectConverter) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	r := h.Reflector()
	obj, ok := r.Unwrap(v)
	if !ok {
		return ir.Null(), nil
	}
	o := meta.ObjectOf(obj.Interface().(meta.Objecter))
	dyn := obj.Type()
	target := staticType(t)

	emit := false
	switch h.Config().Polymorphing {
	case Enabled:
		emit = dyn != target
		if emit || o.SerializePolymorphic() {
			target = dyn
		}
	case Forced:
		target, emit = dyn, true
	}
	if target == nil {
		target = dyn
	}

	var kvs []ir.KeyVal
	if emit {
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(ClassKey), Val: ir.FromString(target.Class().Name())})
	}
	kvs, err := serializeProps(h, target, obj, kvs)
	if err != nil {
		return nil, err
	}
	for _, name := range o.DynamicPropertyNames() {
		if r.Property(target, name) != nil || (emit && name == ClassKey) {
			continue
		}
		dv, _ := o.Property(name)
		dn, err := h.SerializeSubtype(r.Unknown(), meta.ValueOf(r.Unknown(), dv))
		if err != nil {
			return nil, withProperty(ErrSerialization, err, name, r.Unknown())
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(name), Val: dn})
	}
	return ir.FromKeyVals(kvs), nil
}

func (c ObjectConverter) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	r := h.Reflector()
	cfg := h.Config()
	if node.Type == ir.NullType {
		return r.Zero(t), nil
	}
	target, err := c.resolve(t, node, h)
	if err != nil {
		return meta.Value{}, err
	}
	inst, err := r.Construct(target, owner)
	if err != nil {
		return meta.Value{}, wrapError(ErrConstruction, err, "failed to construct object of type %s", target.Name())
	}
	self := inst.Interface().(meta.Objecter)
	w := &propWalk{
		h:     h,
		t:     target,
		inst:  inst,
		owner: self,
		skip: func(key string) bool {
			return key == ClassKey && cfg.Polymorphing != Disabled
		},
		extra: func(key string, vn *ir.Node) error {
			dv, err := h.DeserializeSubtype(r.Unknown(), vn, self)
			if err != nil {
				return err
			}
			return r.SetDynamicProperty(inst, key, dv)
		},
	}
	if err := w.run(node); err != nil {
		return meta.Value{}, err
	}
	res, err := r.Wrap(t, inst)
	if err != nil {
		return meta.Value{}, wrapError(ErrDeserialization, err, "cannot hold %s in %s", target.Name(), t.Name())
	}
	return res, nil
}

// resolve picks the class to instantiate for a JSON object declared as t.
func (ObjectConverter) resolve(t *meta.Type, node *ir.Node, h Helper) (*meta.Type, error) {
	r := h.Reflector()
	mode := h.Config().Polymorphing
	target := staticType(t)
	var cn *ir.Node
	if mode != Disabled {
		cn = ir.Get(node, ClassKey)
	}
	switch {
	case cn != nil:
		if cn.Type != ir.StringType {
			e := newError(ErrPolymorphism, "%s must be a string, got %s", ClassKey, cn.Type)
			e.Location = cn.Path()
			return nil, e
		}
		dt, ok := r.TypeByName(cn.String)
		if !ok || dt.Class() == nil {
			e := newError(ErrPolymorphism, "unknown class %q", cn.String)
			e.Location = cn.Path()
			return nil, e
		}
		dt = dt.Class().Pointer()
		if !r.IsSubtype(dt, t) {
			e := newError(ErrPolymorphism, "class %s is not a subtype of %s", dt.Class().Name(), t.Name())
			e.Location = cn.Path()
			return nil, e
		}
		return dt, nil
	case mode == Forced:
		return nil, newError(ErrPolymorphism, "JSON for %s has no %s", t.Name(), ClassKey)
	case target == nil:
		return nil, newError(ErrConstruction, "cannot construct %s without a %s", t.Name(), ClassKey)
	}
	return target, nil
}

// GadgetConverter converts value aggregates: structs that are not objects.
type GadgetConverter struct{}

func (GadgetConverter) Priority() int { return PriorityStandard }

func (GadgetConverter) Kinds() []ir.Type {
	return []ir.Type{ir.ObjectType}
}

func (GadgetConverter) CanConvert(t *meta.Type) bool {
	return t.Is(meta.FlagGadget)
}

func (GadgetConverter) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	kvs, err := serializeProps(h, t, v, nil)
	if err != nil {
		return nil, err
	}
	return ir.FromKeyVals(kvs), nil
}

func (GadgetConverter) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	inst := h.Reflector().New(t)
	w := &propWalk{h: h, t: t, inst: inst, owner: owner}
	if err := w.run(node); err != nil {
		return meta.Value{}, err
	}
	return inst, nil
}
