package meta

import "slices"

// Objecter is implemented by pointers to structs embedding Object.
type Objecter interface {
	metaObject() *Object
}

// Object is embedded in structs to make them referenced objects. An
// object carries an identity name, an owner, the objects it owns and a
// set of dynamic properties.
type Object struct {
	name     string
	parent   Objecter
	children []Objecter

	dynNames []string
	dyn      map[string]any

	poly bool
}

func (o *Object) metaObject() *Object {
	return o
}

func (o *Object) ObjectName() string {
	return o.name
}

func (o *Object) SetObjectName(name string) {
	o.name = name
}

func (o *Object) Parent() Objecter {
	return o.parent
}

func (o *Object) Children() []Objecter {
	return slices.Clone(o.children)
}

// Property returns the dynamic property name.
func (o *Object) Property(name string) (any, bool) {
	v, ok := o.dyn[name]
	return v, ok
}

// SetProperty sets a dynamic property. Setting nil removes it.
func (o *Object) SetProperty(name string, v any) {
	if v == nil {
		if _, ok := o.dyn[name]; ok {
			delete(o.dyn, name)
			o.dynNames = slices.DeleteFunc(o.dynNames, func(n string) bool { return n == name })
		}
		return
	}
	if o.dyn == nil {
		o.dyn = map[string]any{}
	}
	if _, ok := o.dyn[name]; !ok {
		o.dynNames = append(o.dynNames, name)
	}
	o.dyn[name] = v
}

// DynamicPropertyNames returns the names of dynamic properties in the order
// they were first set.
func (o *Object) DynamicPropertyNames() []string {
	return slices.Clone(o.dynNames)
}

// SetSerializePolymorphic requests that this instance is always serialized
// with its dynamic type when polymorphism is enabled.
func (o *Object) SetSerializePolymorphic(v bool) {
	o.poly = v
}

func (o *Object) SerializePolymorphic() bool {
	return o.poly
}

// SetParent makes parent the owner of child, detaching it from its previous
// owner. A nil parent detaches child.
func SetParent(child, parent Objecter) {
	co := child.metaObject()
	if co.parent != nil {
		po := co.parent.metaObject()
		po.children = slices.DeleteFunc(po.children, func(c Objecter) bool { return c == child })
	}
	co.parent = parent
	if parent != nil {
		po := parent.metaObject()
		po.children = append(po.children, child)
	}
}

// ObjectOf returns the embedded Object of o.
func ObjectOf(o Objecter) *Object {
	return o.metaObject()
}
