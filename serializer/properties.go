package serializer

import (
	"fmt"
	"strings"

	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
)

// serializeProps appends the stored properties of t read from inst to kvs.
func serializeProps(h Helper, t *meta.Type, inst meta.Value, kvs []ir.KeyVal) ([]ir.KeyVal, error) {
	r := h.Reflector()
	keepName := h.Config().KeepObjectName
	for _, p := range r.PropertiesOf(t) {
		if !p.Stored || (p.Identity && !keepName) {
			continue
		}
		pv, err := r.Read(inst, p)
		if err != nil {
			return nil, withProperty(ErrSerialization, err, p.Name, p.Type)
		}
		pn, err := h.SerializeSubtype(p.Type, pv)
		if err != nil {
			return nil, withProperty(ErrSerialization, err, p.Name, p.Type)
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(p.Name), Val: pn})
	}
	return kvs, nil
}

// propWalk deserializes the keys of a JSON object into the properties of
// an instance.
type propWalk struct {
	h     Helper
	t     *meta.Type
	inst  meta.Value
	owner meta.Objecter

	// skip reports keys consumed by the caller.
	skip func(key string) bool
	// extra handles keys with no matching property when extra properties
	// are allowed. Nil ignores them.
	extra func(key string, vn *ir.Node) error
}

func (w *propWalk) run(node *ir.Node) error {
	r := w.h.Reflector()
	cfg := w.h.Config()
	props := r.PropertiesOf(w.t)

	required := map[string]bool{}
	if cfg.Validation&AllProperties != 0 {
		for _, p := range props {
			if p.Stored && p.Writable && (!p.Identity || cfg.KeepObjectName) {
				required[p.Name] = true
			}
		}
	}

	for i, kn := range node.Fields {
		key := kn.String
		vn := node.Values[i]
		if w.skip != nil && w.skip(key) {
			continue
		}
		p := r.Property(w.t, key)
		if p == nil || !p.Stored {
			if cfg.Validation&NoExtraProperties != 0 {
				e := newError(ErrExtraProperty, "found extra property %q in JSON for type %s", key, w.t.Name())
				e.Location = vn.Path()
				return e
			}
			if w.extra == nil {
				continue
			}
			if err := w.extra(key, vn); err != nil {
				return withProperty(ErrDeserialization, err, key, r.Unknown())
			}
			continue
		}
		pv, err := w.h.DeserializeSubtype(p.Type, vn, w.owner)
		if err != nil {
			return withProperty(ErrDeserialization, err, p.Name, p.Type)
		}
		if p.Writable {
			if err := r.Write(w.inst, p, pv); err != nil {
				e := wrapError(ErrDeserialization, err, "cannot write property %s of %s", p.Name, w.t.Name())
				e.Location = vn.Path()
				return withProperty(ErrDeserialization, e, p.Name, p.Type)
			}
		}
		delete(required, p.Name)
	}

	if len(required) == 0 {
		return nil
	}
	var missing []string
	for _, p := range props {
		if required[p.Name] {
			missing = append(missing, p.Name)
		}
	}
	e := newError(ErrMissingProperties, "JSON for %s is missing required properties: %s", w.t.Name(), quoted(missing))
	e.Missing = missing
	e.Location = node.Path()
	return e
}

func quoted(names []string) string {
	qs := make([]string, len(names))
	for i, n := range names {
		qs[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(qs, ", ")
}
