package serializer

import (
	"cmp"
	"math/bits"
	"reflect"
	"slices"
	"strings"

	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
)

// EnumConverter converts enumerations and flag types, as integers or, with
// EnumAsString, by name.
type EnumConverter struct{}

func (EnumConverter) Priority() int { return PriorityStandard }

func (EnumConverter) Kinds() []ir.Type {
	return []ir.Type{ir.NumberType, ir.StringType}
}

func (EnumConverter) CanConvert(t *meta.Type) bool {
	return t.Is(meta.FlagEnum)
}

func enumNumber(t *meta.Type, n int64) *ir.Node {
	if rt := t.RT(); rt != nil && rt.Kind() >= reflect.Uint && rt.Kind() <= reflect.Uintptr {
		return ir.FromUint(uint64(n))
	}
	return ir.FromInt(n)
}

func (EnumConverter) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	n, ok := h.Reflector().EnumValue(v)
	if !ok {
		return nil, newError(ErrSerialization, "value of %s is not an integer", t.Name())
	}
	if !h.Config().EnumAsString {
		return enumNumber(t, n), nil
	}
	if !t.Is(meta.FlagFlags) {
		for _, e := range t.Enumerators() {
			if e.Value == n {
				return ir.FromString(e.Name), nil
			}
		}
		return enumNumber(t, n), nil
	}
	names, ok := flagNames(t.Enumerators(), n)
	if !ok {
		return enumNumber(t, n), nil
	}
	return ir.FromString(strings.Join(names, "|")), nil
}

// flagNames returns the names of a smallest set of enumerators whose
// bitwise or is n, in declaration order. Composite enumerators are
// preferred over their parts.
func flagNames(es []meta.Enumerator, n int64) ([]string, bool) {
	if n == 0 {
		for _, e := range es {
			if e.Value == 0 {
				return []string{e.Name}, true
			}
		}
		return nil, false
	}
	cands := make([]int, 0, len(es))
	for i, e := range es {
		if e.Value != 0 && e.Value&n == e.Value {
			cands = append(cands, i)
		}
	}
	slices.SortStableFunc(cands, func(a, b int) int {
		return cmp.Compare(bits.OnesCount64(uint64(es[b].Value)), bits.OnesCount64(uint64(es[a].Value)))
	})
	var chosen []int
	rest := n
	for _, i := range cands {
		if es[i].Value&rest != 0 {
			chosen = append(chosen, i)
			rest &^= es[i].Value
		}
	}
	if rest != 0 {
		return nil, false
	}
	// drop enumerators covered by the others
	for j := len(chosen) - 1; j >= 0; j-- {
		var others int64
		for k, i := range chosen {
			if k != j {
				others |= es[i].Value
			}
		}
		if others == n {
			chosen = slices.Delete(chosen, j, j+1)
		}
	}
	slices.Sort(chosen)
	names := make([]string, len(chosen))
	for k, i := range chosen {
		names[k] = es[i].Name
	}
	return names, true
}

func (EnumConverter) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	r := h.Reflector()
	var n int64
	switch node.Type {
	case ir.NumberType:
		i, ok := node.AsInt64()
		if !ok {
			u, uok := node.AsUint64()
			if !uok {
				return meta.Value{}, newError(ErrInvalidEnum, "%s is not an integer value of %s", node.NumberText(), t.Name())
			}
			i = int64(u)
		}
		n = i
	case ir.StringType:
		var err error
		n, err = enumParse(t, node.String)
		if err != nil {
			return meta.Value{}, err
		}
	}
	v, err := r.MakeEnum(t, n)
	if err != nil {
		return meta.Value{}, wrapError(ErrInvalidEnum, err, "%d is out of range for %s", n, t.Name())
	}
	return v, nil
}

func enumValue(t *meta.Type, name string) (int64, bool) {
	for _, e := range t.Enumerators() {
		if e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}

func enumParse(t *meta.Type, s string) (int64, error) {
	if !t.Is(meta.FlagFlags) {
		n, ok := enumValue(t, s)
		if !ok {
			return 0, newError(ErrInvalidEnum, "%q is not a value of %s", s, t.Name())
		}
		return n, nil
	}
	var n int64
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	for _, tok := range strings.Split(s, "|") {
		tok = strings.TrimSpace(tok)
		v, ok := enumValue(t, tok)
		if !ok {
			return 0, newError(ErrInvalidEnum, "%q is not a flag of %s", tok, t.Name())
		}
		n |= v
	}
	return n, nil
}
