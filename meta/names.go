package meta

import (
	"reflect"
	"strings"
)

// ParseTypeName splits a container type name such as "Map<string, List<int>>"
// into its outer name and top level parameter names. ok is false when name
// carries no parameter list.
func ParseTypeName(name string) (outer string, params []string, ok bool) {
	name = strings.TrimSpace(name)
	open := strings.IndexByte(name, '<')
	if open <= 0 || !strings.HasSuffix(name, ">") {
		return name, nil, false
	}
	outer = strings.TrimSpace(name[:open])
	inner := name[open+1 : len(name)-1]
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '[':
			depth++
		case '>', ']':
			depth--
			if depth < 0 {
				return name, nil, false
			}
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return name, nil, false
	}
	params = append(params, strings.TrimSpace(inner[start:]))
	for _, p := range params {
		if p == "" {
			return name, nil, false
		}
	}
	return outer, params, true
}

func containerName(outer string, params ...*Type) string {
	var b strings.Builder
	b.WriteString(outer)
	b.WriteByte('<')
	for i, p := range params {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.name)
	}
	b.WriteByte('>')
	return b.String()
}

func goName(rt reflect.Type) string {
	if rt.Name() != "" {
		return rt.Name()
	}
	return rt.String()
}

// synthesize derives a type from a container name whose parameters are
// known. Lock must be held.
func (r *Registry) synthesize(name string) (*Type, bool) {
	if elemName, ok := strings.CutPrefix(name, "*"); ok {
		elem, ok := r.lookupName(elemName)
		if !ok || elem.rt == nil {
			return nil, false
		}
		if elem.Is(FlagObject) && elem.own == OwnPointer {
			return elem, true
		}
		return r.typeFor(reflect.PointerTo(elem.rt)), true
	}
	outer, params, ok := ParseTypeName(name)
	if !ok {
		return nil, false
	}
	ps := make([]*Type, len(params))
	for i, p := range params {
		t, ok := r.lookupName(p)
		if !ok || t.rt == nil {
			return nil, false
		}
		ps[i] = t
	}
	switch {
	case outer == "List" && len(ps) == 1:
		return r.typeFor(reflect.SliceOf(ps[0].rt)), true
	case outer == "Map" && len(ps) == 2:
		if ps[0].rt.Kind() != reflect.String {
			return nil, false
		}
		return r.typeFor(reflect.MapOf(ps[0].rt, ps[1].rt)), true
	}
	return nil, false
}

func (r *Registry) lookupName(name string) (*Type, bool) {
	name = strings.TrimSpace(name)
	if t, ok := r.byName[name]; ok {
		return t, true
	}
	return r.synthesize(name)
}
