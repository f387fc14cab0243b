package serializer

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"time"

	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
	"github.com/signadot/objson/types"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

type leafConverter[T any] struct {
	name  string
	kinds []ir.Type
	to    func(T) (*ir.Node, error)
	from  func(*ir.Node) (T, error)
}

// NewLeafConverter returns a converter for the leaf type registered under
// name (see meta.Registry.RegisterLeaf). A nil pointer, interface or map
// serializes as null; from is only called with nodes of the given kinds.
func NewLeafConverter[T any](name string, kinds []ir.Type, to func(T) (*ir.Node, error), from func(*ir.Node) (T, error)) Converter {
	return &leafConverter[T]{name: name, kinds: kinds, to: to, from: from}
}

func (c *leafConverter[T]) Priority() int { return PriorityStandard }

func (c *leafConverter[T]) Kinds() []ir.Type { return c.kinds }

func (c *leafConverter[T]) CanConvert(t *meta.Type) bool {
	return t.Is(meta.FlagLeaf) && t.Name() == c.name && t.RT() == reflect.TypeFor[T]()
}

func (c *leafConverter[T]) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	rv := elem(v.RV())
	if !rv.IsValid() {
		return ir.Null(), nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map:
		if rv.IsNil() {
			return ir.Null(), nil
		}
	}
	x, ok := rv.Interface().(T)
	if !ok {
		return nil, newError(ErrSerialization, "%s is not a %s", rv.Type(), c.name)
	}
	node, err := c.to(x)
	if err != nil {
		return nil, wrapError(ErrSerialization, err, "invalid %s", c.name)
	}
	return node, nil
}

func (c *leafConverter[T]) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	x, err := c.from(node)
	if err != nil {
		return meta.Value{}, wrapError(ErrDeserialization, err, "invalid %s", c.name)
	}
	return meta.MakeValue(t, reflect.ValueOf(&x).Elem()), nil
}

var (
	stringKind   = []ir.Type{ir.StringType}
	nullOrString = []ir.Type{ir.StringType, ir.NullType}
)

// LeafConverters returns the converters for the leaf types every registry
// knows.
func LeafConverters() []Converter {
	return []Converter{
		NewLeafConverter("Bytes", stringKind, bytesTo, bytesFrom),
		NewLeafConverter("Time", stringKind, timeTo, timeFrom),
		NewLeafConverter("Duration", []ir.Type{ir.StringType, ir.NumberType}, durationTo, durationFrom),
		NewLeafConverter("UUID", stringKind, stringer[uuid.UUID], parsed(uuid.Parse)),
		NewLeafConverter("URL", nullOrString, stringer[*url.URL], nullable(url.Parse)),
		NewLeafConverter("Locale", stringKind, stringer[language.Tag], parsed(language.Parse)),
		NewLeafConverter("Regexp", nullOrString, stringer[*regexp.Regexp], nullable(regexp.Compile)),
		NewLeafConverter("Version", stringKind, stringer[types.Version], parsed(types.ParseVersion)),
		NewLeafConverter("Point", objectKind, pointTo, pointFrom),
		NewLeafConverter("Size", objectKind, sizeTo, sizeFrom),
		NewLeafConverter("Line", objectKind, lineTo, lineFrom),
		NewLeafConverter("Rect", objectKind, rectTo, rectFrom),
		NewLeafConverter("JSON", allKinds, jsonTo, jsonFrom),
	}
}

func stringer[T fmt.Stringer](v T) (*ir.Node, error) {
	return ir.FromString(v.String()), nil
}

func parsed[T any](f func(string) (T, error)) func(*ir.Node) (T, error) {
	return func(node *ir.Node) (T, error) {
		return f(node.String)
	}
}

// nullable maps JSON null to the zero pointer.
func nullable[T any](f func(string) (*T, error)) func(*ir.Node) (*T, error) {
	return func(node *ir.Node) (*T, error) {
		if node.Type == ir.NullType {
			return nil, nil
		}
		return f(node.String)
	}
}

func bytesTo(b []byte) (*ir.Node, error) {
	return ir.FromString(base64.StdEncoding.EncodeToString(b)), nil
}

func bytesFrom(node *ir.Node) ([]byte, error) {
	return base64.StdEncoding.DecodeString(node.String)
}

// The zero time is the empty string.
func timeTo(t time.Time) (*ir.Node, error) {
	if t.IsZero() {
		return ir.FromString(""), nil
	}
	return ir.FromString(t.Format(time.RFC3339Nano)), nil
}

func timeFrom(node *ir.Node) (time.Time, error) {
	if node.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, node.String)
}

func durationTo(d time.Duration) (*ir.Node, error) {
	return ir.FromString(d.String()), nil
}

// Numbers are nanoseconds.
func durationFrom(node *ir.Node) (time.Duration, error) {
	if node.Type == ir.NumberType {
		n, ok := node.AsInt64()
		if !ok {
			return 0, fmt.Errorf("%s is not a whole number of nanoseconds", node.NumberText())
		}
		return time.Duration(n), nil
	}
	return time.ParseDuration(node.String)
}

func jsonTo(n *ir.Node) (*ir.Node, error) {
	res := n.Clone()
	res.Parent = nil
	return res, nil
}

func jsonFrom(node *ir.Node) (*ir.Node, error) {
	if node.Type == ir.NullType {
		return nil, nil
	}
	return jsonTo(node)
}

var objectKind = []ir.Type{ir.ObjectType}

func numberNode(f float64) (*ir.Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%v is not representable in JSON", f)
	}
	return ir.FromFloat(f), nil
}

// geometry builds an object with exactly the given keys.
func geometry(keys []string, vals ...float64) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, len(keys))
	for i, k := range keys {
		n, err := numberNode(vals[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		kvs[i] = ir.KeyVal{Key: ir.FromString(k), Val: n}
	}
	return ir.FromKeyVals(kvs), nil
}

// strictKeys checks that node is an object with exactly keys.
func strictKeys(node *ir.Node, keys ...string) error {
	if node.Type != ir.ObjectType {
		return fmt.Errorf("expected object, got %s", node.Type)
	}
	have := node.Keys()
	if len(have) != len(keys) {
		return fmt.Errorf("expected keys %v, got %v", keys, have)
	}
	for _, k := range keys {
		if !slices.Contains(have, k) {
			return fmt.Errorf("expected keys %v, got %v", keys, have)
		}
	}
	return nil
}

func numbers(node *ir.Node, keys ...string) ([]float64, error) {
	if err := strictKeys(node, keys...); err != nil {
		return nil, err
	}
	res := make([]float64, len(keys))
	for i, k := range keys {
		f, ok := ir.Get(node, k).AsFloat64()
		if !ok {
			return nil, fmt.Errorf("%s is not a number", k)
		}
		res[i] = f
	}
	return res, nil
}

var (
	pointKeys = []string{"x", "y"}
	sizeKeys  = []string{"width", "height"}
	rectKeys  = []string{"x", "y", "width", "height"}
)

func pointTo(p types.Point) (*ir.Node, error) {
	return geometry(pointKeys, p.X, p.Y)
}

func pointFrom(node *ir.Node) (types.Point, error) {
	fs, err := numbers(node, pointKeys...)
	if err != nil {
		return types.Point{}, err
	}
	return types.Point{X: fs[0], Y: fs[1]}, nil
}

func sizeTo(s types.Size) (*ir.Node, error) {
	return geometry(sizeKeys, s.Width, s.Height)
}

func sizeFrom(node *ir.Node) (types.Size, error) {
	fs, err := numbers(node, sizeKeys...)
	if err != nil {
		return types.Size{}, err
	}
	return types.Size{Width: fs[0], Height: fs[1]}, nil
}

func rectTo(r types.Rect) (*ir.Node, error) {
	return geometry(rectKeys, r.X, r.Y, r.Width, r.Height)
}

func rectFrom(node *ir.Node) (types.Rect, error) {
	fs, err := numbers(node, rectKeys...)
	if err != nil {
		return types.Rect{}, err
	}
	return types.Rect{X: fs[0], Y: fs[1], Width: fs[2], Height: fs[3]}, nil
}

func lineTo(l types.Line) (*ir.Node, error) {
	p1, err := pointTo(l.P1)
	if err != nil {
		return nil, err
	}
	p2, err := pointTo(l.P2)
	if err != nil {
		return nil, err
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("p1"), Val: p1},
		{Key: ir.FromString("p2"), Val: p2},
	}), nil
}

func lineFrom(node *ir.Node) (types.Line, error) {
	if err := strictKeys(node, "p1", "p2"); err != nil {
		return types.Line{}, err
	}
	p1, err := pointFrom(ir.Get(node, "p1"))
	if err != nil {
		return types.Line{}, fmt.Errorf("p1: %w", err)
	}
	p2, err := pointFrom(ir.Get(node, "p2"))
	if err != nil {
		return types.Line{}, fmt.Errorf("p2: %w", err)
	}
	return types.Line{P1: p1, P2: p2}, nil
}
