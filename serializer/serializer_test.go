package serializer

import (
	"errors"
	"math"
	"runtime"
	"strings"
	"testing"

	"github.com/signadot/objson/encode"
	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
)

func roundTrip[T any](t *testing.T, s *Serializer, v T) T {
	t.Helper()
	node, err := s.SerializeAs(meta.TypeFor[T](s.Registry()), v)
	require.NoError(t, err)
	got, err := DeserializeAs[T](s, node, nil)
	require.NoError(t, err, "json: %s", encode.MustString(node))
	again, err := s.SerializeAs(meta.TypeFor[T](s.Registry()), got)
	require.NoError(t, err)
	require.True(t, ir.Equal(node, again), "%s != %s", encode.MustString(node), encode.MustString(again))
	return got
}

func TestRoundTrip(t *testing.T) {
	s := newTestSerializer(t, Config{})

	t.Run("scalars", func(t *testing.T) {
		require.Equal(t, 42, roundTrip(t, s, 42))
		require.Equal(t, "hello", roundTrip(t, s, "hello"))
		require.Equal(t, 1.5, roundTrip(t, s, 1.5))
		require.Equal(t, true, roundTrip(t, s, true))
		require.Equal(t, uint64(math.MaxUint64), roundTrip(t, s, uint64(math.MaxUint64)))
	})

	t.Run("object with null reference", func(t *testing.T) {
		p := &ParentObject{Items: []int{1, 2}, Color: Blue, Opts: FlagA | FlagC}
		got := roundTrip(t, s, p)
		require.Nil(t, got.Child)
		if diff := cmp.Diff(p, got, cmpOpts...); diff != "" {
			t.Errorf("round trip (-want +got):\n%s", diff)
		}
	})

	t.Run("nested object", func(t *testing.T) {
		p := &ParentObject{Child: &ChildObject{Data: 7}}
		got := roundTrip(t, s, p)
		require.Equal(t, 7, got.Child.Data)
		require.Equal(t, meta.Objecter(got), got.Child.Parent())
	})

	t.Run("containers", func(t *testing.T) {
		c := Containers{
			One:    []string{"a"},
			Three:  []float64{1, 2.5, -3},
			Nested: [][]int{{1}, {}, {2, 3}},
			Scores: map[string]int{"b": 2, "a": 1},
			Labels: map[string][]string{"x": {"y", "z"}},
			Range:  meta.MakePair("from", 3),
			Span:   Span{From: 1, To: 9},
			Cfg:    &Settings{Name: "n", Count: 2},
		}
		got := roundTrip(t, s, c)
		if diff := cmp.Diff(c, got, cmpOpts...); diff != "" {
			t.Errorf("round trip (-want +got):\n%s", diff)
		}
	})

	t.Run("shared and tracking references", func(t *testing.T) {
		k := &Keeper{Name: "kim"}
		m := &Keeper{Name: "max"}
		z := &Zoo{Keeper: meta.NewShared(k), Mascot: meta.Track(m)}
		got := roundTrip(t, s, z)
		require.Equal(t, "kim", got.Keeper.Get().Name)
		require.NotNil(t, got.Mascot.Get())
		require.Equal(t, "max", got.Mascot.Get().Name)
		require.Nil(t, got.Star)
		runtime.KeepAlive(m)
	})
}

func TestSerializeShape(t *testing.T) {
	s := newTestSerializer(t, Config{})
	c := Containers{
		Scores: map[string]int{"b": 2, "a": 1},
		Range:  meta.MakePair("x", 1),
		Span:   Span{From: 1, To: 2},
	}
	node, err := s.Serialize(c)
	require.NoError(t, err)
	require.Equal(t,
		`{"empty":[],"one":[],"three":[],"nested":[],"scores":{"a":1,"b":2},"labels":{},"range":["x",1],"span":[1,2],"cfg":null}`,
		encode.MustString(node, encode.EncodeWire(true)))
}

func TestNullHandling(t *testing.T) {
	s := newTestSerializer(t, Config{})

	node, err := s.Serialize(&ParentObject{})
	require.NoError(t, err)
	require.Equal(t, ir.NullType, ir.Get(node, "child").Type)

	in := mustParse(t, `{"name": "a", "count": null}`)
	_, err = DeserializeAs[Settings](s, in, nil)
	require.ErrorIs(t, err, ErrDeserialization)

	s.SetAllowDefaultNull(true)
	got, err := DeserializeAs[Settings](s, in, nil)
	require.NoError(t, err)
	require.Equal(t, Settings{Name: "a"}, got)

	p, err := DeserializeAs[*ParentObject](s, mustParse(t, `null`), nil)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestValidation(t *testing.T) {
	missing := mustParse(t, `{"name": "a"}`)
	extra := mustParse(t, `{"name": "a", "count": 1, "color": "red"}`)

	s := newTestSerializer(t, Config{})
	_, err := DeserializeAs[Settings](s, missing, nil)
	require.NoError(t, err)
	got, err := DeserializeAs[Settings](s, extra, nil)
	require.NoError(t, err)
	require.Equal(t, Settings{Name: "a", Count: 1}, got)

	s.SetValidation(AllProperties)
	_, err = DeserializeAs[Settings](s, missing, nil)
	require.ErrorIs(t, err, ErrMissingProperties)
	require.ErrorIs(t, err, ErrValidation)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, []string{"count"}, e.Missing)

	s.SetValidation(NoExtraProperties)
	_, err = DeserializeAs[Settings](s, extra, nil)
	require.ErrorIs(t, err, ErrExtraProperty)
	require.ErrorAs(t, err, &e)
	require.Equal(t, "$.color", e.Location)

	t.Run("identity name", func(t *testing.T) {
		s := newTestSerializer(t, Config{Validation: AllProperties})
		in := mustParse(t, `{"data": 1}`)
		_, err := DeserializeAs[*ChildObject](s, in, nil)
		require.NoError(t, err)

		s.SetKeepObjectName(true)
		_, err = DeserializeAs[*ChildObject](s, in, nil)
		require.ErrorAs(t, err, &e)
		require.Equal(t, []string{meta.Identity}, e.Missing)
	})
}

func TestKeepObjectName(t *testing.T) {
	s := newTestSerializer(t, Config{KeepObjectName: true})
	c := &ChildObject{Data: 3}
	c.SetObjectName("c1")
	node, err := s.Serialize(c)
	require.NoError(t, err)
	require.Equal(t, `{"objectName":"c1","data":3}`, encode.MustString(node, encode.EncodeWire(true)))
	got := roundTrip(t, s, c)
	require.Equal(t, "c1", got.ObjectName())

	s.SetKeepObjectName(false)
	node, err = s.Serialize(c)
	require.NoError(t, err)
	require.Equal(t, `{"data":3}`, encode.MustString(node, encode.EncodeWire(true)))
}

func TestPolymorphism(t *testing.T) {
	dog := &Dog{Base: Base{Name: "rex"}, Breed: "lab"}
	base := &Base{Name: "generic"}

	star := func(t *testing.T, s *Serializer, a Animal) *ir.Node {
		t.Helper()
		node, err := s.Serialize(&Zoo{Star: a})
		require.NoError(t, err)
		return ir.Get(node, "star")
	}

	t.Run("disabled", func(t *testing.T) {
		s := newTestSerializer(t, Config{Polymorphing: Disabled})
		require.Equal(t, `{"name":"rex"}`, encode.MustString(star(t, s, dog), encode.EncodeWire(true)))

		z, err := DeserializeAs[*Zoo](s, mustParse(t, `{"star": {"@class": "Dog", "name": "rex", "breed": "lab"}}`), nil)
		require.NoError(t, err)
		b, ok := z.Star.(*Base)
		require.True(t, ok, "got %T", z.Star)
		require.Equal(t, "rex", b.Name)

		s.SetValidation(NoExtraProperties)
		_, err = DeserializeAs[*Zoo](s, mustParse(t, `{"star": {"@class": "Base", "name": "rex"}}`), nil)
		require.ErrorIs(t, err, ErrExtraProperty)
		require.ErrorIs(t, err, ErrValidation)
		var e *Error
		require.ErrorAs(t, err, &e)
		require.Equal(t, "star", e.PropertyPath())
	})

	t.Run("enabled", func(t *testing.T) {
		s := newTestSerializer(t, Config{Polymorphing: Enabled})
		require.Equal(t, `{"@class":"Dog","name":"rex","breed":"lab"}`, encode.MustString(star(t, s, dog), encode.EncodeWire(true)))
		require.Equal(t, `{"name":"generic"}`, encode.MustString(star(t, s, base), encode.EncodeWire(true)))

		z := roundTrip(t, s, &Zoo{Star: dog})
		d, ok := z.Star.(*Dog)
		require.True(t, ok, "got %T", z.Star)
		require.Equal(t, "lab", d.Breed)
		require.Equal(t, "rex", d.Name)

		z = roundTrip(t, s, &Zoo{Star: base})
		_, ok = z.Star.(*Base)
		require.True(t, ok, "got %T", z.Star)
	})

	t.Run("instance override", func(t *testing.T) {
		s := newTestSerializer(t, Config{Polymorphing: Enabled})
		b := &Base{Name: "b"}
		b.SetSerializePolymorphic(true)
		require.Equal(t, `{"name":"b"}`, encode.MustString(star(t, s, b), encode.EncodeWire(true)))

		d := &Dog{Base: Base{Name: "d"}}
		d.SetSerializePolymorphic(true)
		require.Equal(t, `{"@class":"Dog","name":"d","breed":""}`, encode.MustString(star(t, s, d), encode.EncodeWire(true)))

		s.SetPolymorphing(Forced)
		require.Equal(t, `{"@class":"Base","name":"b"}`, encode.MustString(star(t, s, b), encode.EncodeWire(true)))
	})

	t.Run("forced", func(t *testing.T) {
		s := newTestSerializer(t, Config{Polymorphing: Forced})
		require.Equal(t, `{"@class":"Dog","name":"rex","breed":"lab"}`, encode.MustString(star(t, s, dog), encode.EncodeWire(true)))
		require.Equal(t, `{"@class":"Base","name":"generic"}`, encode.MustString(star(t, s, base), encode.EncodeWire(true)))

		_, err := DeserializeAs[*Zoo](s, mustParse(t, `{"@class": "Zoo", "star": {"name": "rex"}}`), nil)
		require.ErrorIs(t, err, ErrPolymorphism)
		var e *Error
		require.ErrorAs(t, err, &e)
		require.Equal(t, "star", e.PropertyPath())
	})

	t.Run("bad class", func(t *testing.T) {
		s := newTestSerializer(t, Config{Polymorphing: Enabled})
		for _, in := range []string{
			`{"star": {"@class": "Cat"}}`,
			`{"star": {"@class": "ChildObject"}}`,
			`{"star": {"@class": 3}}`,
		} {
			meta.TypeFor[*ChildObject](s.Registry())
			_, err := DeserializeAs[*Zoo](s, mustParse(t, in), nil)
			require.ErrorIs(t, err, ErrPolymorphism, in)
		}
	})
}

func TestEnums(t *testing.T) {
	s := newTestSerializer(t, Config{EnumAsString: true})
	optT := meta.TypeFor[Opt](s.Registry())
	colorT := meta.TypeFor[Color](s.Registry())

	ser := func(t *testing.T, typ *meta.Type, v any) string {
		t.Helper()
		node, err := s.SerializeAs(typ, v)
		require.NoError(t, err)
		return encode.MustString(node, encode.EncodeWire(true))
	}

	require.Equal(t, `"FlagA|FlagC"`, ser(t, optT, FlagA|FlagC))
	require.Equal(t, `"FlagAll"`, ser(t, optT, FlagAll))
	require.Equal(t, `"FlagD|FlagAll"`, ser(t, optT, FlagAll|FlagD))
	require.Equal(t, `32`, ser(t, optT, Opt(32)))
	require.Equal(t, `"Green"`, ser(t, colorT, Green))
	require.Equal(t, `7`, ser(t, colorT, Color(7)))

	for _, tc := range []struct {
		in   string
		want Opt
	}{
		{`"FlagA|FlagC"`, FlagA | FlagC},
		{`"FlagC | FlagA"`, FlagA | FlagC},
		{`"FlagAll"`, FlagAll},
		{`""`, 0},
		{`5`, FlagA | FlagC},
		{`64`, 64},
	} {
		got, err := DeserializeAs[Opt](s, mustParse(t, tc.in), nil)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, in := range []string{`"FlagA|FlagX"`, `"Purple"`, `1.5`, `70000`} {
		_, err := DeserializeAs[Opt](s, mustParse(t, in), nil)
		require.Error(t, err, in)
	}
	_, err := DeserializeAs[Opt](s, mustParse(t, `"FlagA|FlagX"`), nil)
	require.ErrorIs(t, err, ErrInvalidEnum)
	_, err = DeserializeAs[Color](s, mustParse(t, `"Purple"`), nil)
	require.ErrorIs(t, err, ErrInvalidEnum)

	got, err := DeserializeAs[Color](s, mustParse(t, `9`), nil)
	require.NoError(t, err)
	require.Equal(t, Color(9), got)

	s.SetEnumAsString(false)
	require.Equal(t, `5`, ser(t, optT, FlagA|FlagC))
	require.Equal(t, `1`, ser(t, colorT, Green))
}

func TestErrorTrace(t *testing.T) {
	s := newTestSerializer(t, Config{})
	_, err := DeserializeAs[*ParentObject](s, mustParse(t, `{"child": {"data": "not-a-number"}}`), nil)
	require.ErrorIs(t, err, ErrDeserialization)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, []Frame{
		{Property: "child", Type: "*ChildObject"},
		{Property: "data", Type: "int"},
	}, e.Trace())
	require.Equal(t, "$.child.data", e.Location)
	require.Equal(t, "child.data", e.PropertyPath())
	require.True(t, strings.HasPrefix(err.Error(), "deserialization error at child.data: "), err.Error())
}

type stubConverter struct {
	priority int
	out      string
	accept   func(*meta.Type) bool
}

func (c stubConverter) Priority() int                { return c.priority }
func (c stubConverter) Kinds() []ir.Type             { return []ir.Type{ir.ArrayType, ir.StringType} }
func (c stubConverter) CanConvert(t *meta.Type) bool { return c.accept(t) }

func (c stubConverter) Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error) {
	return ir.FromString(c.out), nil
}

func (c stubConverter) Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error) {
	return h.Reflector().Zero(t), nil
}

func TestConverterPriority(t *testing.T) {
	isList := func(t *meta.Type) bool { return t.Is(meta.FlagList) }
	isString := func(t *meta.Type) bool { return t.Name() == "string" }

	t.Run("higher priority wins over default", func(t *testing.T) {
		s := newTestSerializer(t, Config{})
		s.RegisterConverter(stubConverter{priority: PriorityHigh, out: "high", accept: isList})
		s.RegisterConverter(stubConverter{priority: PriorityLow, out: "low", accept: isList})
		node, err := s.Serialize([]int{1, 2})
		require.NoError(t, err)
		require.Equal(t, "high", node.String)
	})

	t.Run("lower priority loses to default", func(t *testing.T) {
		s := newTestSerializer(t, Config{}, WithConverters(stubConverter{priority: PriorityLow, out: "low", accept: isList}))
		node, err := s.Serialize([]int{1, 2})
		require.NoError(t, err)
		require.Equal(t, ir.ArrayType, node.Type)
	})

	t.Run("tie goes to last registered", func(t *testing.T) {
		s := newTestSerializer(t, Config{})
		s.RegisterConverter(stubConverter{out: "first", accept: isString})
		node, err := s.Serialize("x")
		require.NoError(t, err)
		require.Equal(t, "first", node.String)
		s.RegisterConverter(stubConverter{out: "second", accept: isString})
		node, err = s.Serialize("x")
		require.NoError(t, err)
		require.Equal(t, "second", node.String)
	})

	t.Run("deserialize uses the same order", func(t *testing.T) {
		s := newTestSerializer(t, Config{})
		s.RegisterConverter(stubConverter{priority: PriorityHigh, out: "x", accept: isList})
		got, err := DeserializeAs[[]int](s, mustParse(t, `[1]`), nil)
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestCycles(t *testing.T) {
	s := newTestSerializer(t, Config{})
	a := &Link{Name: "a"}
	b := &Link{Name: "b", Next: a}
	a.Next = b
	_, err := s.Serialize(a)
	require.ErrorIs(t, err, ErrSerialization)
	require.Contains(t, err.Error(), "circular reference")
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "next.next", e.PropertyPath())

	shared := &ChildObject{Data: 1}
	node, err := s.Serialize([]*ChildObject{shared, shared})
	require.NoError(t, err)
	require.Equal(t, `[{"data":1},{"data":1}]`, encode.MustString(node, encode.EncodeWire(true)))
}

func TestDynamicProperties(t *testing.T) {
	s := newTestSerializer(t, Config{})
	c, err := DeserializeAs[*ChildObject](s, mustParse(t, `{"data": 1, "note": "hi", "tags": [1, 2]}`), nil)
	require.NoError(t, err)
	v, ok := c.Property("note")
	require.True(t, ok)
	require.Equal(t, "hi", v)
	v, ok = c.Property("tags")
	require.True(t, ok)
	require.Equal(t, []any{int64(1), int64(2)}, v)

	node, err := s.Serialize(c)
	require.NoError(t, err)
	require.Equal(t, `{"data":1,"note":"hi","tags":[1,2]}`, encode.MustString(node, encode.EncodeWire(true)))
}

func TestUntyped(t *testing.T) {
	s := newTestSerializer(t, Config{})
	v, err := s.Deserialize(mustParse(t, `{"a": [1, "x", null, 2.5, true], "b": {}}`), s.Registry().Unknown(), nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"a": []any{int64(1), "x", nil, 2.5, true},
		"b": map[string]any{},
	}, v.Interface())

	node, err := s.Serialize(map[string]any{"k": []any{1, "s", nil}})
	require.NoError(t, err)
	require.Equal(t, `{"k":[1,"s",null]}`, encode.MustString(node, encode.EncodeWire(true)))
}

func TestNotRepresentable(t *testing.T) {
	s := newTestSerializer(t, Config{})
	_, err := s.Serialize(math.NaN())
	require.ErrorIs(t, err, ErrSerialization)
	_, err = s.Serialize(Settings{Name: "x", Count: 1})
	require.NoError(t, err)
	_, err = s.Serialize(make(chan int))
	require.ErrorIs(t, err, ErrSerialization)
}

func TestTupleArity(t *testing.T) {
	s := newTestSerializer(t, Config{})
	_, err := DeserializeAs[meta.Pair[string, int]](s, mustParse(t, `["a"]`), nil)
	require.ErrorIs(t, err, ErrDeserialization)
	_, err = DeserializeAs[Span](s, mustParse(t, `[1, 2, 3]`), nil)
	require.ErrorIs(t, err, ErrDeserialization)
	got, err := DeserializeAs[Span](s, mustParse(t, `[1, 2]`), nil)
	require.NoError(t, err)
	require.Equal(t, Span{From: 1, To: 2}, got)
}

func TestConstruction(t *testing.T) {
	r := newTestRegistry(t)
	_, err := meta.RegisterClass[Keeper](r, meta.Abstract())
	require.NoError(t, err)
	s := New(r)
	_, err = DeserializeAs[*Keeper](s, mustParse(t, `{"name": "k"}`), nil)
	require.ErrorIs(t, err, ErrConstruction)

	owner := &Keeper{}
	c, err := DeserializeAs[*ChildObject](s, mustParse(t, `{"data": 2}`), owner)
	require.NoError(t, err)
	require.Equal(t, meta.Objecter(owner), c.Parent())
	require.Len(t, owner.Children(), 1)
}

func TestMetrics(t *testing.T) {
	scope := tally.NewTestScope("objson", nil)
	s := newTestSerializer(t, Config{Validation: AllProperties}, WithMetrics(scope))
	_, err := s.Serialize(Settings{})
	require.NoError(t, err)
	_, err = DeserializeAs[Settings](s, mustParse(t, `{}`), nil)
	require.Error(t, err)

	counts := map[string]int64{}
	for _, c := range scope.Snapshot().Counters() {
		name := c.Name()
		if k := c.Tags()["kind"]; k != "" {
			name += "/" + k
		}
		counts[name] = c.Value()
	}
	require.Equal(t, int64(1), counts["objson.serialize_calls"])
	require.Equal(t, int64(1), counts["objson.deserialize_calls"])
	require.Equal(t, int64(1), counts["objson.errors/validation"])
}

func TestBytes(t *testing.T) {
	s := newTestSerializer(t, Config{})
	d, err := s.SerializeToBytes(Settings{Name: "a", Count: 2})
	require.NoError(t, err)
	require.Equal(t, `{"name":"a","count":2}`, string(d))
	got, err := DeserializeBytesAs[Settings](s, d, nil)
	require.NoError(t, err)
	require.Equal(t, Settings{Name: "a", Count: 2}, got)

	_, err = s.DeserializeFromBytes([]byte(`{"name": `), meta.TypeFor[Settings](s.Registry()), nil)
	require.ErrorIs(t, err, ErrDeserialization)

	var buf strings.Builder
	require.NoError(t, s.SerializeTo(&buf, []int{1}))
	require.Equal(t, "[\n  1\n]\n", buf.String())
}

func TestPatch(t *testing.T) {
	s := newTestSerializer(t, Config{})
	st := meta.TypeFor[Settings](s.Registry())
	v, err := s.Patch(st, Settings{Name: "a", Count: 1}, []byte(`[{"op": "replace", "path": "/count", "value": 5}]`), JSONPatch, nil)
	require.NoError(t, err)
	require.Equal(t, Settings{Name: "a", Count: 5}, v.Interface())

	v, err = s.Patch(st, Settings{Name: "a", Count: 1}, []byte(`{"name": "b"}`), MergePatch, nil)
	require.NoError(t, err)
	require.Equal(t, Settings{Name: "b", Count: 1}, v.Interface())

	_, err = s.Patch(st, Settings{}, []byte(`[{"op": "remove", "path": "/nope"}]`), JSONPatch, nil)
	require.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	for _, kind := range []error{ErrConstruction, ErrMissingProperties, ErrExtraProperty, ErrPolymorphism, ErrInvalidEnum} {
		require.True(t, errors.Is(kind, ErrDeserialization), kind.Error())
	}
	require.False(t, errors.Is(ErrSerialization, ErrDeserialization))
}

func TestNamedContainers(t *testing.T) {
	wire := func(t *testing.T, s *Serializer, v any) string {
		t.Helper()
		node, err := s.Serialize(v)
		require.NoError(t, err)
		return encode.MustString(node, encode.EncodeWire(true))
	}

	t.Run("named first", func(t *testing.T) {
		s := newTestSerializer(t, Config{})
		require.Equal(t, `[1,2]`, wire(t, s, IDs{1, 2}))
		require.Equal(t, `[1,2]`, wire(t, s, []int{1, 2}))
		require.Equal(t, `{"a":1}`, wire(t, s, Scores{"a": 1}))
		require.Equal(t, `{"a":1}`, wire(t, s, map[string]int{"a": 1}))
	})

	t.Run("plain first", func(t *testing.T) {
		s := newTestSerializer(t, Config{})
		require.Equal(t, `[1,2]`, wire(t, s, []int{1, 2}))
		require.Equal(t, `[1,2]`, wire(t, s, IDs{1, 2}))
		require.Equal(t, `{"a":1}`, wire(t, s, map[string]int{"a": 1}))
		require.Equal(t, `{"a":1}`, wire(t, s, Scores{"a": 1}))
	})

	t.Run("fields", func(t *testing.T) {
		s := newTestSerializer(t, Config{})
		in := Roster{
			Plain:  []int{1},
			Named:  IDs{2, 3},
			Scores: Scores{"b": 2},
			Totals: map[string]int{"c": 3},
		}
		require.Equal(t, `{"plain":[1],"named":[2,3],"scores":{"b":2},"totals":{"c":3}}`, wire(t, s, in))
		got := roundTrip(t, s, in)
		require.Equal(t, in, got)
	})

	t.Run("names", func(t *testing.T) {
		r := newTestSerializer(t, Config{}).Registry()
		require.Equal(t, "IDs", meta.TypeFor[IDs](r).Name())
		require.Equal(t, "List<int>", meta.TypeFor[[]int](r).Name())
		require.Equal(t, "Scores", meta.TypeFor[Scores](r).Name())
		require.Equal(t, "Map<string, int>", meta.TypeFor[map[string]int](r).Name())
	})
}
