package meta

import (
	"errors"
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type Color int

const (
	Red Color = iota
	Green
	Blue
)

type Perm uint8

const (
	PermRead Perm = 1 << iota
	PermWrite
	PermExec
)

type Dims struct {
	Width  int
	Height int
	hidden int
}

type Animal struct {
	Object
	Name string
	Legs int `objson:"name=legCount"`
}

func (a *Animal) Sound() string { return "..." }

type Dog struct {
	Animal
	Breed  string
	Cache  []byte `objson:"notstored"`
	ID     string `objson:"readonly"`
	Ignore int    `objson:"-"`
}

func (d *Dog) Sound() string { return "woof" }

type Speaker interface {
	Objecter
	Sound() string
}

type Kennel struct {
	Object
	Boss    *Dog
	Friends []Shared[Dog]
	Watch   Tracking[Dog]
	Pets    map[string]Speaker
	Size    Dims
	Tags    []string
	Created time.Time
}

type Coord struct {
	Lat, Lon float64
	Label    string
}

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if _, err := RegisterEnum[Color](r, Enum("Red", Red), Enum("Green", Green), Enum("Blue", Blue)); err != nil {
		t.Fatal(err)
	}
	if _, err := RegisterFlags[Perm](r, Enum("Read", PermRead), Enum("Write", PermWrite), Enum("Exec", PermExec)); err != nil {
		t.Fatal(err)
	}
	if _, err := RegisterInterface[Speaker, Animal](r); err != nil {
		t.Fatal(err)
	}
	if _, err := RegisterTuple[Coord](r); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestTypeNames(t *testing.T) {
	r := newRegistry(t)
	tests := []struct {
		t     *Type
		name  string
		flags Flags
	}{
		{TypeFor[int](r), "int", FlagScalar},
		{TypeFor[any](r), "any", FlagUnknown},
		{TypeFor[Color](r), "Color", FlagEnum},
		{TypeFor[Perm](r), "Perm", FlagEnum | FlagFlags},
		{TypeFor[Dims](r), "Dims", FlagGadget},
		{TypeFor[*Dims](r), "*Dims", FlagPointer},
		{TypeFor[*Dog](r), "*Dog", FlagObject},
		{TypeFor[Shared[Dog]](r), "Shared<Dog>", FlagObject},
		{TypeFor[Tracking[Dog]](r), "Tracking<Dog>", FlagObject},
		{TypeFor[Speaker](r), "Speaker", FlagObject | FlagInterface},
		{TypeFor[[]int](r), "List<int>", FlagList},
		{TypeFor[[][]int](r), "List<List<int>>", FlagList},
		{TypeFor[[]string](r), "StringList", FlagList},
		{TypeFor[[][]byte](r), "BytesList", FlagList},
		{TypeFor[[]byte](r), "Bytes", FlagLeaf},
		{TypeFor[map[string]*Dog](r), "Map<string, *Dog>", FlagMap},
		{TypeFor[Pair[int, string]](r), "Pair<int, string>", FlagPair},
		{TypeFor[Coord](r), "Tuple<float64, float64, string>", FlagTuple},
		{TypeFor[time.Time](r), "Time", FlagLeaf},
	}
	for _, tt := range tests {
		if tt.t.Name() != tt.name {
			t.Errorf("got name %q want %q", tt.t.Name(), tt.name)
		}
		if tt.t.Flags() != tt.flags {
			t.Errorf("%s: got flags %s want %s", tt.name, tt.t.Flags(), tt.flags)
		}
		got, ok := r.TypeByName(tt.name)
		if !ok || got != tt.t {
			t.Errorf("TypeByName(%q) = %v, %v", tt.name, got, ok)
		}
	}
	if got := TypeFor[*Dog](r).Ownership(); got != OwnPointer {
		t.Errorf("got %s", got)
	}
	if got := TypeFor[Tracking[Dog]](r).Ownership(); got != OwnTracking {
		t.Errorf("got %s", got)
	}
}

func TestTypeByNameSynthesizes(t *testing.T) {
	r := newRegistry(t)
	TypeFor[*Dog](r)
	for name, rt := range map[string]reflect.Type{
		"Dog":                     reflect.TypeFor[*Dog](),
		"*Dog":                    reflect.TypeFor[*Dog](),
		"List<float32>":           reflect.TypeFor[[]float32](),
		"Map<string, List<int>>":  reflect.TypeFor[map[string][]int](),
		"List<Map<string, *Dog>>": reflect.TypeFor[[]map[string]*Dog](),
		"*int":                    reflect.TypeFor[*int](),
		"List<Dog>":               reflect.TypeFor[[]*Dog](),
	} {
		got, ok := r.TypeByName(name)
		if !ok {
			t.Errorf("%s: not found", name)
			continue
		}
		if got.RT() != rt {
			t.Errorf("%s: got %s want %s", name, got.RT(), rt)
		}
	}
	for _, name := range []string{"Nope", "List<Nope>", "Map<int, int>", "List<int"} {
		if _, ok := r.TypeByName(name); ok {
			t.Errorf("%s: unexpectedly found", name)
		}
	}
}

func TestParseTypeName(t *testing.T) {
	tests := []struct {
		in     string
		outer  string
		params []string
		ok     bool
	}{
		{"List<int>", "List", []string{"int"}, true},
		{"Map<string, List<int>>", "Map", []string{"string", "List<int>"}, true},
		{"Pair< Map<string, int> , Box[int,string] >", "Pair", []string{"Map<string, int>", "Box[int,string]"}, true},
		{"int", "int", nil, false},
		{"List<>", "List<>", nil, false},
		{"List<a>>", "List<a>>", nil, false},
	}
	for _, tt := range tests {
		outer, params, ok := ParseTypeName(tt.in)
		if ok != tt.ok || outer != tt.outer || !reflect.DeepEqual(params, tt.params) {
			t.Errorf("%q: got %q %q %v", tt.in, outer, params, ok)
		}
	}
}

func TestProperties(t *testing.T) {
	r := newRegistry(t)
	props := r.PropertiesOf(TypeFor[*Dog](r))
	type row struct {
		Name                       string
		Type                       string
		Stored, Writable, Identity bool
	}
	var got []row
	for _, p := range props {
		got = append(got, row{p.Name, p.Type.Name(), p.Stored, p.Writable, p.Identity})
	}
	want := []row{
		{"objectName", "string", true, true, true},
		{"name", "string", true, true, false},
		{"legCount", "int", true, true, false},
		{"breed", "string", true, true, false},
		{"cache", "Bytes", false, true, false},
		{"id", "string", true, false, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("properties (-want +got):\n%s", diff)
	}
	gp := r.PropertiesOf(TypeFor[Dims](r))
	if len(gp) != 2 || gp[0].Name != "width" || gp[1].Name != "height" {
		t.Errorf("unexpected gadget properties %v", gp)
	}
	// an interface exposes the properties of its static class
	if sp := r.PropertiesOf(TypeFor[Speaker](r)); len(sp) != 3 {
		t.Errorf("unexpected interface properties %v", sp)
	}
}

func TestReadWrite(t *testing.T) {
	r := newRegistry(t)
	dt := TypeFor[*Dog](r)
	d := &Dog{Breed: "pug"}
	d.Name = "rex"
	inst := ValueOf(dt, d)

	breed := r.Property(dt, "breed")
	v, err := r.Read(inst, breed)
	if err != nil || v.Interface() != "pug" {
		t.Fatalf("read breed: %v %v", v, err)
	}
	if err := r.Write(inst, breed, ValueOf(TypeFor[string](r), "husky")); err != nil {
		t.Fatal(err)
	}
	if d.Breed != "husky" {
		t.Errorf("breed not written")
	}
	if err := r.Write(inst, r.Property(dt, "id"), ValueOf(TypeFor[string](r), "x")); !errors.Is(err, ErrNotWritable) {
		t.Errorf("expected ErrNotWritable, got %v", err)
	}
	if err := r.Write(inst, r.Property(dt, "objectName"), ValueOf(TypeFor[string](r), "fido")); err != nil {
		t.Fatal(err)
	}
	if d.ObjectName() != "fido" {
		t.Errorf("identity not written")
	}

	// base class properties read from a derived instance
	name := r.Property(TypeFor[Speaker](r), "name")
	v, err = r.Read(inst, name)
	if err != nil || v.Interface() != "rex" {
		t.Errorf("read base property: %v %v", v, err)
	}

	g := r.New(TypeFor[Dims](r))
	if err := r.Write(g, r.Property(g.Type(), "width"), ValueOf(TypeFor[float64](r), 3.0)); err != nil {
		t.Fatal(err)
	}
	if g.Interface().(Dims).Width != 3 {
		t.Errorf("gadget not written")
	}
	if err := r.Write(g, r.Property(g.Type(), "width"), ValueOf(TypeFor[float64](r), 3.5)); !errors.Is(err, ErrConvert) {
		t.Errorf("expected ErrConvert, got %v", err)
	}
}

func TestConvert(t *testing.T) {
	r := newRegistry(t)
	tests := []struct {
		in   any
		to   *Type
		want any
		fail bool
	}{
		{in: int64(3), to: TypeFor[int8](r), want: int8(3)},
		{in: int64(300), to: TypeFor[int8](r), fail: true},
		{in: int64(-1), to: TypeFor[uint](r), fail: true},
		{in: float64(2), to: TypeFor[int](r), want: 2},
		{in: float64(2.5), to: TypeFor[int](r), fail: true},
		{in: int64(7), to: TypeFor[float64](r), want: float64(7)},
		{in: float64(1e300), to: TypeFor[float32](r), fail: true},
		{in: "42", to: TypeFor[int](r), want: 42},
		{in: "not-a-number", to: TypeFor[int](r), fail: true},
		{in: "true", to: TypeFor[bool](r), want: true},
		{in: int64(2), to: TypeFor[Color](r), want: Blue},
		{in: 5, to: TypeFor[*int](r), want: func() any { i := 5; return &i }()},
		{in: []any{int64(1), int64(2)}, to: TypeFor[[]int](r), want: []int{1, 2}},
		{in: map[string]any{"a": "x"}, to: TypeFor[map[string]string](r), want: map[string]string{"a": "x"}},
		{in: "x", to: TypeFor[any](r), want: "x"},
		{in: true, to: TypeFor[string](r), fail: true},
	}
	for _, tt := range tests {
		got, err := r.Convert(ValueOf(r.TypeOf(tt.in), tt.in), tt.to)
		if tt.fail {
			if !errors.Is(err, ErrConvert) {
				t.Errorf("%v to %s: expected ErrConvert, got %v", tt.in, tt.to, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v to %s: %v", tt.in, tt.to, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got.Interface()); diff != "" {
			t.Errorf("%v to %s (-want +got):\n%s", tt.in, tt.to, diff)
		}
	}

	// null converts to nullable types only
	if v, err := r.Convert(Value{}, TypeFor[*Dog](r)); err != nil || !v.IsNil() {
		t.Errorf("null to *Dog: %v %v", v, err)
	}
	if _, err := r.Convert(Value{}, TypeFor[int](r)); !errors.Is(err, ErrConvert) {
		t.Errorf("null to int: expected ErrConvert, got %v", err)
	}
}

func TestConstructSetsOwner(t *testing.T) {
	r := newRegistry(t)
	owner := &Kennel{}
	v, err := r.Construct(TypeFor[Shared[Dog]](r), owner)
	if err != nil {
		t.Fatal(err)
	}
	d := v.Interface().(*Dog)
	if d.Parent() != Objecter(owner) {
		t.Errorf("owner not set")
	}
	if kids := owner.Children(); len(kids) != 1 || kids[0] != Objecter(d) {
		t.Errorf("child not registered: %v", kids)
	}
	SetParent(d, nil)
	if len(owner.Children()) != 0 || d.Parent() != nil {
		t.Errorf("child not detached")
	}

	// interfaces construct their static class
	v, err = r.Construct(TypeFor[Speaker](r), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.Interface().(*Animal); !ok {
		t.Errorf("got %T", v.Interface())
	}

	if _, err := RegisterClass[Animal](r, Abstract()); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Construct(TypeFor[Speaker](r), nil); !errors.Is(err, ErrNotConstructible) {
		t.Errorf("expected ErrNotConstructible, got %v", err)
	}
	if _, err := r.Construct(TypeFor[Dims](r), nil); !errors.Is(err, ErrNotConstructible) {
		t.Errorf("expected ErrNotConstructible, got %v", err)
	}
}

func TestConstructor(t *testing.T) {
	r := NewRegistry()
	if _, err := RegisterClass[Dog](r, Constructor(func() *Dog { return &Dog{Breed: "mutt"} })); err != nil {
		t.Fatal(err)
	}
	v, err := r.Construct(TypeFor[*Dog](r), nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Interface().(*Dog).Breed != "mutt" {
		t.Errorf("constructor not used")
	}
}

func TestWrapUnwrap(t *testing.T) {
	r := newRegistry(t)
	d := &Dog{}
	inst := ValueOf(TypeFor[*Dog](r), d)
	for _, tt := range []*Type{
		TypeFor[*Dog](r),
		TypeFor[Shared[Dog]](r),
		TypeFor[Tracking[Dog]](r),
		TypeFor[Speaker](r),
	} {
		w, err := r.Wrap(tt, inst)
		if err != nil {
			t.Errorf("%s: %v", tt, err)
			continue
		}
		if w.RV().Type() != tt.RT() {
			t.Errorf("%s: wrapped as %s", tt, w.RV().Type())
		}
		u, ok := r.Unwrap(w)
		if !ok || u.Interface() != any(d) {
			t.Errorf("%s: unwrap gave %v %v", tt, u, ok)
		}
	}
	if _, ok := r.Unwrap(ValueOf(TypeFor[Shared[Dog]](r), Shared[Dog]{})); ok {
		t.Errorf("null shared unwrapped")
	}
	runtime.KeepAlive(d)
}

func TestIsSubtype(t *testing.T) {
	r := newRegistry(t)
	dog := TypeFor[*Dog](r)
	animal := TypeFor[*Animal](r)
	speaker := TypeFor[Speaker](r)
	kennel := TypeFor[*Kennel](r)
	if !r.IsSubtype(dog, speaker) || !r.IsSubtype(animal, speaker) {
		t.Errorf("classes implementing Speaker should be subtypes")
	}
	if r.IsSubtype(kennel, speaker) {
		t.Errorf("Kennel is not a Speaker")
	}
	if !r.IsSubtype(dog, TypeFor[Shared[Dog]](r)) {
		t.Errorf("*Dog should fit Shared<Dog>")
	}
	if r.IsSubtype(dog, animal) {
		t.Errorf("*Dog does not fit *Animal")
	}
}

func TestContainers(t *testing.T) {
	r := newRegistry(t)
	m := map[string]int{"b": 2, "a": 1}
	es, err := r.Entries(ValueOf(TypeFor[map[string]int](r), m))
	if err != nil {
		t.Fatal(err)
	}
	if len(es) != 2 || es[0].Key != "a" || es[1].Key != "b" {
		t.Errorf("entries not sorted: %v", es)
	}
	mv, err := r.MakeMap(TypeFor[map[string]int](r), es)
	if err != nil || !reflect.DeepEqual(mv.Interface(), m) {
		t.Errorf("MakeMap: %v %v", mv, err)
	}

	ct := TypeFor[Coord](r)
	comps, err := r.Components(ValueOf(ct, Coord{1, 2, "x"}))
	if err != nil || len(comps) != 3 {
		t.Fatalf("components: %v %v", comps, err)
	}
	if _, err := r.MakeTuple(ct, comps[:2]); !errors.Is(err, ErrArity) {
		t.Errorf("expected ErrArity, got %v", err)
	}
	tv, err := r.MakeTuple(ct, comps)
	if err != nil || tv.Interface() != (Coord{1, 2, "x"}) {
		t.Errorf("MakeTuple: %v %v", tv, err)
	}
}

func TestEnums(t *testing.T) {
	r := newRegistry(t)
	if _, err := RegisterEnum[Color](r); !errors.Is(err, ErrRegistration) {
		t.Errorf("duplicate registration: %v", err)
	}
	type Dup int
	if _, err := RegisterEnum[Dup](r, Enum("A", 1), Enum("A", 2)); !errors.Is(err, ErrRegistration) {
		t.Errorf("duplicate enumerator: %v", err)
	}
	pt := TypeFor[Perm](r)
	v, err := r.MakeEnum(pt, int64(PermRead|PermExec))
	if err != nil || v.Interface() != PermRead|PermExec {
		t.Errorf("MakeEnum: %v %v", v, err)
	}
	if _, err := r.MakeEnum(pt, 256); !errors.Is(err, ErrConvert) {
		t.Errorf("expected overflow, got %v", err)
	}
	if n, ok := r.EnumValue(v); !ok || n != 5 {
		t.Errorf("EnumValue: %d %v", n, ok)
	}
}

func TestDynamicProperties(t *testing.T) {
	r := newRegistry(t)
	d := &Dog{}
	inst := ValueOf(TypeFor[*Dog](r), d)
	if err := r.SetDynamicProperty(inst, "color", ValueOf(TypeFor[string](r), "brown")); err != nil {
		t.Fatal(err)
	}
	d.SetProperty("age", 3)
	if got := d.DynamicPropertyNames(); !reflect.DeepEqual(got, []string{"color", "age"}) {
		t.Errorf("got %v", got)
	}
	d.SetProperty("color", nil)
	if _, ok := d.Property("color"); ok {
		t.Errorf("property not removed")
	}
	if err := r.SetDynamicProperty(ValueOf(TypeFor[Dims](r), Dims{}), "x", Value{}); !errors.Is(err, ErrNotObject) {
		t.Errorf("expected ErrNotObject, got %v", err)
	}
}

func TestPropertyName(t *testing.T) {
	for in, want := range map[string]string{
		"Data":    "data",
		"URLPath": "urlPath",
		"ID":      "id",
		"P1":      "p1",
		"myField": "myField",
	} {
		if got := propertyName(in); got != want {
			t.Errorf("%s: got %s want %s", in, got, want)
		}
	}
}

type Levels []int

type Weights map[string]float64

func TestNamedContainerNames(t *testing.T) {
	for _, first := range []bool{true, false} {
		r := newRegistry(t)
		if first {
			TypeFor[Levels](r)
			TypeFor[Weights](r)
		}
		plain := TypeFor[[]int](r)
		plainMap := TypeFor[map[string]float64](r)
		named := TypeFor[Levels](r)
		namedMap := TypeFor[Weights](r)

		if plain.Name() != "List<int>" || plainMap.Name() != "Map<string, float64>" {
			t.Errorf("named first %v: got %s and %s", first, plain.Name(), plainMap.Name())
		}
		if named.Name() != "Levels" || namedMap.Name() != "Weights" {
			t.Errorf("named first %v: got %s and %s", first, named.Name(), namedMap.Name())
		}
		if !named.Is(FlagList) || named.Elem() != TypeFor[int](r) {
			t.Errorf("Levels: flags %v elem %v", named.Flags(), named.Elem())
		}
		if !namedMap.Is(FlagMap) || len(namedMap.Params()) != 2 || namedMap.Elem() != TypeFor[float64](r) {
			t.Errorf("Weights: flags %v params %v", namedMap.Flags(), namedMap.Params())
		}
		if got, ok := r.TypeByName("List<int>"); !ok || got != plain {
			t.Errorf("named first %v: List<int> resolves to %v", first, got)
		}
	}
}
