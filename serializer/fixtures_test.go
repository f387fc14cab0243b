package serializer

import (
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
	"github.com/signadot/objson/parse"
	"github.com/signadot/objson/types"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type Color int

const (
	Red Color = iota
	Green
	Blue
)

type Opt uint16

const (
	FlagA Opt = 1 << iota
	FlagB
	FlagC
	FlagD

	FlagAll = FlagA | FlagB | FlagC
)

type ChildObject struct {
	meta.Object
	Data int
}

type ParentObject struct {
	meta.Object
	Child *ChildObject
	Items []int
	Color Color
	Opts  Opt
}

type Settings struct {
	Name  string
	Count int
}

type IDs []int

type Scores map[string]int

type Roster struct {
	Plain  []int
	Named  IDs
	Scores Scores
	Totals map[string]int
}

type Animal interface {
	meta.Objecter
	Sound() string
}

type Base struct {
	meta.Object
	Name string
}

func (*Base) Sound() string { return "..." }

type Dog struct {
	Base
	Breed string
}

func (*Dog) Sound() string { return "woof" }

type Keeper struct {
	meta.Object
	Name string
}

type Zoo struct {
	meta.Object
	Star   Animal
	Keeper meta.Shared[Keeper]
	Mascot meta.Tracking[Keeper]
}

type Link struct {
	meta.Object
	Name string
	Next *Link
}

type Span struct {
	From, To int
}

type Containers struct {
	Empty  []int
	One    []string
	Three  []float64
	Nested [][]int
	Scores map[string]int
	Labels map[string][]string
	Range  meta.Pair[string, int]
	Span   Span
	Cfg    *Settings
}

type Record struct {
	ID      uuid.UUID
	When    time.Time
	Took    time.Duration
	Link    *url.URL
	Lang    language.Tag
	Pattern *regexp.Regexp
	Ver     types.Version
	Pos     types.Point
	Area    types.Rect
	Edge    types.Line
	Box     types.Size
	Raw     []byte
	Extra   *ir.Node
}

func newTestRegistry(t *testing.T) *meta.Registry {
	t.Helper()
	r := meta.NewRegistry()
	_, err := meta.RegisterEnum[Color](r,
		meta.Enum("Red", Red),
		meta.Enum("Green", Green),
		meta.Enum("Blue", Blue),
	)
	require.NoError(t, err)
	_, err = meta.RegisterFlags[Opt](r,
		meta.Enum("FlagA", FlagA),
		meta.Enum("FlagB", FlagB),
		meta.Enum("FlagC", FlagC),
		meta.Enum("FlagD", FlagD),
		meta.Enum("FlagAll", FlagAll),
	)
	require.NoError(t, err)
	_, err = meta.RegisterInterface[Animal, Base](r)
	require.NoError(t, err)
	_, err = meta.RegisterClass[Dog](r)
	require.NoError(t, err)
	_, err = meta.RegisterTuple[Span](r)
	require.NoError(t, err)
	return r
}

func newTestSerializer(t *testing.T, cfg Config, opts ...Option) *Serializer {
	t.Helper()
	return New(newTestRegistry(t), append([]Option{WithConfig(cfg)}, opts...)...)
}

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreTypes(meta.Object{}),
	cmpopts.EquateEmpty(),
}

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(s))
	require.NoError(t, err)
	return node
}
