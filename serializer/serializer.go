package serializer

import (
	"bytes"
	"io"
	"log/slog"
	"sync"

	"github.com/signadot/objson/debug"
	"github.com/signadot/objson/encode"
	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
	"github.com/signadot/objson/parse"

	"github.com/uber-go/tally/v4"
)

// Serializer converts between values described by a meta.Registry and JSON.
// Configuration changes apply to subsequent calls; a call in progress keeps
// the configuration it started with.
type Serializer struct {
	reg   *meta.Registry
	convs *converters
	log   *slog.Logger
	stats *metrics

	mu  sync.RWMutex
	cfg Config

	extra []Converter
	scope tally.Scope
}

type Option func(*Serializer)

func WithConfig(c Config) Option {
	return func(s *Serializer) { s.cfg = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Serializer) { s.log = l }
}

// WithMetrics reports call, error and fallback counts to scope.
func WithMetrics(scope tally.Scope) Option {
	return func(s *Serializer) { s.scope = scope }
}

// WithConverters registers cs after the default converters.
func WithConverters(cs ...Converter) Option {
	return func(s *Serializer) { s.extra = append(s.extra, cs...) }
}

// New returns a Serializer for the types of reg with the default
// converters registered. A nil reg gets a fresh registry.
func New(reg *meta.Registry, opts ...Option) *Serializer {
	if reg == nil {
		reg = meta.NewRegistry()
	}
	s := &Serializer{
		reg:   reg,
		log:   debug.Logger(),
		scope: tally.NoopScope,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stats = newMetrics(s.scope)
	s.convs = newConverters(s.log)
	for _, c := range DefaultConverters() {
		s.convs.register(c)
	}
	for _, c := range s.extra {
		s.convs.register(c)
	}
	s.extra = nil
	return s
}

// DefaultConverters returns the converters every Serializer starts with.
func DefaultConverters() []Converter {
	cs := []Converter{
		ObjectConverter{},
		GadgetConverter{},
		PointerConverter{},
		ListConverter{},
		MapConverter{},
		TupleConverter{},
		EnumConverter{},
	}
	return append(cs, LeafConverters()...)
}

func (s *Serializer) Registry() *meta.Registry {
	return s.reg
}

// RegisterConverter adds c to the converters consulted by s. Among
// converters of equal priority the last registered wins.
func (s *Serializer) RegisterConverter(c Converter) {
	s.convs.register(c)
}

func (s *Serializer) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Serializer) SetConfig(c Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = c
}

func (s *Serializer) update(f func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.cfg)
}

func (s *Serializer) SetAllowDefaultNull(v bool) {
	s.update(func(c *Config) { c.AllowDefaultNull = v })
}

func (s *Serializer) SetKeepObjectName(v bool) {
	s.update(func(c *Config) { c.KeepObjectName = v })
}

func (s *Serializer) SetEnumAsString(v bool) {
	s.update(func(c *Config) { c.EnumAsString = v })
}

func (s *Serializer) SetValidation(v ValidationFlags) {
	s.update(func(c *Config) { c.Validation = v })
}

func (s *Serializer) SetPolymorphing(p Polymorphing) {
	s.update(func(c *Config) { c.Polymorphing = p })
}

// Serialize converts v using the type of its dynamic value.
func (s *Serializer) Serialize(v any) (*ir.Node, error) {
	return s.SerializeAs(s.reg.TypeOf(v), v)
}

// SerializeAs converts v declared as type t. The declared type matters for
// polymorphism: an object serialized through an interface type may carry
// "@class".
func (s *Serializer) SerializeAs(t *meta.Type, v any) (*ir.Node, error) {
	return s.SerializeValue(meta.ValueOf(t, v))
}

func (s *Serializer) SerializeValue(v meta.Value) (*ir.Node, error) {
	s.stats.serializeCalls.Inc(1)
	c := s.newCall()
	node, err := c.SerializeSubtype(v.Type(), v)
	if err != nil {
		s.stats.failed(err)
		return nil, err
	}
	return node, nil
}

// SerializeTo serializes v and writes it to w as JSON text.
func (s *Serializer) SerializeTo(w io.Writer, v any, opts ...encode.EncodeOption) error {
	node, err := s.Serialize(v)
	if err != nil {
		return err
	}
	if err := encode.Encode(node, w, opts...); err != nil {
		return wrapError(ErrSerialization, err, "write")
	}
	return nil
}

// SerializeToBytes returns v as compact JSON text.
func (s *Serializer) SerializeToBytes(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := s.SerializeTo(buf, v, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize converts node to a value of type t. Objects created along
// the way are owned by owner, which may be nil.
func (s *Serializer) Deserialize(node *ir.Node, t *meta.Type, owner meta.Objecter) (meta.Value, error) {
	s.stats.deserializeCalls.Inc(1)
	c := s.newCall()
	v, err := c.DeserializeSubtype(t, node, owner)
	if err != nil {
		s.stats.failed(err)
		return meta.Value{}, err
	}
	return v, nil
}

// DeserializeFrom reads one JSON document from r and deserializes it.
func (s *Serializer) DeserializeFrom(r io.Reader, t *meta.Type, owner meta.Objecter) (meta.Value, error) {
	node, err := parse.ParseReader(r)
	if err != nil {
		s.stats.failed(err)
		return meta.Value{}, wrapError(ErrDeserialization, err, "read")
	}
	return s.Deserialize(node, t, owner)
}

func (s *Serializer) DeserializeFromBytes(d []byte, t *meta.Type, owner meta.Objecter) (meta.Value, error) {
	return s.DeserializeFrom(bytes.NewReader(d), t, owner)
}

// DeserializeAs deserializes node into a T.
func DeserializeAs[T any](s *Serializer, node *ir.Node, owner meta.Objecter) (T, error) {
	var zero T
	v, err := s.Deserialize(node, meta.TypeFor[T](s.reg), owner)
	if err != nil {
		return zero, err
	}
	res, ok := v.Interface().(T)
	if !ok {
		// null into an interface or pointer
		return zero, nil
	}
	return res, nil
}

// DeserializeBytesAs parses d and deserializes it into a T.
func DeserializeBytesAs[T any](s *Serializer, d []byte, owner meta.Objecter) (T, error) {
	node, err := parse.Parse(d)
	if err != nil {
		var zero T
		s.stats.failed(err)
		return zero, wrapError(ErrDeserialization, err, "read")
	}
	return DeserializeAs[T](s, node, owner)
}
