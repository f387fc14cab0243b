package serializer

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/signadot/objson/debug"
	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
)

type registered struct {
	c        Converter
	priority int
	seq      int
}

type deserKey struct {
	kind ir.Type
	t    *meta.Type
}

// converters holds the registered converters in dispatch order: higher
// priority first, and among equal priorities the most recently registered
// first. Lookups are cached per type, a nil entry recording that no
// converter matched.
type converters struct {
	mu     sync.RWMutex
	seq    int
	all    []registered
	byKind map[ir.Type][]registered

	serCache   map[*meta.Type]Converter
	deserCache map[deserKey]Converter

	log *slog.Logger
}

func newConverters(log *slog.Logger) *converters {
	return &converters{
		byKind:     map[ir.Type][]registered{},
		serCache:   map[*meta.Type]Converter{},
		deserCache: map[deserKey]Converter{},
		log:        log,
	}
}

func dispatchOrder(a, b registered) int {
	if a.priority != b.priority {
		return cmp.Compare(b.priority, a.priority)
	}
	return cmp.Compare(b.seq, a.seq)
}

func (cs *converters) register(c Converter) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.seq++
	r := registered{c: c, priority: c.Priority(), seq: cs.seq}
	cs.all = append(cs.all, r)
	slices.SortFunc(cs.all, dispatchOrder)
	for _, k := range c.Kinds() {
		cs.byKind[k] = append(cs.byKind[k], r)
		slices.SortFunc(cs.byKind[k], dispatchOrder)
	}
	clear(cs.serCache)
	clear(cs.deserCache)
	if debug.Registry() {
		cs.log.Debug("registered converter", "converter", fmt.Sprintf("%T", c), "priority", r.priority, "kinds", c.Kinds())
	}
}

// serializer returns the converter for serializing values of t, or nil.
func (cs *converters) serializer(t *meta.Type) Converter {
	cs.mu.RLock()
	c, ok := cs.serCache[t]
	cs.mu.RUnlock()
	if ok {
		return c
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c = first(cs.all, t)
	cs.serCache[t] = c
	if debug.Dispatch() {
		cs.log.Debug("resolved serializer", "type", t.Name(), "converter", fmt.Sprintf("%T", c))
	}
	return c
}

// deserializer returns the converter for deserializing JSON of the given
// kind into t, or nil.
func (cs *converters) deserializer(kind ir.Type, t *meta.Type) Converter {
	key := deserKey{kind: kind, t: t}
	cs.mu.RLock()
	c, ok := cs.deserCache[key]
	cs.mu.RUnlock()
	if ok {
		return c
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c = first(cs.byKind[kind], t)
	cs.deserCache[key] = c
	if debug.Dispatch() {
		cs.log.Debug("resolved deserializer", "kind", kind, "type", t.Name(), "converter", fmt.Sprintf("%T", c))
	}
	return c
}

func first(rs []registered, t *meta.Type) Converter {
	for _, r := range rs {
		if r.c.CanConvert(t) {
			return r.c
		}
	}
	return nil
}
