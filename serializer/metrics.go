package serializer

import (
	"errors"

	"github.com/uber-go/tally/v4"
)

type metrics struct {
	scope            tally.Scope
	serializeCalls   tally.Counter
	deserializeCalls tally.Counter
	fallbacks        tally.Counter
}

func newMetrics(scope tally.Scope) *metrics {
	return &metrics{
		scope:            scope,
		serializeCalls:   scope.Counter("serialize_calls"),
		deserializeCalls: scope.Counter("deserialize_calls"),
		fallbacks:        scope.Counter("fallbacks"),
	}
}

func (m *metrics) failed(err error) {
	m.scope.Tagged(map[string]string{"kind": errorKind(err)}).Counter("errors").Inc(1)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingProperties), errors.Is(err, ErrExtraProperty):
		return "validation"
	case errors.Is(err, ErrConstruction):
		return "construction"
	case errors.Is(err, ErrPolymorphism):
		return "polymorphism"
	case errors.Is(err, ErrInvalidEnum):
		return "enum"
	case errors.Is(err, ErrSerialization):
		return "serialization"
	default:
		return "deserialization"
	}
}
