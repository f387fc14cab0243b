// Package serializer converts values described by a [meta.Registry] to and
// from JSON trees ([ir.Node]).
//
// Conversion is dispatched to [Converter] strategies. For each value the
// Serializer picks the highest priority converter whose CanConvert accepts
// the declared type (and, when deserializing, whose Kinds include the JSON
// node type); ties go to the most recently registered converter. Converters
// recurse into nested values through the [Helper] they are given. Values no
// converter accepts are mapped directly: scalars to JSON scalars and, when
// deserializing, JSON to bool, int64, float64, string, []any and
// map[string]any.
//
// Objects are structs embedding [meta.Object] and are referenced through
// *C, [meta.Shared], [meta.Tracking] or an interface registered with
// [meta.RegisterInterface]. With polymorphism enabled an object whose
// dynamic class differs from its declared type is written with its class
// name under "@class":
//
//	s := serializer.New(reg, serializer.WithConfig(serializer.Config{
//		Polymorphing: serializer.Enabled,
//	}))
//	node, err := s.SerializeAs(meta.TypeFor[Animal](reg), dog)
//	// {"@class": "Dog", "name": "rex", "breed": "lab"}
//
// Errors are *[Error] values carrying a Kind (errors.Is works against the
// Err* sentinels) and the trace of properties the failure unwound through.
package serializer
