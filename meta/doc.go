// Package meta is the introspection layer of objson.
//
// A Registry assigns a Type descriptor to every Go type it is asked about.
// Types are classified by flags:
//
//   - scalars: bool, integers, floats, strings and named types of them
//   - objects: pointers to structs embedding Object (exclusive references),
//     Shared[C] and Tracking[C] (shared and weak references), and
//     interfaces registered with RegisterInterface (polymorphic references)
//   - gadgets: other structs, converted by value
//   - containers: slices (List<T>), string keyed maps (Map<K, V>), Pair[A, B]
//     and structs registered with RegisterTuple (Tuple<A, B, ...>)
//   - enumerations and flags registered with RegisterEnum and RegisterFlags
//   - leaves with a fixed JSON form (Time, UUID, URL, ...)
//
// Type names are stable and parseable: container names carry the names of
// their parameters, so a converter can recover the element type of
// "List<Map<string, int>>" with ParseTypeName and TypeByName.
//
// Properties of gadgets and classes are the exported fields in declaration
// order, with fields of embedded structs in place of the embedding field.
// Field names are lower camel cased; the objson struct tag overrides this:
//
//	type Window struct {
//		meta.Object
//		Title string `objson:"name=caption"`
//		Cache []byte `objson:"notstored"`
//		ID    string `objson:"readonly"`
//		tmp   int
//	}
//
// Every class has the identity property "objectName" first.
//
// A Registry is safe for concurrent use.
package meta
