// Package ir provides the JSON value tree used by objson.
//
// # Node Structure
//
// A Node represents a single JSON value. The Type field selects which of the
// other fields are meaningful:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Int64, Float64 or Number (see below)
//   - StringType: String
//   - ArrayType: Values, in order
//   - ObjectType: Fields[i] is the string key for Values[i]
//
// Object keys are unique and keep insertion order, so encoding a tree built
// from declared properties reproduces the declaration order.
//
// # Numbers
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: as a string fallback if neither Int64 nor Float64 can represent it
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("name"), Val: ir.FromString("x")},
//	    {Key: ir.FromString("size"), Val: ir.FromInt(3)},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// Nodes maintain parent links; Path returns a JSONPath-style location which
// is used to report where a conversion failed.
//
// # Thread Safety
//
// Node structures are not thread-safe.
package ir
