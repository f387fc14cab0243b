package serializer

import (
	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
)

// Converter priorities. Converters with higher priority are consulted
// first.
const (
	PriorityExtremelyLow  = -0xFFFFFF
	PriorityVeryLow       = -0xFFFF
	PriorityLow           = -0xFF
	PriorityStandard      = 0
	PriorityHigh          = 0xFF
	PriorityVeryHigh      = 0xFFFF
	PriorityExtremelyHigh = 0xFFFFFF
)

// A Converter converts one category of types between meta values and JSON.
//
// Priority and Kinds are read once when the converter is registered.
// CanConvert must be a pure function of the type: its answer is cached.
type Converter interface {
	Priority() int
	// Kinds lists the JSON node types Deserialize accepts.
	Kinds() []ir.Type
	CanConvert(t *meta.Type) bool
	Serialize(t *meta.Type, v meta.Value, h Helper) (*ir.Node, error)
	Deserialize(t *meta.Type, node *ir.Node, owner meta.Objecter, h Helper) (meta.Value, error)
}

// Helper is handed to converters for the duration of one top level call.
// Nested values are converted by calling back into it.
type Helper interface {
	Config() Config
	Reflector() meta.Reflector
	SerializeSubtype(t *meta.Type, v meta.Value) (*ir.Node, error)
	DeserializeSubtype(t *meta.Type, node *ir.Node, owner meta.Objecter) (meta.Value, error)
}
