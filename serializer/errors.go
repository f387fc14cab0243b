package serializer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/objson/meta"
)

// Error kinds. Every error returned by a Serializer is an *Error whose Kind
// is one of these; the validation and construction kinds wrap
// ErrDeserialization.
var (
	ErrSerialization   = errors.New("serialization error")
	ErrDeserialization = errors.New("deserialization error")

	ErrConstruction      = fmt.Errorf("%w: construction failed", ErrDeserialization)
	ErrValidation        = fmt.Errorf("%w: validation failed", ErrDeserialization)
	ErrMissingProperties = fmt.Errorf("%w: missing properties", ErrValidation)
	ErrExtraProperty     = fmt.Errorf("%w: extra property", ErrValidation)
	ErrPolymorphism      = fmt.Errorf("%w: polymorphism", ErrDeserialization)
	ErrInvalidEnum       = fmt.Errorf("%w: invalid enum value", ErrDeserialization)
)

// Frame is one step of a property trace: the property name and the name of
// its declared type.
type Frame struct {
	Property string
	Type     string
}

func (f Frame) String() string {
	return f.Property + " (" + f.Type + ")"
}

// Error is the error type of the serializer.
type Error struct {
	Kind    error
	Message string
	// Missing names the required properties absent from the input when
	// Kind is ErrMissingProperties.
	Missing []string
	// Location is the JSON path of the node being converted when a
	// deserialization failed.
	Location string
	Err      error

	// frames are innermost first
	frames []Frame
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// asError returns err as an *Error, wrapping it with kind if it is not one
// already.
func asError(kind, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: kind, Err: err}
}

// withProperty records that err unwound through property name of declared
// type t.
func withProperty(kind, err error, name string, t *meta.Type) error {
	e := asError(kind, err)
	e.frames = append(e.frames, Frame{Property: name, Type: t.Name()})
	return e
}

// Trace returns the property path to the failure, outermost first.
func (e *Error) Trace() []Frame {
	res := make([]Frame, len(e.frames))
	for i, f := range e.frames {
		res[len(e.frames)-1-i] = f
	}
	return res
}

// PropertyPath joins the trace property names with dots.
func (e *Error) PropertyPath() string {
	names := make([]string, len(e.frames))
	for i, f := range e.Trace() {
		names[i] = f.Property
	}
	return strings.Join(names, ".")
}

func (e *Error) Error() string {
	var b strings.Builder
	kind := e.Kind
	if kind == nil {
		kind = ErrDeserialization
	}
	b.WriteString(kind.Error())
	if len(e.frames) != 0 {
		b.WriteString(" at ")
		b.WriteString(e.PropertyPath())
	}
	for _, part := range []string{e.Message, e.cause()} {
		if part != "" {
			b.WriteString(": ")
			b.WriteString(part)
		}
	}
	return b.String()
}

func (e *Error) cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	res := make([]error, 0, 2)
	if e.Kind != nil {
		res = append(res, e.Kind)
	}
	if e.Err != nil {
		res = append(res, e.Err)
	}
	return res
}
