package meta

import "errors"

var (
	ErrUnknownType      = errors.New("unknown type")
	ErrNotConstructible = errors.New("type not constructible")
	ErrNotWritable      = errors.New("property not writable")
	ErrNotReadable      = errors.New("property not readable")
	ErrNotObject        = errors.New("not an object")
	ErrConvert          = errors.New("cannot convert")
	ErrRegistration     = errors.New("invalid registration")
	ErrNoSuchProperty   = errors.New("no such property")
	ErrWrongContainer   = errors.New("value is not a container")
	ErrArity            = errors.New("wrong arity")
)
