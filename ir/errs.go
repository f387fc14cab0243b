package ir

import "errors"

var (
	ErrNotObject = errors.New("not an object")
	ErrNotNumber = errors.New("not a number")
)
