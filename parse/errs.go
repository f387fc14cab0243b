package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse     = errors.New("parse error")
	ErrTrailing  = fmt.Errorf("%w: trailing data after value", ErrParse)
	ErrEmptyJSON = fmt.Errorf("%w: no value", ErrParse)
)
