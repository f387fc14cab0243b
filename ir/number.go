package ir

import (
	"fmt"
	"math"
	"strconv"
)

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

// FromUint places v under Int64 when it fits and under Number otherwise.
func FromUint(v uint64) *Node {
	if v <= math.MaxInt64 {
		return FromInt(int64(v))
	}
	return &Node{
		Type:   NumberType,
		Number: strconv.FormatUint(v, 10),
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromNumber classifies the JSON number literal s.
func FromNumber(s string) (*Node, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return FromInt(i), nil
	}
	// integers beyond int64 keep their text
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return &Node{Type: NumberType, Number: s}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return FromFloat(f), nil
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return &Node{Type: NumberType, Number: s}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotNumber, s)
}

// NumberText returns the JSON literal for a number node.
func (y *Node) NumberText() string {
	switch {
	case y.Int64 != nil:
		return strconv.FormatInt(*y.Int64, 10)
	case y.Float64 != nil:
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
	default:
		return y.Number
	}
}

// AsFloat64 returns the value of a number node as a float64.
func (y *Node) AsFloat64() (float64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	switch {
	case y.Int64 != nil:
		return float64(*y.Int64), true
	case y.Float64 != nil:
		return *y.Float64, true
	}
	f, err := strconv.ParseFloat(y.Number, 64)
	return f, err == nil
}

// AsInt64 returns the value of a number node if it is integral and fits.
func (y *Node) AsInt64() (int64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return *y.Int64, true
	}
	if y.Float64 != nil {
		f := *y.Float64
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	i, err := strconv.ParseInt(y.Number, 10, 64)
	return i, err == nil
}

// AsUint64 returns the value of a number node if it is a non negative
// integer that fits.
func (y *Node) AsUint64() (uint64, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	if i, ok := y.AsInt64(); ok {
		if i < 0 {
			return 0, false
		}
		return uint64(i), true
	}
	if y.Number != "" {
		u, err := strconv.ParseUint(y.Number, 10, 64)
		return u, err == nil
	}
	return 0, false
}
