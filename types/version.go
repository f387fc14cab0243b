package types

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var ErrVersion = errors.New("invalid version")

// Version is a dotted sequence of non negative integers such as 1.2.3.
// The zero Version is the null version and prints as "".
type Version struct {
	segments []int
}

func NewVersion(segs ...int) Version {
	return Version{segments: slices.Clone(segs)}
}

func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, nil
	}
	parts := strings.Split(s, ".")
	segs := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrVersion, s)
		}
		segs[i] = n
	}
	return Version{segments: segs}, nil
}

func (v Version) Segments() []int {
	return slices.Clone(v.segments)
}

func (v Version) IsNull() bool {
	return len(v.segments) == 0
}

func (v Version) String() string {
	parts := make([]string, len(v.segments))
	for i, n := range v.segments {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Compare orders versions segment by segment; missing segments count as 0.
func (v Version) Compare(o Version) int {
	n := max(len(v.segments), len(o.segments))
	for i := range n {
		a, b := 0, 0
		if i < len(v.segments) {
			a = v.segments[i]
		}
		if i < len(o.segments) {
			b = o.segments[i]
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

func (v Version) Equal(o Version) bool {
	return slices.Equal(v.segments, o.segments)
}
