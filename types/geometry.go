// Package types holds leaf value types that have no standard library
// equivalent.
package types

type Point struct {
	X, Y float64
}

type Size struct {
	Width, Height float64
}

type Line struct {
	P1, P2 Point
}

type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}
