package model

import "fmt"

// Point is a position in screen coordinates.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width and height pair.
type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an axis aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      int `json:"x" yaml:"x" toml:"x"`
	Y      int `json:"y" yaml:"y" toml:"y"`
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// NewRect builds a Rect from a position and a size.
func NewRect(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether r and o share a non-empty area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Width, r.Height, r.X, r.Y)
}

// Margins is a four sided inset. Values are signed; negative margins
// pull neighbouring elements closer together.
type Margins struct {
	Left   int `json:"left" yaml:"left" toml:"left"`
	Top    int `json:"top" yaml:"top" toml:"top"`
	Right  int `json:"right" yaml:"right" toml:"right"`
	Bottom int `json:"bottom" yaml:"bottom" toml:"bottom"`
}

// NewMargins builds margins in left, top, right, bottom order.
func NewMargins(left, top, right, bottom int) Margins {
	return Margins{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Horizontal returns Left + Right.
func (m Margins) Horizontal() int {
	return m.Left + m.Right
}

// Vertical returns Top + Bottom.
func (m Margins) Vertical() int {
	return m.Top + m.Bottom
}
