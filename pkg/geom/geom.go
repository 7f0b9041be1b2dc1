// Package geom provides the geometry primitives used by the layout engine.
//
// All coordinates are in screen points with the origin at the top-left
// corner and Y growing downwards. Values are float64 so that proportional
// splits (weights, golden-ratio bisection) do not accumulate rounding
// drift between passes.
package geom

import (
	"fmt"
	"math"
)

// Orientation is the main axis along which a container distributes space.
type Orientation int

const (
	// H distributes width among children (children are laid out left to right).
	H Orientation = iota
	// V distributes height among children (children are laid out top to bottom).
	V
)

// Opposite returns the other orientation.
func (o Orientation) Opposite() Orientation {
	if o == H {
		return V
	}
	return H
}

func (o Orientation) String() string {
	if o == H {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation accepts "h", "horizontal", "v" and "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "h", "horizontal":
		return H, nil
	case "v", "vertical":
		return V, nil
	}
	return H, fmt.Errorf("unknown orientation %q", s)
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p offset by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p with other subtracted.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// AddX returns p moved horizontally by dx.
func (p Point) AddX(dx float64) Point { return Point{X: p.X + dx, Y: p.Y} }

// AddY returns p moved vertically by dy.
func (p Point) AddY(dy float64) Point { return Point{X: p.X, Y: p.Y + dy} }

// AddOffset moves p by offset along the main axis of o.
func (p Point) AddOffset(o Orientation, offset float64) Point {
	if o == H {
		return p.AddX(offset)
	}
	return p.AddY(offset)
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Rect is an axis-aligned rectangle described by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// NewRect creates a Rect from a corner and a size.
func NewRect(topLeft Point, size Size) Rect {
	return Rect{X: topLeft.X, Y: topLeft.Y, Width: size.Width, Height: size.Height}
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the width/height pair.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.Right() && r.Y <= p.Y && p.Y <= r.Bottom()
}

// Extent returns the size of r along the main axis of o.
func (r Rect) Extent(o Orientation) float64 {
	if o == H {
		return r.Width
	}
	return r.Height
}

// WithExtent returns a copy of r whose size along o is replaced by v.
func (r Rect) WithExtent(o Orientation, v float64) Rect {
	if o == H {
		r.Width = v
	} else {
		r.Height = v
	}
	return r
}

// Inset shrinks r by the given amounts on each edge. Width and height are
// floored at zero.
func (r Rect) Inset(left, right, top, bottom float64) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  math.Max(0, r.Width-left-right),
		Height: math.Max(0, r.Height-top-bottom),
	}
}

// Clamp returns r with negative width and height floored at zero.
func (r Rect) Clamp() Rect {
	r.Width = math.Max(0, r.Width)
	r.Height = math.Max(0, r.Height)
	return r
}

// Distance returns the Euclidean distance from p to the closest point of r.
func (r Rect) Distance(p Point) float64 {
	dx := math.Max(0, math.Max(r.X-p.X, p.X-r.Right()))
	dy := math.Max(0, math.Max(r.Y-p.Y, p.Y-r.Bottom()))
	return math.Hypot(dx, dy)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f %.2fx%.2f)", r.X, r.Y, r.Width, r.Height)
}

// Insets holds per-edge amounts, used for outer gaps and padding.
type Insets struct {
	Left   float64 `json:"left" bson:"left"`
	Right  float64 `json:"right" bson:"right"`
	Top    float64 `json:"top" bson:"top"`
	Bottom float64 `json:"bottom" bson:"bottom"`
}

// InsetBy shrinks r by in on every edge.
func (r Rect) InsetBy(in Insets) Rect {
	return r.Inset(in.Left, in.Right, in.Top, in.Bottom)
}
