// Package zone provides region geometry and zone classification for arena tracking.
package zone

import (
	"fmt"
	"image"
)

// DefaultCenterFraction is the share of a region's width and height covered
// by its central sub-region.
const DefaultCenterFraction = 2.0 / 3.0

// Point is a position in pixel coordinates.
type Point struct {
	X, Y float64
}

// Add returns the point shifted by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Int truncates both coordinates toward zero.
func (p Point) Int() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// Rect is an axis-aligned rectangle in frame pixel coordinates.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// FromImage converts an image.Rectangle into a Rect.
func FromImage(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Image returns the rectangle as an image.Rectangle (max exclusive).
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Valid reports whether the rectangle has a positive area.
func (r Rect) Valid() bool {
	return r.W > 0 && r.H > 0
}

// Clamp returns the part of the rectangle inside a width x height frame.
func (r Rect) Clamp(width, height int) Rect {
	return FromImage(r.Image().Intersect(image.Rect(0, 0, width, height)))
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: float64(r.X), Y: float64(r.Y)}
}

// String formats the rectangle as x,y,w,h.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}

// Contains reports whether p lies inside r, boundary edges included.
func Contains(p Point, r Rect) bool {
	return p.X >= float64(r.X) && p.X <= float64(r.X+r.W) &&
		p.Y >= float64(r.Y) && p.Y <= float64(r.Y+r.H)
}

// Central returns the sub-region covering fraction of r's width and height,
// centered inside r.
func Central(r Rect, fraction float64) Rect {
	w := int(float64(r.W) * fraction)
	h := int(float64(r.H) * fraction)
	return Rect{
		X: r.X + (r.W-w)/2,
		Y: r.Y + (r.H-h)/2,
		W: w,
		H: h,
	}
}

// Strips splits r into n vertical strips of equal width, left to right.
// The last strip absorbs any remainder so the strips tile r exactly.
func Strips(r Rect, n int) []Rect {
	if n <= 0 {
		return nil
	}
	step := r.W / n
	strips := make([]Rect, n)
	for i := range strips {
		strips[i] = Rect{X: r.X + i*step, Y: r.Y, W: step, H: r.H}
	}
	strips[n-1].W = r.X + r.W - strips[n-1].X
	return strips
}
