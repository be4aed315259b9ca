// Package overlay draws tracking annotations onto video frames.
package overlay

import (
	"image"
	"image/color"

	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

// Default annotation colors.
var (
	Green = color.RGBA{0, 255, 0, 0}
	Red   = color.RGBA{255, 0, 0, 0}
)

// ZoneColors are the marker colors of zones 0, 1, 2... from left to right.
// Green stays reserved for a point in no zone.
var ZoneColors = []color.RGBA{
	Red,
	{0, 0, 255, 0},
	{255, 255, 0, 0},
	{255, 0, 255, 0},
	{0, 255, 255, 0},
}

// Renderer handles frame annotation
type Renderer struct {
	normal    color.RGBA
	highlight color.RGBA
	thickness int
	fontScale float64
	radius    int
}

// NewRenderer creates a renderer with green outlines and red highlights.
func NewRenderer() *Renderer {
	return &Renderer{
		normal:    Green,
		highlight: Red,
		thickness: 2,
		fontScale: 0.9,
		radius:    5,
	}
}

func (r *Renderer) color(highlight bool) color.RGBA {
	if highlight {
		return r.highlight
	}
	return r.normal
}

// Region outlines a region and writes its label just above the top-left corner.
func (r *Renderer) Region(img *gocv.Mat, rect zone.Rect, label string, highlight bool) {
	c := r.color(highlight)
	gocv.Rectangle(img, rect.Image(), c, r.thickness)
	if label != "" {
		gocv.PutText(img, label, image.Pt(rect.X, rect.Y-10), gocv.FontHersheySimplex, r.fontScale, c, r.thickness)
	}
}

// SubZone outlines a derived sub-region.
func (r *Renderer) SubZone(img *gocv.Mat, rect zone.Rect) {
	gocv.Rectangle(img, rect.Image(), r.highlight, r.thickness)
}

// ZoneColor returns the marker color for the zone at index, or the normal
// color when index is negative.
func (r *Renderer) ZoneColor(index int) color.RGBA {
	if index < 0 {
		return r.normal
	}
	return ZoneColors[index%len(ZoneColors)]
}

// Marker draws the tracked point as a filled circle in the color of the
// zone at index. A negative index means the point is in no zone.
func (r *Renderer) Marker(img *gocv.Mat, p zone.Point, index int) {
	gocv.Circle(img, p.Int(), r.radius, r.ZoneColor(index), -1)
}
