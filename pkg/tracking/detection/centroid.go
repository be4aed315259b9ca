package detection

import (
	"image"
	"math"

	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

// Epsilon keeps the centroid finite for degenerate contours.
const Epsilon = 1e-5

// Estimate finds the largest external contour in mask and returns its
// area-weighted centroid relative to the mask's top-left corner.
// With no contour it returns (0, 0) and false.
func Estimate(mask gocv.Mat) (zone.Point, bool) {
	if mask.Empty() {
		return zone.Point{}, false
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()

	if contours.Size() == 0 {
		return zone.Point{}, false
	}

	best := 0
	bestArea := -1.0
	for i := 0; i < contours.Size(); i++ {
		// Strictly greater keeps the first contour on ties.
		if area := gocv.ContourArea(contours.At(i)); area > bestArea {
			best = i
			bestArea = area
		}
	}

	m := contourMoments(contours.At(best).ToPoints())
	return zone.Point{
		X: m.m10 / (m.m00 + Epsilon),
		Y: m.m01 / (m.m00 + Epsilon),
	}, true
}

type moments struct {
	m00, m10, m01 float64
}

// contourMoments computes the spatial moments of the polygon bounded by pts
// using Green's theorem, the same way OpenCV treats a contour.
func contourMoments(pts []image.Point) moments {
	n := len(pts)
	if n == 0 {
		return moments{}
	}

	var a00, a10, a01 float64
	prev := pts[n-1]
	for _, p := range pts {
		xp, yp := float64(prev.X), float64(prev.Y)
		x, y := float64(p.X), float64(p.Y)
		cross := xp*y - x*yp
		a00 += cross
		a10 += cross * (xp + x)
		a01 += cross * (yp + y)
		prev = p
	}

	if math.Abs(a00) <= math.SmallestNonzeroFloat32 {
		return moments{}
	}
	if a00 < 0 {
		a00, a10, a01 = -a00, -a10, -a01
	}
	return moments{
		m00: a00 / 2,
		m10: a10 / 6,
		m01: a01 / 6,
	}
}
