package overlay

import (
	"testing"

	"github.com/teslashibe/go-arena/pkg/zone"
	"gocv.io/x/gocv"
)

func blankFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 100, gocv.MatTypeCV8UC3)
}

func TestMarkerColors(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name  string
		index int
		wantB uint8
		wantG uint8
		wantR uint8
	}{
		{"no zone is green", -1, 0, 255, 0},
		{"first zone is red", 0, 0, 0, 255},
		{"second zone is blue", 1, 255, 0, 0},
		{"third zone is yellow", 2, 0, 255, 255},
		{"palette wraps", len(ZoneColors), 0, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := blankFrame()
			defer img.Close()

			r.Marker(&img, zone.Point{X: 50.7, Y: 40.2}, tt.index)

			vec := img.GetVecbAt(40, 50)
			if vec[0] != tt.wantB || vec[1] != tt.wantG || vec[2] != tt.wantR {
				t.Errorf("pixel BGR = %v, want [%d %d %d]", vec, tt.wantB, tt.wantG, tt.wantR)
			}
		})
	}
}

func TestRegionOutline(t *testing.T) {
	r := NewRenderer()
	img := blankFrame()
	defer img.Close()

	r.Region(&img, zone.Rect{X: 20, Y: 30, W: 40, H: 40}, "1", false)

	if vec := img.GetVecbAt(30, 40); vec[1] != 255 {
		t.Errorf("top edge pixel = %v, want green", vec)
	}
	if vec := img.GetVecbAt(50, 40); vec[1] != 0 {
		t.Errorf("interior pixel = %v, want untouched", vec)
	}
}
