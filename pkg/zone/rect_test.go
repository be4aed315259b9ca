package zone

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{25, 35}, true},
		{"left edge", Point{10, 30}, true},
		{"right edge", Point{40, 30}, true},
		{"top edge", Point{20, 20}, true},
		{"bottom edge", Point{20, 60}, true},
		{"top-left corner", Point{10, 20}, true},
		{"top-right corner", Point{40, 20}, true},
		{"bottom-left corner", Point{10, 60}, true},
		{"bottom-right corner", Point{40, 60}, true},
		{"outside left", Point{9.9, 30}, false},
		{"outside right", Point{40.1, 30}, false},
		{"outside top", Point{20, 19.5}, false},
		{"outside bottom", Point{20, 61}, false},
		{"origin", Point{0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.p, r); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.p, r, got, tt.want)
			}
		})
	}
}

func TestCentral(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		fraction float64
		want     Rect
	}{
		{"divisible", Rect{0, 0, 90, 60}, DefaultCenterFraction, Rect{15, 10, 60, 40}},
		{"offset", Rect{100, 50, 30, 30}, DefaultCenterFraction, Rect{105, 55, 20, 20}},
		{"truncates", Rect{0, 0, 100, 100}, DefaultCenterFraction, Rect{17, 17, 66, 66}},
		{"full", Rect{5, 5, 10, 10}, 1, Rect{5, 5, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Central(tt.r, tt.fraction)); diff != "" {
				t.Errorf("Central mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStrips(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		n    int
		want []Rect
	}{
		{"halves", Rect{0, 0, 100, 50}, 2, []Rect{{0, 0, 50, 50}, {50, 0, 50, 50}}},
		{"thirds with remainder", Rect{10, 0, 100, 20}, 3, []Rect{{10, 0, 33, 20}, {43, 0, 33, 20}, {76, 0, 34, 20}}},
		{"single", Rect{3, 4, 5, 6}, 1, []Rect{{3, 4, 5, 6}}},
		{"zero", Rect{0, 0, 10, 10}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Strips(tt.r, tt.n)); diff != "" {
				t.Errorf("Strips mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRectClamp(t *testing.T) {
	r := Rect{X: -5, Y: 90, W: 20, H: 20}
	got := r.Clamp(100, 100)
	want := Rect{X: 0, Y: 90, W: 15, H: 10}
	if got != want {
		t.Errorf("Clamp = %v, want %v", got, want)
	}

	outside := Rect{X: 200, Y: 200, W: 10, H: 10}.Clamp(100, 100)
	if outside.Valid() {
		t.Errorf("Clamp of rect outside frame should be empty, got %v", outside)
	}
}

func TestRectImageRoundTrip(t *testing.T) {
	r := Rect{X: 7, Y: 8, W: 9, H: 10}
	if got := r.Image(); got != image.Rect(7, 8, 16, 18) {
		t.Errorf("Image() = %v", got)
	}
	if got := FromImage(r.Image()); got != r {
		t.Errorf("FromImage(Image()) = %v, want %v", got, r)
	}
}

func TestPointInt(t *testing.T) {
	p := Point{X: 19.99, Y: 9.5}
	if got := p.Int(); got != image.Pt(19, 9) {
		t.Errorf("Int() = %v, want (19,9)", got)
	}
}
