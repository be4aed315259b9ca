package detection

import (
	"image"
	"testing"

	"gocv.io/x/gocv"
)

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestRefiner_RemovesSpecks(t *testing.T) {
	r := NewRefiner(DefaultConfig())
	defer r.Close()

	mask := newMask(100, 100)
	defer mask.Close()
	fill(&mask, image.Rect(30, 30, 59, 59))
	mask.SetUCharAt(5, 5, 255)
	mask.SetUCharAt(90, 80, 255)

	clean := gocv.NewMat()
	defer clean.Close()
	r.Refine(mask, &clean)

	if clean.GetUCharAt(5, 5) != 0 || clean.GetUCharAt(90, 80) != 0 {
		t.Error("Expected isolated pixels to be removed")
	}
	if clean.GetUCharAt(45, 45) != 255 {
		t.Error("Expected blob interior to survive")
	}
}

func TestRefiner_BinaryOutput(t *testing.T) {
	r := NewRefiner(DefaultConfig())
	defer r.Close()

	mask := newMask(60, 60)
	defer mask.Close()
	fill(&mask, image.Rect(10, 10, 40, 40))
	// Shadow-valued pixels beside the blob.
	gocv.Rectangle(&mask, image.Rect(41, 10, 50, 40), gray127, -1)

	clean := gocv.NewMat()
	defer clean.Close()
	r.Refine(mask, &clean)

	for row := 0; row < clean.Rows(); row++ {
		for col := 0; col < clean.Cols(); col++ {
			if v := clean.GetUCharAt(row, col); v != 0 && v != 255 {
				t.Fatalf("Pixel (%d,%d) = %d, want 0 or 255", col, row, v)
			}
		}
	}
}

func TestRefiner_StableUnderReapplication(t *testing.T) {
	r := NewRefiner(DefaultConfig())
	defer r.Close()

	mask := newMask(100, 100)
	defer mask.Close()
	fill(&mask, image.Rect(20, 25, 55, 70))
	mask.SetUCharAt(40, 40, 0) // small hole

	once := gocv.NewMat()
	defer once.Close()
	twice := gocv.NewMat()
	defer twice.Close()

	r.Refine(mask, &once)
	r.Refine(once, &twice)

	a := blobBounds(t, once)
	b := blobBounds(t, twice)
	const tolerance = 5
	if absInt(a.Min.X-b.Min.X) > tolerance || absInt(a.Min.Y-b.Min.Y) > tolerance ||
		absInt(a.Max.X-b.Max.X) > tolerance || absInt(a.Max.Y-b.Max.Y) > tolerance {
		t.Errorf("Blob moved from %v to %v on re-application", a, b)
	}
	if once.GetUCharAt(40, 40) != 255 {
		t.Error("Expected closing to fill the hole")
	}
}

func TestRefiner_BlankMask(t *testing.T) {
	r := NewRefiner(DefaultConfig())
	defer r.Close()

	mask := newMask(40, 40)
	defer mask.Close()

	clean := gocv.NewMat()
	defer clean.Close()
	r.Refine(mask, &clean)

	if n := gocv.CountNonZero(clean); n != 0 {
		t.Errorf("Expected empty output, got %d foreground pixels", n)
	}
	if clean.Rows() != 40 || clean.Cols() != 40 {
		t.Errorf("Output size %dx%d, want 40x40", clean.Cols(), clean.Rows())
	}
}

func blobBounds(t *testing.T, m gocv.Mat) image.Rectangle {
	t.Helper()
	contours := gocv.FindContours(m, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() != 1 {
		t.Fatalf("Expected one blob, got %d", contours.Size())
	}
	return gocv.BoundingRect(contours.At(0))
}
