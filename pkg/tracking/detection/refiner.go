package detection

import (
	"image"

	"gocv.io/x/gocv"
)

// Refiner turns a raw foreground mask into a clean 0/255 blob mask:
// blur, Otsu binarization, morphological close, then open.
type Refiner struct {
	blur       image.Point
	base       float32
	kernel     gocv.Mat
	iterations int
}

// NewRefiner creates a refiner. Call Close when done.
func NewRefiner(cfg Config) *Refiner {
	return &Refiner{
		blur:       image.Pt(cfg.BlurKernel, cfg.BlurKernel),
		base:       cfg.BaseThreshold,
		kernel:     gocv.GetStructuringElement(gocv.MorphRect, image.Pt(cfg.MorphKernel, cfg.MorphKernel)),
		iterations: cfg.MorphIterations,
	}
}

// Refine writes the cleaned version of mask to dst. Shadow pixels (127)
// fall below the Otsu cut whenever real foreground is present.
func (r *Refiner) Refine(mask gocv.Mat, dst *gocv.Mat) {
	gocv.GaussianBlur(mask, dst, r.blur, 0, 0, gocv.BorderDefault)
	gocv.Threshold(*dst, dst, r.base, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	// Close fills holes inside the blob.
	r.dilate(dst)
	r.erode(dst)

	// Open removes specks that survived closing.
	r.erode(dst)
	r.dilate(dst)
}

func (r *Refiner) dilate(m *gocv.Mat) {
	for i := 0; i < r.iterations; i++ {
		gocv.Dilate(*m, m, r.kernel)
	}
}

func (r *Refiner) erode(m *gocv.Mat) {
	for i := 0; i < r.iterations; i++ {
		gocv.Erode(*m, m, r.kernel)
	}
}

// Close releases the structuring element.
func (r *Refiner) Close() error {
	return r.kernel.Close()
}
