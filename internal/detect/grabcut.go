package detect

import (
	"fmt"
	"image"

	"roof-planner/pkg/geometry"

	"gocv.io/x/gocv"
)

// GrabCutStrategy separates figure from ground by iterative energy
// minimization, seeded with a rectangle covering the central 60% of the
// image. Roofs photographed for quoting tend to fill the frame center.
type GrabCutStrategy struct {
	// Iterations is the number of GrabCut refinement passes.
	Iterations int
}

// OpenCV GrabCut mask labels (GC_FGD, GC_PR_FGD).
const (
	maskFgd   = 1
	maskPrFgd = 3
)

// Name implements Strategy.
func (s *GrabCutStrategy) Name() string { return "grabcut" }

// Detect implements Strategy.
func (s *GrabCutStrategy) Detect(img gocv.Mat) ([][]geometry.Point2D, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	rows, cols := img.Rows(), img.Cols()
	if rows < 10 || cols < 10 {
		return nil, fmt.Errorf("image too small: %dx%d", cols, rows)
	}

	iterations := s.Iterations
	if iterations <= 0 {
		iterations = 5
	}

	seed := image.Rect(cols/5, rows/5, cols*4/5, rows*4/5)

	mask := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)
	defer mask.Close()
	bgdModel := gocv.NewMat()
	defer bgdModel.Close()
	fgdModel := gocv.NewMat()
	defer fgdModel.Close()

	gocv.GrabCut(img, &mask, seed, &bgdModel, &fgdModel, iterations, gocv.GCInitWithRect)

	// Keep definite and probable foreground.
	fg := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)
	defer fg.Close()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := mask.GetUCharAt(y, x)
			if v == maskFgd || v == maskPrFgd {
				fg.SetUCharAt(y, x, 255)
			}
		}
	}

	contours := gocv.FindContours(fg, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	return contoursToPoints(contours), nil
}
