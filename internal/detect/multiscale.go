package detect

import (
	"image"

	"roof-planner/pkg/geometry"

	"gocv.io/x/gocv"
)

// MultiScaleStrategy runs edge detection at several blur scales and
// OR-combines the edge maps. Fine scales catch sharp shingle edges, coarse
// scales the overall roof silhouette.
type MultiScaleStrategy struct{}

// blurSigmas are the Gaussian scales the edge maps are computed at.
var blurSigmas = []float64{0.5, 1.0, 2.0}

// Name implements Strategy.
func (s *MultiScaleStrategy) Name() string { return "multiscale" }

// Detect implements Strategy.
func (s *MultiScaleStrategy) Detect(img gocv.Mat) ([][]geometry.Point2D, error) {
	gray, err := grayscale(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	// Contrast enhancement before edge extraction.
	clahe := gocv.NewCLAHEWithParams(3.0, image.Point{X: 8, Y: 8})
	defer clahe.Close()
	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(gray, &enhanced)

	combined := gocv.NewMatWithSize(img.Rows(), img.Cols(), gocv.MatTypeCV8U)
	defer combined.Close()

	for _, sigma := range blurSigmas {
		blurred := gocv.NewMat()
		gocv.GaussianBlur(enhanced, &blurred, image.Point{}, sigma, sigma, gocv.BorderDefault)

		edges := gocv.NewMat()
		gocv.Canny(blurred, &edges, 50, 150)
		blurred.Close()

		gocv.BitwiseOr(combined, edges, &combined)
		edges.Close()
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 5, Y: 5})
	defer kernel.Close()
	gocv.MorphologyEx(combined, &combined, gocv.MorphClose, kernel)
	gocv.Dilate(combined, &combined, kernel)

	contours := gocv.FindContours(combined, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	return contoursToPoints(contours), nil
}
