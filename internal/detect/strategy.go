package detect

import (
	"fmt"
	"log"

	"roof-planner/pkg/geometry"

	"gocv.io/x/gocv"
)

// Strategy turns a BGR raster into zero or more raw boundary contours in
// pixel space. Strategies are independent: adding one touches neither
// scoring nor deduplication.
type Strategy interface {
	Name() string
	Detect(img gocv.Mat) ([][]geometry.Point2D, error)
}

// defaultStrategies returns the built-in detector set in scan order. The
// order matters: deduplication keeps the first-seen of two near-duplicates.
func defaultStrategies() []Strategy {
	return []Strategy{
		&LineStrategy{},
		&GrabCutStrategy{},
		&ColorStrategy{},
		&MultiScaleStrategy{},
	}
}

// runStrategy executes one strategy, converting panics into an empty result
// so a single faulty strategy cannot abort its siblings.
func runStrategy(s Strategy, img gocv.Mat) (contours [][]geometry.Point2D) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("detect: strategy %s panicked: %v", s.Name(), r)
			contours = nil
		}
	}()

	contours, err := s.Detect(img)
	if err != nil {
		log.Printf("detect: strategy %s failed: %v", s.Name(), err)
		return nil
	}
	return contours
}

// contoursToPoints converts gocv contour storage into plain point slices.
func contoursToPoints(contours gocv.PointsVector) [][]geometry.Point2D {
	out := make([][]geometry.Point2D, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		points := make([]geometry.Point2D, contour.Size())
		for j := 0; j < contour.Size(); j++ {
			pt := contour.At(j)
			points[j] = geometry.NewPoint2D(float64(pt.X), float64(pt.Y))
		}
		if len(points) >= 3 {
			out = append(out, points)
		}
	}
	return out
}

// grayscale converts a BGR mat to single-channel gray. Caller closes the
// returned mat.
func grayscale(img gocv.Mat) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.NewMat(), fmt.Errorf("empty image")
	}
	gray := gocv.NewMat()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	return gray, nil
}
