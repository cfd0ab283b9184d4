package detect

import (
	"fmt"
	"image"
	"math"

	"roof-planner/pkg/geometry"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
)

// ColorStrategy segments the image by color similarity to the roof itself:
// it samples the mean hue/saturation of a central patch and keeps every
// pixel within a fixed band around that mean.
type ColorStrategy struct{}

// Band widths around the sampled mean, in OpenCV HSV units (hue 0-180).
const (
	hueBand = 20
	satBand = 50
)

// Name implements Strategy.
func (s *ColorStrategy) Name() string { return "color" }

// Detect implements Strategy.
func (s *ColorStrategy) Detect(img gocv.Mat) ([][]geometry.Point2D, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	rows, cols := img.Rows(), img.Cols()

	// Central patch: 40%-60% of each dimension.
	patch := image.Rect(cols*2/5, rows*2/5, cols*3/5, rows*3/5)
	if patch.Dx() < 1 || patch.Dy() < 1 {
		return nil, fmt.Errorf("image too small: %dx%d", cols, rows)
	}

	meanHue, meanSat, err := patchMeanHueSat(img, patch)
	if err != nil {
		return nil, err
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	lower := gocv.NewScalar(math.Max(0, meanHue-hueBand), math.Max(0, meanSat-satBand), 0, 0)
	upper := gocv.NewScalar(math.Min(180, meanHue+hueBand), math.Min(255, meanSat+satBand), 255, 0)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 7, Y: 7})
	defer kernel.Close()
	gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)
	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	return contoursToPoints(contours), nil
}

// patchMeanHueSat samples the mean hue and saturation over a patch,
// expressed in OpenCV units (hue 0-180, saturation 0-255).
func patchMeanHueSat(img gocv.Mat, patch image.Rectangle) (float64, float64, error) {
	region := img.Region(patch)
	defer region.Close()

	// Region views are not continuous; clone before converting.
	clone := region.Clone()
	defer clone.Close()

	rgba, err := clone.ToImage()
	if err != nil {
		return 0, 0, fmt.Errorf("patch conversion: %w", err)
	}

	bounds := rgba.Bounds()
	var sumHue, sumSat float64
	var count int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(rgba.At(x, y))
			if !ok {
				continue
			}
			h, s, _ := c.Hsv()
			sumHue += h
			sumSat += s
			count++
		}
	}
	if count == 0 {
		return 0, 0, fmt.Errorf("empty patch")
	}

	// colorful yields hue in degrees (0-360) and saturation in [0,1].
	return sumHue / float64(count) / 2, sumSat / float64(count) * 255, nil
}
