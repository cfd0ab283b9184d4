package detect

import (
	"image"
	"math"
	"sort"

	"roof-planner/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// LineStrategy detects straight roof edges. It partitions Hough line
// segments into near-horizontal and near-vertical groups and, when both are
// present, builds one bounding quadrilateral from the 10th/90th percentile
// extents of all segment endpoints.
type LineStrategy struct{}

// Name implements Strategy.
func (s *LineStrategy) Name() string { return "lines" }

// Detect implements Strategy.
func (s *LineStrategy) Detect(img gocv.Mat) ([][]geometry.Point2D, error) {
	gray, err := grayscale(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, 50, 150)

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(edges, &lines, 1, math.Pi/180, 50, 50, 10)

	var horizontal, vertical int
	var xs, ys []float64

	for i := 0; i < lines.Rows(); i++ {
		seg := lines.GetVeciAt(i, 0)
		x1, y1 := float64(seg[0]), float64(seg[1])
		x2, y2 := float64(seg[2]), float64(seg[3])

		// Segment angle folded into [0, 180).
		deg := math.Mod(math.Atan2(y2-y1, x2-x1)*180/math.Pi+180, 180)

		switch {
		case deg <= 20 || deg >= 160:
			horizontal++
		case deg >= 70 && deg <= 110:
			vertical++
		default:
			continue
		}
		xs = append(xs, x1, x2)
		ys = append(ys, y1, y2)
	}

	if horizontal == 0 || vertical == 0 || len(xs) < 2 {
		return nil, nil
	}

	sort.Float64s(xs)
	sort.Float64s(ys)

	left := stat.Quantile(0.1, stat.Empirical, xs, nil)
	right := stat.Quantile(0.9, stat.Empirical, xs, nil)
	top := stat.Quantile(0.1, stat.Empirical, ys, nil)
	bottom := stat.Quantile(0.9, stat.Empirical, ys, nil)

	if right <= left || bottom <= top {
		return nil, nil
	}

	quad := geometry.Rect{X: left, Y: top, Width: right - left, Height: bottom - top}.Corners()
	return [][]geometry.Point2D{quad}, nil
}
