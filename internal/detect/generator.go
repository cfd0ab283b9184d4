package detect

import (
	"image"
	"log"

	"roof-planner/internal/imgutil"
	"roof-planner/pkg/geometry"

	"github.com/disintegration/imaging"
)

// Options configures a detection run.
type Options struct {
	MaxCandidates int     // candidates returned after ranking
	MaxDimension  int     // longest image side before downscaling, px
	MinAreaRatio  float64 // contour area floor relative to image area
	MaxAreaRatio  float64 // contour area ceiling relative to image area
	IoUThreshold  float64 // bounding-box IoU above which candidates are duplicates
}

// DefaultOptions returns the standard detection parameters.
func DefaultOptions() Options {
	return Options{
		MaxCandidates: 3,
		MaxDimension:  800,
		MinAreaRatio:  0.05,
		MaxAreaRatio:  0.95,
		IoUThreshold:  0.7,
	}
}

// approxLevels are the polygon approximation tolerances tried in order,
// as fractions of the contour perimeter. The first level yielding a 3-15
// vertex polygon wins.
var approxLevels = []float64{0.01, 0.02, 0.03}

const maxApproxVertices = 15

// Generator runs the detection strategies over an image and fuses their
// contours into ranked boundary candidates.
type Generator struct {
	opts       Options
	strategies []Strategy
}

// NewGenerator builds a generator with the given options. When no
// strategies are supplied the built-in set is used.
func NewGenerator(opts Options, strategies ...Strategy) *Generator {
	if len(strategies) == 0 {
		strategies = defaultStrategies()
	}
	return &Generator{opts: opts, strategies: strategies}
}

// Detect proposes roof boundary candidates for a decoded image. The image
// is downscaled to the configured cap before analysis and all candidate
// coordinates are mapped back to the original resolution. Zero candidates
// is a success with a diagnostic message.
func (g *Generator) Detect(src image.Image) Result {
	if src == nil {
		return Result{Success: false, Error: "no image data"}
	}
	bounds := src.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW <= 0 || origH <= 0 {
		return Result{Success: false, Error: "image has no pixels"}
	}
	dims := &Dimensions{Width: origW, Height: origH}

	// Downscale for speed, preserving aspect ratio. The scale factor maps
	// working coordinates back to the source image.
	scale := 1.0
	work := src
	if longest := maxInt(origW, origH); g.opts.MaxDimension > 0 && longest > g.opts.MaxDimension {
		scale = float64(g.opts.MaxDimension) / float64(longest)
		if origW >= origH {
			work = imaging.Resize(src, g.opts.MaxDimension, 0, imaging.Lanczos)
		} else {
			work = imaging.Resize(src, 0, g.opts.MaxDimension, imaging.Lanczos)
		}
	}

	mat := imgutil.ToMatBGR(work)
	defer mat.Close()
	imgArea := float64(mat.Cols() * mat.Rows())
	if imgArea <= 0 {
		return Result{Success: false, Error: "image has no pixels"}
	}

	var pool []BoundaryCandidate
	for _, strategy := range g.strategies {
		contours := runStrategy(strategy, mat)
		kept := 0
		for _, contour := range contours {
			if cand, ok := g.processContour(strategy.Name(), contour, imgArea); ok {
				pool = append(pool, cand)
				kept++
			}
		}
		log.Printf("detect: strategy %s produced %d contours, kept %d", strategy.Name(), len(contours), kept)
	}

	deduped := dedupeCandidates(pool, g.opts.IoUThreshold)
	top := rankCandidates(deduped, g.opts.MaxCandidates)

	if scale != 1.0 {
		inv := 1 / scale
		for i := range top {
			points := make([]geometry.Point2D, len(top[i].Points))
			for j, p := range top[i].Points {
				points[j] = p.Scale(inv)
			}
			top[i].Points = points
			top[i].AreaPx *= inv * inv
			top[i].PerimeterPx *= inv
		}
	}

	if len(top) == 0 {
		result := EmptyResult("No roof detected. Please try manual drawing.")
		result.ImageDimensions = dims
		return result
	}

	return Result{
		Success:         true,
		Candidates:      top,
		TotalFound:      len(deduped),
		ImageDimensions: dims,
	}
}

// processContour filters one raw contour and turns it into a scored
// candidate. Faults in a single contour are isolated so they cannot abort
// sibling candidates.
func (g *Generator) processContour(strategy string, contour []geometry.Point2D, imgArea float64) (cand BoundaryCandidate, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("detect: candidate from %s dropped after panic: %v", strategy, r)
			ok = false
		}
	}()

	area := geometry.Area(contour)
	if area < imgArea*g.opts.MinAreaRatio || area > imgArea*g.opts.MaxAreaRatio {
		return cand, false
	}
	perimeter := geometry.Perimeter(contour)
	if perimeter <= 0 {
		return cand, false
	}

	for _, level := range approxLevels {
		approx := geometry.Simplify(contour, level*perimeter)
		if len(approx) < 3 || len(approx) > maxApproxVertices {
			continue
		}
		return BoundaryCandidate{
			Points:      approx,
			Vertices:    len(approx),
			AreaPx:      area,
			AreaRatio:   area / imgArea,
			Confidence:  confidenceScore(approx, area, imgArea, perimeter),
			PerimeterPx: perimeter,
		}, true
	}
	return cand, false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
