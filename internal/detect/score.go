package detect

import (
	"math"

	"roof-planner/pkg/geometry"
)

// confidenceScore rates how roof-like a polygon candidate is, from 0 to 100.
// Four additive components: area ratio (max 40), vertex count (max 30),
// compactness (max 20) and rectangularity (max 10). The band boundaries are
// empirically fixed; keep them as-is for behavioral compatibility.
func confidenceScore(polygon []geometry.Point2D, area, imgArea, perimeter float64) float64 {
	var score float64

	// Area ratio: roofs typically occupy 10-70% of a quoting photo.
	areaRatio := 0.0
	if imgArea > 0 {
		areaRatio = area / imgArea
	}
	switch {
	case areaRatio >= 0.10 && areaRatio <= 0.70:
		score += 40
	case (areaRatio >= 0.05 && areaRatio < 0.10) || (areaRatio > 0.70 && areaRatio <= 0.85):
		score += 25
	default:
		score += 10
	}

	// Vertex count: rectangular roofs dominate, gables and hips follow.
	switch n := len(polygon); {
	case n == 4:
		score += 30
	case n >= 5 && n <= 8:
		score += 25
	default:
		score += 10
	}

	// Compactness: isoperimetric ratio 4*pi*A/P^2.
	compactness := 0.0
	if perimeter > 0 {
		compactness = 4 * math.Pi * area / (perimeter * perimeter)
	}
	switch {
	case compactness > 0.7:
		score += 20
	case compactness > 0.5:
		score += 15
	case compactness > 0.3:
		score += 10
	default:
		score += 5
	}

	score += rectangularityBonus(polygon)

	return math.Min(score, 100)
}

// rectangularityBonus rewards 4-vertex candidates whose area nearly fills
// their minimum-area bounding rectangle. Non-quadrilaterals receive the
// full bonus by default.
func rectangularityBonus(polygon []geometry.Point2D) float64 {
	if len(polygon) != 4 {
		return 10
	}
	rectArea := geometry.MinAreaRectArea(polygon)
	if rectArea <= 0 {
		return 3
	}
	switch ratio := geometry.Area(polygon) / rectArea; {
	case ratio > 0.85:
		return 10
	case ratio > 0.70:
		return 7
	default:
		return 3
	}
}
