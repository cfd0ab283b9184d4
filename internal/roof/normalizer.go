// Package roof repairs raw roof boundary rings into simple polygons.
package roof

import (
	"fmt"
	"math"

	"roof-planner/pkg/geometry"
)

// RepairMethod identifies which step of the repair pipeline produced the
// final polygon. Informational, not an error.
type RepairMethod string

const (
	RepairNone        RepairMethod = "as-given"
	RepairUntangle    RepairMethod = "self-intersection"
	RepairSimplify    RepairMethod = "simplify"
	RepairLargest     RepairMethod = "largest-component"
	RepairBoundingBox RepairMethod = "bounding-box"
)

// simplifyTolerancePx is the Douglas-Peucker tolerance applied when plain
// untangling leaves multiple disjoint loops.
const simplifyTolerancePx = 2.0

// maxUntangleDepth bounds recursive ring splitting on pathological input.
const maxUntangleDepth = 8

// Normalize repairs an arbitrary input ring into a simple polygon. The
// pipeline tries, in order: the ring as given, splitting at
// self-intersections, simplification plus splitting, the largest resulting
// loop, and finally the bounding box of the raw points. Given at least
// three usable points it always returns a polygon; the RepairMethod reports
// which path was taken.
func Normalize(points []geometry.Point2D) ([]geometry.Point2D, RepairMethod, error) {
	ring := cleanRing(points)
	if len(ring) < 3 {
		return nil, "", fmt.Errorf("roof polygon must have at least 3 points, got %d usable", len(ring))
	}

	if geometry.IsSimple(ring) && geometry.Area(ring) > 0 {
		return ring, RepairNone, nil
	}

	// Split the ring at its self-intersections (the buffer(0) trick).
	loops := untangle(ring, 0)
	if len(loops) == 1 {
		return loops[0], RepairUntangle, nil
	}

	// Multiple disjoint loops or no valid loop: simplify first, then retry.
	simplified := cleanRing(geometry.Simplify(ring, simplifyTolerancePx))
	if len(simplified) >= 3 {
		if geometry.IsSimple(simplified) && geometry.Area(simplified) > 0 {
			return simplified, RepairSimplify, nil
		}
		if reloops := untangle(simplified, 0); len(reloops) > 0 {
			if len(reloops) == 1 {
				return reloops[0], RepairSimplify, nil
			}
			loops = reloops
		}
	}

	// Still multiple disjoint polygons: keep the largest by area.
	if len(loops) > 1 {
		best := loops[0]
		bestArea := geometry.Area(best)
		for _, loop := range loops[1:] {
			if a := geometry.Area(loop); a > bestArea {
				best, bestArea = loop, a
			}
		}
		return best, RepairLargest, nil
	}

	// Geometric repair failed entirely; fall back to the bounding box.
	return geometry.BoundingBox(ring).Corners(), RepairBoundingBox, nil
}

// cleanRing drops non-finite coordinates, consecutive duplicates and a
// duplicated closing vertex.
func cleanRing(points []geometry.Point2D) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// untangle splits a self-intersecting ring at its crossing points and
// returns the simple loops with positive area. A simple ring is returned
// as a single loop; degenerate loops are dropped.
func untangle(ring []geometry.Point2D, depth int) [][]geometry.Point2D {
	ring = cleanRing(ring)
	if len(ring) < 3 {
		return nil
	}
	if geometry.IsSimple(ring) {
		if geometry.Area(ring) > 0 {
			return [][]geometry.Point2D{ring}
		}
		return nil
	}
	if depth >= maxUntangleDepth {
		return nil
	}

	n := len(ring)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			a1, a2 := ring[i], ring[(i+1)%n]
			b1, b2 := ring[j], ring[(j+1)%n]
			x, _, _, ok := geometry.SegmentIntersection(a1, a2, b1, b2)
			if !ok {
				continue
			}

			// Split into the loop between the crossing edges and the rest.
			loopA := make([]geometry.Point2D, 0, j-i+1)
			loopA = append(loopA, x)
			loopA = append(loopA, ring[i+1:j+1]...)

			loopB := make([]geometry.Point2D, 0, n-(j-i)+1)
			loopB = append(loopB, x)
			loopB = append(loopB, ring[j+1:]...)
			loopB = append(loopB, ring[:i+1]...)

			return append(untangle(loopA, depth+1), untangle(loopB, depth+1)...)
		}
	}
	return nil
}
