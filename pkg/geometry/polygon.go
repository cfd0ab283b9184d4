package geometry

import "math"

// SignedArea computes the signed shoelace area of a polygon ring.
// Positive when the ring winds counter-clockwise in a y-up frame.
func SignedArea(polygon []Point2D) float64 {
	if len(polygon) < 3 {
		return 0
	}
	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return sum / 2
}

// Area computes the absolute shoelace area of a polygon ring.
func Area(polygon []Point2D) float64 {
	return math.Abs(SignedArea(polygon))
}

// Perimeter computes the closed perimeter of a polygon ring.
func Perimeter(polygon []Point2D) float64 {
	if len(polygon) < 2 {
		return 0
	}
	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		sum += polygon[i].Distance(polygon[(i+1)%n])
	}
	return sum
}

// IsSimple reports whether the polygon ring is simple, i.e. no two
// non-adjacent edges intersect and no edge has zero length.
func IsSimple(polygon []Point2D) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if polygon[i].Distance(polygon[(i+1)%n]) == 0 {
			return false
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges (they share an endpoint).
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			a1, a2 := polygon[i], polygon[(i+1)%n]
			b1, b2 := polygon[j], polygon[(j+1)%n]
			if _, _, _, ok := SegmentIntersection(a1, a2, b1, b2); ok {
				return false
			}
		}
	}
	return true
}

// SegmentIntersection computes the crossing point of segments a1-a2 and
// b1-b2. It returns the point, the parameters t (along a) and u (along b),
// and whether the segments properly cross. Touching exactly at a shared
// endpoint does not count as a crossing.
func SegmentIntersection(a1, a2, b1, b2 Point2D) (Point2D, float64, float64, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < 1e-12 {
		return Point2D{}, 0, 0, false
	}
	diff := b1.Sub(a1)
	t := (diff.X*d2.Y - diff.Y*d2.X) / denom
	u := (diff.X*d1.Y - diff.Y*d1.X) / denom

	const eps = 1e-9
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		return Point2D{}, 0, 0, false
	}
	return Point2D{X: a1.X + t*d1.X, Y: a1.Y + t*d1.Y}, t, u, true
}

// Simplify reduces a closed polygon ring using the Douglas-Peucker
// algorithm with the given distance tolerance. The ring is treated as a
// closed polyline anchored at its first vertex.
func Simplify(polygon []Point2D, tolerance float64) []Point2D {
	if len(polygon) < 4 || tolerance <= 0 {
		return polygon
	}
	// Close the ring so the wrap-around edge participates.
	line := make([]Point2D, len(polygon)+1)
	copy(line, polygon)
	line[len(polygon)] = polygon[0]

	reduced := douglasPeucker(line, tolerance)
	// Drop the duplicated closing vertex.
	if len(reduced) > 1 && reduced[0] == reduced[len(reduced)-1] {
		reduced = reduced[:len(reduced)-1]
	}
	return reduced
}

func douglasPeucker(line []Point2D, tolerance float64) []Point2D {
	if len(line) < 3 {
		return line
	}

	var maxDist float64
	index := 0
	first, last := line[0], line[len(line)-1]
	for i := 1; i < len(line)-1; i++ {
		d := perpendicularDistance(line[i], first, last)
		if d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist <= tolerance {
		return []Point2D{first, last}
	}

	left := douglasPeucker(line[:index+1], tolerance)
	right := douglasPeucker(line[index:], tolerance)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance computes the distance from p to the line a-b.
func perpendicularDistance(p, a, b Point2D) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return p.Distance(a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}

// ConvexHull computes the convex hull of a set of points using Graham scan.
// Returns the points forming the convex hull in counter-clockwise order.
func ConvexHull(points []Point2D) []Point2D {
	if len(points) < 3 {
		return points
	}

	// Make a copy to avoid modifying the input
	pts := make([]Point2D, len(points))
	copy(pts, points)

	// Find the point with lowest y (and leftmost if tied)
	lowest := 0
	for i := 1; i < len(pts); i++ {
		if pts[i].Y < pts[lowest].Y ||
			(pts[i].Y == pts[lowest].Y && pts[i].X < pts[lowest].X) {
			lowest = i
		}
	}

	// Swap to front
	pts[0], pts[lowest] = pts[lowest], pts[0]
	pivot := pts[0]

	// Sort by polar angle with respect to pivot
	sorted := make([]Point2D, len(pts)-1)
	copy(sorted, pts[1:])

	// Sort by angle (bubble sort for simplicity)
	for i := 0; i < len(sorted)-1; i++ {
		for j := i + 1; j < len(sorted); j++ {
			cross := crossProduct(pivot, sorted[i], sorted[j])
			if cross < 0 || (cross == 0 && distSq(pivot, sorted[i]) > distSq(pivot, sorted[j])) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	// Build hull
	hull := []Point2D{pivot}
	for _, p := range sorted {
		for len(hull) > 1 && crossProduct(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull
}

// MinAreaRectArea computes the area of the minimum-area rotated rectangle
// enclosing the points, using rotating calipers over the convex hull.
func MinAreaRectArea(points []Point2D) float64 {
	hull := ConvexHull(points)
	if len(hull) < 3 {
		return 0
	}

	best := math.Inf(1)
	n := len(hull)
	for i := 0; i < n; i++ {
		edge := hull[(i+1)%n].Sub(hull[i])
		length := math.Hypot(edge.X, edge.Y)
		if length == 0 {
			continue
		}
		ux, uy := edge.X/length, edge.Y/length

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			u := p.X*ux + p.Y*uy
			v := -p.X*uy + p.Y*ux
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		area := (maxU - minU) * (maxV - minV)
		if area < best {
			best = area
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

// IntersectPolygons computes the intersection of a polygon with a convex
// clip polygon using the Sutherland-Hodgman algorithm. The subject polygon
// may be concave; the clip polygon must be convex and ordered so its
// interior lies on the left of each directed edge.
// Returns nil if there is no intersection or if inputs are invalid. A
// subject that only touches the clip boundary (zero-area overlap) counts
// as no intersection.
func IntersectPolygons(subject, clip []Point2D) []Point2D {
	if len(subject) < 3 || len(clip) < 3 {
		return nil
	}

	output := make([]Point2D, len(subject))
	copy(output, subject)

	// Clip against each edge of the clip polygon
	for i := 0; i < len(clip); i++ {
		if len(output) == 0 {
			return nil
		}

		edgeStart := clip[i]
		edgeEnd := clip[(i+1)%len(clip)]
		output = clipPolygonByEdge(output, edgeStart, edgeEnd)
	}

	// Boundary-touching subjects leave degenerate rings: repeated vertices
	// tracing the shared edge with no enclosed area.
	output = dedupeVertices(output)
	if len(output) < 3 || Area(output) == 0 {
		return nil
	}

	return output
}

// dedupeVertices drops consecutive duplicate vertices from a ring,
// including a duplicated closing vertex.
func dedupeVertices(ring []Point2D) []Point2D {
	out := make([]Point2D, 0, len(ring))
	for _, p := range ring {
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

// clipPolygonByEdge clips a polygon against a single edge using
// the Sutherland-Hodgman algorithm.
func clipPolygonByEdge(polygon []Point2D, edgeStart, edgeEnd Point2D) []Point2D {
	var clipped []Point2D

	for i := 0; i < len(polygon); i++ {
		current := polygon[i]
		next := polygon[(i+1)%len(polygon)]

		currentInside := isInsideEdge(current, edgeStart, edgeEnd)
		nextInside := isInsideEdge(next, edgeStart, edgeEnd)

		if currentInside {
			clipped = append(clipped, current)
			if !nextInside {
				// Exiting: add intersection point
				if intersection, ok := lineIntersection(current, next, edgeStart, edgeEnd); ok {
					clipped = append(clipped, intersection)
				}
			}
		} else if nextInside {
			// Entering: add intersection point
			if intersection, ok := lineIntersection(current, next, edgeStart, edgeEnd); ok {
				clipped = append(clipped, intersection)
			}
		}
	}

	return clipped
}

// isInsideEdge checks if a point is on the inside (left side) of the directed edge.
func isInsideEdge(p, edgeStart, edgeEnd Point2D) bool {
	return (edgeEnd.X-edgeStart.X)*(p.Y-edgeStart.Y)-
		(edgeEnd.Y-edgeStart.Y)*(p.X-edgeStart.X) >= 0
}

// lineIntersection computes the intersection point of the infinite lines
// through p1-p2 and e1-e2. Returns the point and true if they intersect.
func lineIntersection(p1, p2, e1, e2 Point2D) (Point2D, bool) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y
	x3, y3 := e1.X, e1.Y
	x4, y4 := e2.X, e2.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-10 {
		// Lines are parallel
		return Point2D{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom

	return Point2D{
		X: x1 + t*(x2-x1),
		Y: y1 + t*(y2-y1),
	}, true
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// distSq computes the squared distance between two points.
func distSq(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
