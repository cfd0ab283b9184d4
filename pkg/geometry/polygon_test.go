package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(size float64) []Point2D {
	return []Point2D{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: size, Y: size},
		{X: 0, Y: size},
	}
}

func TestArea(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, Area(square(10)))

	// Winding direction must not change the absolute area.
	reversed := []Point2D{{0, 10}, {10, 10}, {10, 0}, {0, 0}}
	assert.Equal(t, 100.0, Area(reversed))

	triangle := []Point2D{{0, 0}, {10, 0}, {0, 10}}
	assert.Equal(t, 50.0, Area(triangle))

	assert.Equal(t, 0.0, Area([]Point2D{{0, 0}, {1, 1}}))
}

func TestPerimeter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 40.0, Perimeter(square(10)))
	assert.Equal(t, 0.0, Perimeter([]Point2D{{1, 1}}))
}

func TestIsSimple(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSimple(square(10)))

	// Bowtie: edges 0-1 and 2-3 cross.
	bowtie := []Point2D{{0, 0}, {10, 10}, {10, 0}, {0, 10}}
	assert.False(t, IsSimple(bowtie))

	// Repeated vertex yields a zero-length edge.
	degenerate := []Point2D{{0, 0}, {0, 0}, {10, 0}, {10, 10}}
	assert.False(t, IsSimple(degenerate))

	assert.False(t, IsSimple([]Point2D{{0, 0}, {1, 1}}))
}

func TestSegmentIntersection(t *testing.T) {
	t.Parallel()

	t.Run("proper crossing", func(t *testing.T) {
		t.Parallel()
		p, tt, u, ok := SegmentIntersection(
			Point2D{0, 0}, Point2D{10, 10},
			Point2D{0, 10}, Point2D{10, 0},
		)
		require.True(t, ok)
		assert.InDelta(t, 5.0, p.X, 1e-9)
		assert.InDelta(t, 5.0, p.Y, 1e-9)
		assert.InDelta(t, 0.5, tt, 1e-9)
		assert.InDelta(t, 0.5, u, 1e-9)
	})

	t.Run("parallel segments do not cross", func(t *testing.T) {
		t.Parallel()
		_, _, _, ok := SegmentIntersection(
			Point2D{0, 0}, Point2D{10, 0},
			Point2D{0, 1}, Point2D{10, 1},
		)
		assert.False(t, ok)
	})

	t.Run("shared endpoint is not a crossing", func(t *testing.T) {
		t.Parallel()
		_, _, _, ok := SegmentIntersection(
			Point2D{0, 0}, Point2D{10, 0},
			Point2D{10, 0}, Point2D{10, 10},
		)
		assert.False(t, ok)
	})

	t.Run("disjoint segments", func(t *testing.T) {
		t.Parallel()
		_, _, _, ok := SegmentIntersection(
			Point2D{0, 0}, Point2D{1, 0},
			Point2D{5, 5}, Point2D{6, 6},
		)
		assert.False(t, ok)
	})
}

func TestSimplify(t *testing.T) {
	t.Parallel()

	t.Run("collinear points collapse", func(t *testing.T) {
		t.Parallel()
		noisy := []Point2D{
			{0, 0}, {5, 0.1}, {10, 0},
			{10, 5}, {10, 10},
			{5, 10}, {0, 10},
		}
		reduced := Simplify(noisy, 1.0)
		assert.Equal(t, 4, len(reduced))
	})

	t.Run("corners survive", func(t *testing.T) {
		t.Parallel()
		reduced := Simplify(square(10), 1.0)
		assert.Equal(t, 4, len(reduced))
		assert.InDelta(t, 100.0, Area(reduced), 1e-9)
	})

	t.Run("non-positive tolerance is a no-op", func(t *testing.T) {
		t.Parallel()
		ring := square(10)
		assert.Equal(t, ring, Simplify(ring, 0))
	})
}

func TestConvexHull(t *testing.T) {
	t.Parallel()

	points := append(square(10), Point2D{X: 5, Y: 5})
	hull := ConvexHull(points)
	require.Len(t, hull, 4)
	assert.InDelta(t, 100.0, Area(hull), 1e-9)
}

func TestMinAreaRectArea(t *testing.T) {
	t.Parallel()

	t.Run("axis-aligned square", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 100.0, MinAreaRectArea(square(10)), 1e-9)
	})

	t.Run("rotated square", func(t *testing.T) {
		t.Parallel()
		// Diamond with diagonal 10: the min-area rect is the rotated
		// square of side 5*sqrt(2), not the 10x10 bounding box.
		diamond := []Point2D{{5, 0}, {10, 5}, {5, 10}, {0, 5}}
		assert.InDelta(t, 50.0, MinAreaRectArea(diamond), 1e-9)
	})

	t.Run("degenerate input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, MinAreaRectArea([]Point2D{{0, 0}, {1, 1}}))
	})
}

func TestIntersectPolygons(t *testing.T) {
	t.Parallel()

	t.Run("full containment", func(t *testing.T) {
		t.Parallel()
		inner := Rect{X: 2, Y: 2, Width: 4, Height: 4}
		clipped := IntersectPolygons(square(10), inner.Corners())
		require.NotNil(t, clipped)
		assert.InDelta(t, 16.0, Area(clipped), 1e-9)
	})

	t.Run("partial overlap", func(t *testing.T) {
		t.Parallel()
		half := Rect{X: 5, Y: 0, Width: 10, Height: 10}
		clipped := IntersectPolygons(square(10), half.Corners())
		require.NotNil(t, clipped)
		assert.InDelta(t, 50.0, Area(clipped), 1e-9)
	})

	t.Run("disjoint", func(t *testing.T) {
		t.Parallel()
		far := Rect{X: 100, Y: 100, Width: 10, Height: 10}
		assert.Nil(t, IntersectPolygons(square(10), far.Corners()))
	})

	t.Run("shared edge is nil", func(t *testing.T) {
		t.Parallel()
		// Neighbor sharing only the x=10 edge: zero-area overlap.
		neighbor := Rect{X: 10, Y: 0, Width: 10, Height: 10}
		assert.Nil(t, IntersectPolygons(square(10), neighbor.Corners()))
	})

	t.Run("shared corner is nil", func(t *testing.T) {
		t.Parallel()
		corner := Rect{X: 10, Y: 10, Width: 10, Height: 10}
		assert.Nil(t, IntersectPolygons(square(10), corner.Corners()))
	})

	t.Run("concave subject", func(t *testing.T) {
		t.Parallel()
		// L-shape of area 75 clipped by its notch quadrant.
		lshape := []Point2D{
			{0, 0}, {10, 0}, {10, 5}, {5, 5}, {5, 10}, {0, 10},
		}
		notch := Rect{X: 5, Y: 5, Width: 5, Height: 5}
		assert.Nil(t, IntersectPolygons(lshape, notch.Corners()))

		quadrant := Rect{X: 0, Y: 0, Width: 5, Height: 5}
		clipped := IntersectPolygons(lshape, quadrant.Corners())
		require.NotNil(t, clipped)
		assert.InDelta(t, 25.0, Area(clipped), 1e-9)
	})
}

func TestPointInPolygon(t *testing.T) {
	t.Parallel()

	assert.True(t, PointInPolygon(Point2D{5, 5}, square(10)))
	assert.False(t, PointInPolygon(Point2D{15, 5}, square(10)))
	assert.False(t, PointInPolygon(Point2D{5, 5}, []Point2D{{0, 0}, {1, 1}}))
}

func TestSignedAreaWinding(t *testing.T) {
	t.Parallel()

	ccw := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	cw := []Point2D{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	assert.Equal(t, SignedArea(ccw), -SignedArea(cw))
	assert.InDelta(t, 100.0, math.Abs(SignedArea(ccw)), 1e-9)
}
