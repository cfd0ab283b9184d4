package detect

import (
	"testing"

	"roof-planner/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRejectsUnusableInput(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultOptions())

	result := g.Detect(nil)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestEmptyResult(t *testing.T) {
	t.Parallel()

	result := EmptyResult("No roof detected. Please try manual drawing.")
	assert.True(t, result.Success)
	assert.NotNil(t, result.Candidates)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, 0, result.TotalFound)
	assert.Equal(t, "No roof detected. Please try manual drawing.", result.Message)
}

func TestProcessContour(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultOptions())
	imgArea := 800.0 * 800.0

	t.Run("good quad passes", func(t *testing.T) {
		t.Parallel()
		contour := geometry.Rect{X: 100, Y: 100, Width: 400, Height: 400}.Corners()
		cand, ok := g.processContour("test", contour, imgArea)
		require.True(t, ok)
		assert.Equal(t, 4, cand.Vertices)
		assert.Equal(t, 160000.0, cand.AreaPx)
		assert.InDelta(t, 0.25, cand.AreaRatio, 1e-9)
		assert.Equal(t, 1600.0, cand.PerimeterPx)
		assert.Greater(t, cand.Confidence, 50.0)
	})

	t.Run("noisy edges approximate down", func(t *testing.T) {
		t.Parallel()
		// Square with near-collinear midpoints; the first approximation
		// level (1% of the perimeter) removes them.
		contour := []geometry.Point2D{
			{100, 100}, {300, 102}, {500, 100},
			{502, 300}, {500, 500},
			{300, 498}, {100, 500}, {98, 300},
		}
		cand, ok := g.processContour("test", contour, imgArea)
		require.True(t, ok)
		assert.Equal(t, 4, cand.Vertices)
	})

	t.Run("too small is rejected", func(t *testing.T) {
		t.Parallel()
		contour := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}.Corners()
		_, ok := g.processContour("test", contour, imgArea)
		assert.False(t, ok)
	})

	t.Run("near full frame is rejected", func(t *testing.T) {
		t.Parallel()
		contour := geometry.Rect{X: 2, Y: 2, Width: 790, Height: 790}.Corners()
		_, ok := g.processContour("test", contour, imgArea)
		assert.False(t, ok)
	})

	t.Run("degenerate contour is rejected", func(t *testing.T) {
		t.Parallel()
		contour := []geometry.Point2D{{0, 0}, {500, 0}}
		_, ok := g.processContour("test", contour, imgArea)
		assert.False(t, ok)
	})
}
