// Package render draws detection and layout results over the source photo
// for UI display.
package render

import (
	"image"
	"image/color"

	"roof-planner/internal/layout"
	"roof-planner/pkg/geometry"

	"gocv.io/x/gocv"
)

var (
	roofColor     = color.RGBA{G: 255, A: 255}
	obstacleColor = color.RGBA{R: 255, A: 255}
	panelColor    = color.RGBA{R: 255, G: 165, A: 255}
)

// Overlay paints the roof outline (with a translucent fill), obstacle
// rectangles and placed panels onto a copy of the image. The caller owns
// the returned mat.
func Overlay(img gocv.Mat, polygon []geometry.Point2D, obstacles []layout.Obstacle, panels []layout.PanelPlacement) gocv.Mat {
	vis := img.Clone()

	if len(polygon) >= 3 {
		pts := polygonToVector(polygon)
		defer pts.Close()

		gocv.Polylines(&vis, pts, true, roofColor, 3)

		// Translucent fill so the photo stays readable underneath.
		filled := vis.Clone()
		gocv.FillPoly(&filled, pts, roofColor)
		gocv.AddWeighted(filled, 0.2, vis, 0.8, 0, &vis)
		filled.Close()
	}

	for _, obs := range obstacles {
		r := image.Rect(int(obs.X), int(obs.Y), int(obs.X+obs.Width), int(obs.Y+obs.Height))
		gocv.Rectangle(&vis, r, obstacleColor, 2)
	}

	for _, panel := range panels {
		r := image.Rect(panel.X, panel.Y, panel.X+panel.Width, panel.Y+panel.Height)
		gocv.Rectangle(&vis, r, panelColor, 2)
	}

	return vis
}

func polygonToVector(polygon []geometry.Point2D) gocv.PointsVector {
	pts := make([]image.Point, len(polygon))
	for i, p := range polygon {
		pts[i] = image.Point{X: int(p.X), Y: int(p.Y)}
	}
	return gocv.NewPointsVectorFromPoints([][]image.Point{pts})
}
