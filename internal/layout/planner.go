// Package layout grid-packs solar panels inside a roof polygon and derives
// layout statistics.
package layout

import (
	"fmt"
	"log"
	"math"

	"roof-planner/internal/roof"
	"roof-planner/pkg/geometry"
)

// Acceptance thresholds. Empirically fixed; keep them as-is for behavioral
// compatibility.
const (
	// minContainment is the required intersection(panel, roof) / area(panel)
	// ratio; up to 5% hang-over absorbs boundary digitization noise.
	minContainment = 0.95
	// maxObstacleOverlap is the largest tolerated overlap with any single
	// obstacle, as a fraction of the panel's own area.
	maxObstacleOverlap = 0.10
)

// Obstacle is an axis-aligned keep-out rectangle in pixel units.
type Obstacle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the obstacle as a geometry rectangle.
func (o Obstacle) Rect() geometry.Rect {
	return geometry.NewRect(o.X, o.Y, o.Width, o.Height)
}

// PanelPlacement is one accepted panel position in pixel units.
type PanelPlacement struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Row    int `json:"row"`
	Col    int `json:"col"`
}

// Options holds the physical panel parameters and the image scale.
type Options struct {
	PanelWidthM    float64 `json:"panel_width_m"`
	PanelHeightM   float64 `json:"panel_height_m"`
	PanelPowerW    float64 `json:"panel_power_w"`
	SpacingM       float64 `json:"spacing_m"`
	PixelsPerMeter float64 `json:"pixels_per_meter"`
	Orientation    string  `json:"orientation"` // "landscape" or "portrait"
}

// DefaultOptions returns typical residential panel parameters.
func DefaultOptions() Options {
	return Options{
		PanelWidthM:    1.7,
		PanelHeightM:   1.0,
		PanelPowerW:    400,
		SpacingM:       0.05,
		PixelsPerMeter: 100,
		Orientation:    "landscape",
	}
}

// Result is a completed layout with its aggregate statistics.
type Result struct {
	Success         bool             `json:"success"`
	Panels          []PanelPlacement `json:"panels"`
	TotalPanels     int              `json:"total_panels"`
	TotalPowerKW    float64          `json:"total_power_kw"`
	CoveragePercent float64          `json:"coverage_percent"`
	RoofAreaM2      float64          `json:"roof_area_m2"`
	PanelAreaM2     float64          `json:"panel_area_m2"`
	SuggestedScale  float64          `json:"suggested_pixels_per_meter,omitempty"`
	RepairMethod    string           `json:"repair_method,omitempty"`
	Message         string           `json:"message,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// Planner packs panels into one normalized roof polygon.
type Planner struct {
	polygon   []geometry.Point2D
	obstacles []geometry.Rect
	repair    roof.RepairMethod
}

// NewPlanner repairs the input ring into a simple polygon and prepares the
// obstacle set. Obstacles without positive extent are dropped.
func NewPlanner(points []geometry.Point2D, obstacles []Obstacle) (*Planner, error) {
	polygon, repair, err := roof.Normalize(points)
	if err != nil {
		return nil, err
	}
	if repair != roof.RepairNone {
		log.Printf("layout: roof polygon repaired via %s", repair)
	}

	rects := make([]geometry.Rect, 0, len(obstacles))
	for _, obs := range obstacles {
		if obs.Width > 0 && obs.Height > 0 {
			rects = append(rects, obs.Rect())
		}
	}

	return &Planner{polygon: polygon, obstacles: rects, repair: repair}, nil
}

// Polygon returns the normalized roof polygon the planner works on.
func (p *Planner) Polygon() []geometry.Point2D { return p.polygon }

// Plan computes the grid packing. A layout with zero panels is a success
// with a diagnostic message, not an error.
func (p *Planner) Plan(opts Options) Result {
	if opts.PixelsPerMeter <= 0 || opts.PanelWidthM <= 0 || opts.PanelHeightM <= 0 {
		return Result{Success: false, Error: "panel dimensions and pixels_per_meter must be positive"}
	}

	bbox := geometry.BoundingBox(p.polygon)

	panelW := opts.PanelWidthM * opts.PixelsPerMeter
	panelH := opts.PanelHeightM * opts.PixelsPerMeter
	spacing := opts.SpacingM * opts.PixelsPerMeter
	if opts.Orientation == "portrait" {
		panelW, panelH = panelH, panelW
	}
	panelArea := panelW * panelH

	result := Result{Success: true, Panels: []PanelPlacement{}}

	// Oversized panels still run to completion (yielding zero panels) and
	// surface a suggested alternate scale instead of failing.
	if panelW > bbox.Width || panelH > bbox.Height {
		result.SuggestedScale = math.Round(math.Min(
			bbox.Width/(opts.PanelWidthM*10),
			bbox.Height/(opts.PanelHeightM*10),
		))
		result.Message = fmt.Sprintf(
			"Panel (%.0fx%.0fpx) exceeds the roof bounding box (%.0fx%.0fpx); try pixels_per_meter near %.0f",
			panelW, panelH, bbox.Width, bbox.Height, result.SuggestedScale)
	}

	row := 0
	for y := bbox.Y + spacing; y+panelH <= bbox.Y+bbox.Height; y += panelH + spacing {
		col := 0
		for x := bbox.X + spacing; x+panelW <= bbox.X+bbox.Width; x += panelW + spacing {
			panel := geometry.Rect{X: x, Y: y, Width: panelW, Height: panelH}

			if p.containment(panel, panelArea) < minContainment {
				continue
			}
			if p.blockedByObstacle(panel, panelArea) {
				continue
			}

			result.Panels = append(result.Panels, PanelPlacement{
				X:      int(x),
				Y:      int(y),
				Width:  int(panelW),
				Height: int(panelH),
				Row:    row,
				Col:    col,
			})
			col++
		}
		row++
	}

	stats := ComputeStatistics(len(result.Panels), geometry.Area(p.polygon), opts)
	result.TotalPanels = stats.TotalPanels
	result.TotalPowerKW = stats.TotalPowerKW
	result.CoveragePercent = stats.CoveragePercent
	result.RoofAreaM2 = stats.RoofAreaM2
	result.PanelAreaM2 = stats.PanelAreaM2
	result.RepairMethod = string(p.repair)

	if result.TotalPanels == 0 && result.Message == "" {
		result.Message = "No panels fit the roof with the given parameters"
	}

	return result
}

// containment computes intersection(panel, roof) / area(panel).
func (p *Planner) containment(panel geometry.Rect, panelArea float64) float64 {
	if panelArea <= 0 {
		return 0
	}
	clipped := geometry.IntersectPolygons(p.polygon, panel.Corners())
	if clipped == nil {
		return 0
	}
	return geometry.Area(clipped) / panelArea
}

// blockedByObstacle reports whether the panel overlaps any single obstacle
// by more than the tolerated fraction of its own area.
func (p *Planner) blockedByObstacle(panel geometry.Rect, panelArea float64) bool {
	for _, obs := range p.obstacles {
		if !panel.Intersects(obs) {
			continue
		}
		if panel.Intersection(obs).Area()/panelArea > maxObstacleOverlap {
			return true
		}
	}
	return false
}

// Calculate is the one-shot entry point: it repairs the polygon, packs
// panels and maps invalid input to a structured failure result.
func Calculate(points []geometry.Point2D, obstacles []Obstacle, opts Options) Result {
	planner, err := NewPlanner(points, obstacles)
	if err != nil {
		return Result{Success: false, Panels: []PanelPlacement{}, Error: err.Error()}
	}
	return planner.Plan(opts)
}
