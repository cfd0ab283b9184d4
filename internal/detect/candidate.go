// Package detect proposes roof boundary polygons from rooftop imagery using
// several independent computer-vision strategies with scoring and
// deduplication.
package detect

import (
	"roof-planner/pkg/geometry"
)

// BoundaryCandidate is a proposed roof boundary polygon with a confidence
// score. Candidates are ephemeral: they exist only for the duration of a
// detection run and are handed to the caller for human confirmation.
type BoundaryCandidate struct {
	Points      []geometry.Point2D `json:"points"`
	Vertices    int                `json:"vertices"`
	AreaPx      float64            `json:"area_px"`
	AreaRatio   float64            `json:"area_ratio"`
	Confidence  float64            `json:"confidence"`
	PerimeterPx float64            `json:"perimeter"`
}

// Bounds returns the candidate's axis-aligned bounding box.
func (c BoundaryCandidate) Bounds() geometry.Rect {
	return geometry.BoundingBox(c.Points)
}

// Dimensions reports the pixel size of the analyzed image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result is the outcome of one detection run. Zero candidates is a
// successful, recoverable outcome, not an error; Success is false only for
// unusable input.
type Result struct {
	Success         bool                `json:"success"`
	Candidates      []BoundaryCandidate `json:"candidates"`
	TotalFound      int                 `json:"total_found"`
	ImageDimensions *Dimensions         `json:"image_dimensions,omitempty"`
	Message         string              `json:"message,omitempty"`
	Error           string              `json:"error,omitempty"`
}

// EmptyResult builds the zero-candidate success outcome shared by blank
// images, timeouts and failed segmentation back-ends.
func EmptyResult(message string) Result {
	return Result{
		Success:    true,
		Candidates: []BoundaryCandidate{},
		Message:    message,
	}
}
