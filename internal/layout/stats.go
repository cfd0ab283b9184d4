package layout

import "math"

// Statistics are the aggregate metrics of a placed layout.
type Statistics struct {
	TotalPanels     int     `json:"total_panels"`
	TotalPowerKW    float64 `json:"total_power_kw"`
	RoofAreaM2      float64 `json:"roof_area_m2"`
	PanelAreaM2     float64 `json:"panel_area_m2"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// ComputeStatistics derives aggregate metrics from a panel count, the roof
// polygon's pixel area and the physical options. Pure and side-effect-free.
func ComputeStatistics(panelCount int, roofAreaPx float64, opts Options) Statistics {
	powerKW := float64(panelCount) * opts.PanelPowerW / 1000

	roofAreaM2 := 0.0
	if opts.PixelsPerMeter > 0 {
		roofAreaM2 = roofAreaPx / (opts.PixelsPerMeter * opts.PixelsPerMeter)
	}

	panelAreaM2 := float64(panelCount) * opts.PanelWidthM * opts.PanelHeightM

	coverage := 0.0
	if roofAreaM2 > 0 {
		coverage = panelAreaM2 / roofAreaM2 * 100
	}

	return Statistics{
		TotalPanels:     panelCount,
		TotalPowerKW:    round2(powerKW),
		RoofAreaM2:      round2(roofAreaM2),
		PanelAreaM2:     round2(panelAreaM2),
		CoveragePercent: round2(coverage),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
