package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatistics(t *testing.T) {
	t.Parallel()

	stats := ComputeStatistics(45, 1_000_000, DefaultOptions())
	assert.Equal(t, 45, stats.TotalPanels)
	assert.Equal(t, 18.0, stats.TotalPowerKW)
	assert.Equal(t, 100.0, stats.RoofAreaM2)
	assert.Equal(t, 76.5, stats.PanelAreaM2)
	assert.Equal(t, 76.5, stats.CoveragePercent)
}

func TestComputeStatisticsZeroRoofArea(t *testing.T) {
	t.Parallel()

	stats := ComputeStatistics(3, 0, DefaultOptions())
	assert.Equal(t, 0.0, stats.CoveragePercent)
	assert.Equal(t, 1.2, stats.TotalPowerKW)
}

func TestComputeStatisticsRounding(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.PanelPowerW = 333
	stats := ComputeStatistics(1, 123_456, opts)
	assert.Equal(t, 0.33, stats.TotalPowerKW)
	assert.Equal(t, 12.35, stats.RoofAreaM2)
}

func TestComputeStatisticsZeroScale(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.PixelsPerMeter = 0
	stats := ComputeStatistics(2, 1_000_000, opts)
	assert.Equal(t, 0.0, stats.RoofAreaM2)
	assert.Equal(t, 0.0, stats.CoveragePercent)
}
