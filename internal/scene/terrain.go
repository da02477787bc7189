package scene

import (
	"math"

	"github.com/jakecoffman/cp/v2"

	"github.com/Ali3noid/car-box-2d/internal/config"
)

// TerrainHeight returns the ground height at x: two overlaid sine waves,
// a long slow roll plus a shorter ripple.
func TerrainHeight(t config.TerrainConfig, x float64) float64 {
	return t.Amp1*math.Sin(t.Freq1*x) + t.Amp2*math.Sin(t.Freq2*x)
}

// TerrainPoints samples the terrain curve over [XMin, XMax] at Step spacing.
// The result is a pure function of the config; no randomness.
func TerrainPoints(t config.TerrainConfig) []cp.Vector {
	n := int(math.Floor((t.XMax-t.XMin)/t.Step)) + 1
	points := make([]cp.Vector, 0, n)
	for i := 0; i < n; i++ {
		x := t.XMin + float64(i)*t.Step
		points = append(points, cp.Vector{X: x, Y: TerrainHeight(t, x)})
	}
	return points
}
