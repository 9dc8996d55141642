package genworldplanar

import "math"

// SeaLevelPressure is the air pressure at sea level in kPa.
const SeaLevelPressure = 101.325

// assignPressure applies the barometric formula to every cell.
func (t *Terrain) assignPressure() {
	for i := range t.Cells {
		c := &t.Cells[i]
		c.Pressure = t.Config.PressureAt(c.Elevation)
	}
}

// PressureAt returns the air pressure in kPa at the given normalized
// elevation.
func (c *Config) PressureAt(e float64) float64 {
	return SeaLevelPressure * math.Exp(-0.00012*c.ElevationInMetersAsl(e))
}
