package genworldplanar

import (
	"github.com/Flokey82/genworldplanar/various"
)

type cellField struct {
	name        string
	nonNegative bool
	get         func(c *Cell) float64
}

// checkedFields are scanned after every stage. Fields not yet written by an
// earlier stage are zero and pass.
var checkedFields = []cellField{
	{"elevation", true, func(c *Cell) float64 { return c.Elevation }},
	{"temperature", false, func(c *Cell) float64 { return c.Temperature }},
	{"pressure", true, func(c *Cell) float64 { return c.Pressure }},
	{"wind velocity", true, func(c *Cell) float64 { return c.Wind.Velocity }},
	{"moisture", true, func(c *Cell) float64 { return c.Moisture }},
	{"absolute humidity", true, func(c *Cell) float64 { return c.AbsoluteHumidity }},
	{"relative humidity", true, func(c *Cell) float64 { return c.RelativeHumidity }},
	{"flux", true, func(c *Cell) float64 { return c.Downhill.Flux }},
	{"erosion rate", true, func(c *Cell) float64 { return c.Downhill.ErosionRate }},
}

// checkCells returns a *StageError for the first NaN, infinite or
// (where physically bounded) negative value.
func (t *Terrain) checkCells(stage string) error {
	for i := range t.Cells {
		c := &t.Cells[i]
		for _, f := range checkedFields {
			v := f.get(c)
			if !various.IsFinite(v) || (f.nonNegative && v < 0) {
				return &StageError{Stage: stage, Cell: i, Field: f.name, Value: v}
			}
		}
	}
	return nil
}
