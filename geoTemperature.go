package genworldplanar

import (
	"math"

	"github.com/Flokey82/genworldplanar/climate"
	"github.com/Flokey82/genworldplanar/various"
)

// assignTemperature computes the normalized temperature of every cell from
// the latitude profile, some noise and the altitude.
func (t *Terrain) assignTemperature() {
	for i := range t.Cells {
		c := &t.Cells[i]
		c.Latitude = t.latitudeAt(c.Site[1])
		c.SolarInsolation = climate.AverageAnnualInsolation(c.Latitude)
		c.Temperature = t.baseTemperature(c.Site[0], c.Site[1])
		c.RadiantTemperature = c.Temperature
		c.ElevationTemperature = 0
	}

	// Smooth all channels.
	temp := t.smooth(t.channel(func(c *Cell) float64 { return c.Temperature }))
	radiant := t.smooth(t.channel(func(c *Cell) float64 { return c.RadiantTemperature }))
	elevTemp := t.smooth(t.channel(func(c *Cell) float64 { return c.ElevationTemperature }))

	// Altitude lapse of 0.03 (3°C) per 1000m.
	for i := range t.Cells {
		c := &t.Cells[i]
		if c.Elevation > t.Config.SeaLevel {
			lapse := t.Config.ElevationInMetersAsl(c.Elevation) / 1000 * 0.03
			temp[i] -= lapse
			elevTemp[i] = lapse
		}
	}

	// All channels share the bounds of the temperature channel.
	min, max := bounds(temp)
	normalizeChannel(temp, min, max)
	normalizeChannel(radiant, min, max)
	normalizeChannel(elevTemp, min, max)

	mod := t.Config.Temperature.GlobalModifier
	for i := range t.Cells {
		c := &t.Cells[i]
		c.Temperature = various.Clamp(temp[i]+mod, 0, 1)
		c.RadiantTemperature = radiant[i]
		c.ElevationTemperature = elevTemp[i]
	}
}

// latitudeAt returns the latitude in degrees for the given y coordinate.
// The top edge of the map is the north pole.
func (t *Terrain) latitudeAt(y float64) float64 {
	return 90 - 180*y/t.Config.Height
}

// baseTemperature returns the un-normalized temperature at (x, y): a narrow
// spike around the equator and a damped cosine elsewhere.
func (t *Terrain) baseTemperature(x, y float64) float64 {
	yn := y / t.Config.Height
	n := t.noise.Octaves(x, y, 10, 2, 0.7, 2, 1, 0, 0) * 0.05

	var temp float64
	if yn > 0.435 && yn < 0.565 {
		temp = 1 - math.Abs(math.Cos(math.Pi*yn+n))
	} else {
		temp = math.Pow((1-math.Cos(2*math.Pi*yn+n))/2, 0.1) - 0.2
	}
	return temp + 0.03*t.noise.Octaves(x, y, 10, 3, 0.9, 5, 0.5, 0.5, 0)
}
