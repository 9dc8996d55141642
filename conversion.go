package genworldplanar

import "math"

// MaxElevationMeters is the height in meters of a cell with elevation 1.
const MaxElevationMeters = 8000

// ElevationInMetersAsl converts a normalized elevation into meters above
// sea level. Everything at or below sea level is 0.
func (c *Config) ElevationInMetersAsl(e float64) float64 {
	if e <= c.SeaLevel {
		return 0
	}
	return math.Pow((e-c.SeaLevel)/(1-c.SeaLevel), 2) * MaxElevationMeters
}

// IsBelowSeaLevel returns true if the given elevation is under water.
func (c *Config) IsBelowSeaLevel(e float64) bool {
	return e < c.SeaLevel
}

// TemperatureInCelsius converts a normalized temperature into °C.
func TemperatureInCelsius(t float64) float64 {
	return t*100 - 50
}

// ElevationFromMetersAsl is the inverse of ElevationInMetersAsl for heights
// above 0m.
func (c *Config) ElevationFromMetersAsl(m float64) float64 {
	if m <= 0 {
		return c.SeaLevel
	}
	return c.SeaLevel + math.Sqrt(m/MaxElevationMeters)*(1-c.SeaLevel)
}

// CelsiusToTemperature converts °C into a normalized temperature.
func CelsiusToTemperature(c float64) float64 {
	return (c + 50) / 100
}
