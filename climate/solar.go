package climate

import (
	"math"
	"sync"

	"github.com/Flokey82/genworldplanar/various"
)

// SolarConstant is the solar irradiance in kW/m² used for insolation.
const SolarConstant = 1.3608

// Declination returns the solar declination in degrees on the given day of
// the year (1-365).
func Declination(day int) float64 {
	return 23.45 * math.Sin(2*math.Pi/365*float64(day+284))
}

// HourAngle returns the hour angle in degrees for the given local hour.
func HourAngle(hour int) float64 {
	return 15 * float64(hour-12)
}

// Zenith returns the solar zenith angle in radians.
func Zenith(latitude float64, day, hour int) float64 {
	l := various.DegToRad(latitude)
	d := various.DegToRad(Declination(day))
	h := various.DegToRad(HourAngle(hour))
	cos := math.Sin(l)*math.Sin(d) + math.Cos(l)*math.Cos(d)*math.Cos(h)
	return math.Acos(various.Clamp(cos, -1, 1))
}

// Insolation returns the solar insolation in kW/m² at the given latitude,
// day and hour. Negative values mean the sun is below the horizon.
func Insolation(latitude float64, day, hour int) float64 {
	return SolarConstant * math.Cos(Zenith(latitude, day, hour))
}

// AnnualInsolation returns the average daily insolation (kWh/m²/day) over a
// year at the given latitude.
func AnnualInsolation(latitude float64) float64 {
	var annual float64
	for d := 1; d <= 365; d++ {
		for h := 0; h < 24; h++ {
			annual += math.Max(Insolation(latitude, d, h), 0)
		}
	}
	return annual / 365
}

var (
	insolationOnce  sync.Once
	insolationTable [181]float64
)

// AverageAnnualInsolation looks up AnnualInsolation for the latitude rounded
// to a whole degree and clamped to [-90, 90]. The table is computed on first
// use.
func AverageAnnualInsolation(latitude float64) float64 {
	insolationOnce.Do(func() {
		various.KickOffChunkWorkers(len(insolationTable), func(start, end int) {
			for i := start; i < end; i++ {
				insolationTable[i] = AnnualInsolation(float64(i - 90))
			}
		})
	})
	if math.IsNaN(latitude) {
		latitude = 0
	}
	l := int(math.Round(various.Clamp(latitude, -90, 90)))
	return insolationTable[l+90]
}
