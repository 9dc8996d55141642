// Package climate contains the closed form physics used by the climate
// stages: humidity conversions, evaporation, solar geometry and the life
// zone table.
package climate

import "math"

// VaporPressureToAbsoluteHumidity converts the vapor pressure (kPa) at the
// given temperature (°C) into the density of water vapor in air (g/m³).
func VaporPressureToAbsoluteHumidity(pressure, temperature float64) float64 {
	return 2.16679 * pressure * 1000 / (temperature + 273.15)
}

// AbsoluteHumidityToVaporPressure converts the density of water vapor in air
// (g/m³) at the given temperature (°C) into the vapor pressure (kPa).
func AbsoluteHumidityToVaporPressure(density, temperature float64) float64 {
	return density * (temperature + 273.15) / 2.16679 / 1000
}

// BuckLiquid returns the saturation vapor pressure (kPa) over liquid water.
// See: https://en.wikipedia.org/wiki/Arden_Buck_equation
func BuckLiquid(temperature float64) float64 {
	return 0.61121 * math.Exp((18.678-temperature/234.5)*(temperature/(257.14+temperature)))
}

// BuckIce returns the saturation vapor pressure (kPa) over ice.
func BuckIce(temperature float64) float64 {
	return 0.61115 * math.Exp((23.036-temperature/333.7)*(temperature/(279.82+temperature)))
}

// SaturationVaporPressure returns the saturation vapor pressure (kPa) at the
// given temperature (°C), using the ice branch at or below freezing.
func SaturationVaporPressure(temperature float64) float64 {
	if temperature > 0 {
		return BuckLiquid(temperature)
	}
	return BuckIce(temperature)
}

// RelativeHumidity returns the ratio of actual to saturation vapor pressure
// for the given absolute humidity (g/m³) and temperature (°C).
func RelativeHumidity(absoluteHumidity, temperature float64) float64 {
	svp := SaturationVaporPressure(temperature)
	if svp <= 0 {
		return 0
	}
	return AbsoluteHumidityToVaporPressure(absoluteHumidity, temperature) / svp
}

// EvaporationRate returns the reference evaporation in mm/day following the
// Penman-Monteith form given in
// http://edis.ifas.ufl.edu/pdffiles/ae/ae45900.pdf
//
// temperature is in °C, pressure in kPa, insolation in kWh/m²/day, windSpeed
// in m/s and both vapor pressures in kPa.
func EvaporationRate(temperature, pressure, insolation, windSpeed, saturationVaporPressure, actualVaporPressure float64) float64 {
	const g = 0.082
	r := insolation * 3.6
	t := temperature
	psychrometric := 0.000665 * pressure
	slope := 4098 * (0.6108 * math.Exp(17.27*t/(t+237.3))) / math.Pow(t+237.3, 2)
	num := 0.408*slope*(r-g) + psychrometric*(900/(t+273))*windSpeed*(saturationVaporPressure-actualVaporPressure)
	return num / (slope + psychrometric*(1+0.34*windSpeed))
}
