package climate

import (
	"image/color"
	"math"
)

// Domain of the life zone table.
const (
	MinLifeZoneTemperature   = 0.0    // °C
	MaxLifeZoneTemperature   = 30.0   // °C
	MinLifeZonePrecipitation = 0.0    // mm
	MaxLifeZonePrecipitation = 1600.0 // mm
)

// LifeZone is a Holdridge life zone: a rectangle in temperature and
// precipitation space.
type LifeZone struct {
	Name       string
	MinT, MaxT float64 // °C
	MinP, MaxP float64 // mm
	Color      color.NRGBA
}

// Contains returns true if the (already clamped) temperature and
// precipitation fall into the zone. Ranges are half open, except at the
// upper limits of the table domain.
func (z *LifeZone) Contains(t, p float64) bool {
	inT := t >= z.MinT && (t < z.MaxT || (z.MaxT == MaxLifeZoneTemperature && t == z.MaxT))
	inP := p >= z.MinP && (p < z.MaxP || (z.MaxP == MaxLifeZonePrecipitation && p == z.MaxP))
	return inT && inP
}

func hex(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// LifeZones is the life zone table. The rectangles tile the domain
// [0,30]x[0,1600] without gaps or overlaps.
var LifeZones = []LifeZone{
	{"polar desert", 0, 1.5, 0, 1600, hex(0xfc, 0xfc, 0xfc)},

	{"subpolar dry tundra", 1.5, 3, 0, 12.5, hex(0x80, 0x80, 0x80)},
	{"subpolar moist tundra", 1.5, 3, 12.5, 25, hex(0x60, 0x80, 0x80)},
	{"subpolar wet tundra", 1.5, 3, 25, 50, hex(0x40, 0x80, 0x90)},
	{"subpolar rain tundra", 1.5, 3, 50, 1600, hex(0x20, 0x80, 0xc0)},

	{"boreal desert", 3, 6, 0, 12.5, hex(0xa0, 0xa0, 0x80)},
	{"boreal dry scrub", 3, 6, 12.5, 25, hex(0x80, 0xa0, 0x80)},
	{"boreal moist forest", 3, 6, 25, 50, hex(0x60, 0xa0, 0x80)},
	{"boreal wet forest", 3, 6, 50, 100, hex(0x40, 0xa0, 0x90)},
	{"boreal rain forest", 3, 6, 100, 1600, hex(0x20, 0xa0, 0xc0)},

	{"cool temperate desert", 6, 12, 0, 12.5, hex(0xc0, 0xc0, 0x80)},
	{"cool temperate desert scrub", 6, 12, 12.5, 25, hex(0xa0, 0xc0, 0x80)},
	{"cool temperate steppe", 6, 12, 25, 50, hex(0x80, 0xc0, 0x80)},
	{"cool temperate moist forest", 6, 12, 50, 100, hex(0x60, 0xc0, 0x80)},
	{"cool temperate wet forest", 6, 12, 100, 200, hex(0x40, 0xc0, 0x90)},
	{"cool temperate rain forest", 6, 12, 200, 1600, hex(0x20, 0xc0, 0xc0)},

	{"warm temperate desert", 12, 18, 0, 12.5, hex(0xe0, 0xe0, 0x80)},
	{"warm temperate desert scrub", 12, 18, 12.5, 25, hex(0xc0, 0xe0, 0x80)},
	{"warm temperate thorn scrub", 12, 18, 25, 50, hex(0xa0, 0xe0, 0x80)},
	{"warm temperate dry forest", 12, 18, 50, 100, hex(0x80, 0xe0, 0x80)},
	{"warm temperate moist forest", 12, 18, 100, 200, hex(0x60, 0xe0, 0x80)},
	{"warm temperate wet forest", 12, 18, 200, 400, hex(0x40, 0xe0, 0x90)},
	{"warm temperate rain forest", 12, 18, 400, 1600, hex(0x20, 0xe0, 0xc0)},

	{"subtropical desert", 18, 24, 0, 12.5, hex(0xe0, 0xe0, 0x80)},
	{"subtropical desert scrub", 18, 24, 12.5, 25, hex(0xc0, 0xe0, 0x80)},
	{"subtropical thorn woodland", 18, 24, 25, 50, hex(0xa0, 0xe0, 0x80)},
	{"subtropical dry forest", 18, 24, 50, 100, hex(0x80, 0xe0, 0x80)},
	{"subtropical moist forest", 18, 24, 100, 200, hex(0x60, 0xe0, 0x80)},
	{"subtropical wet forest", 18, 24, 200, 400, hex(0x40, 0xe0, 0x90)},
	{"subtropical rain forest", 18, 24, 400, 1600, hex(0x20, 0xe0, 0xc0)},

	{"tropical desert", 24, 30, 0, 12.5, hex(0xff, 0xff, 0x80)},
	{"tropical desert scrub", 24, 30, 12.5, 25, hex(0xe0, 0xff, 0x80)},
	{"tropical thorn woodland", 24, 30, 25, 50, hex(0xc0, 0xff, 0x80)},
	{"tropical very dry forest", 24, 30, 50, 100, hex(0xa0, 0xff, 0x80)},
	{"tropical dry forest", 24, 30, 100, 200, hex(0x80, 0xff, 0x80)},
	{"tropical moist forest", 24, 30, 200, 400, hex(0x60, 0xff, 0x80)},
	{"tropical wet forest", 24, 30, 400, 800, hex(0x40, 0xff, 0x90)},
	{"tropical rain forest", 24, 30, 800, 1600, hex(0x20, 0xff, 0xa0)},
}

// LifeZoneIndex returns the index into LifeZones for the given temperature
// (°C) and precipitation (mm). The inputs are clamped to the table domain.
// It returns -1 only if the table has a gap.
func LifeZoneIndex(temperature, precipitation float64) int {
	t := clampNaN(temperature, MinLifeZoneTemperature, MaxLifeZoneTemperature)
	p := clampNaN(precipitation, MinLifeZonePrecipitation, MaxLifeZonePrecipitation)
	for i := range LifeZones {
		if LifeZones[i].Contains(t, p) {
			return i
		}
	}
	return -1
}

// LifeZoneAt returns the life zone for the given temperature and
// precipitation, or nil if there is none.
func LifeZoneAt(temperature, precipitation float64) *LifeZone {
	if i := LifeZoneIndex(temperature, precipitation); i >= 0 {
		return &LifeZones[i]
	}
	return nil
}

func clampNaN(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
