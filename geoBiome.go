package genworldplanar

import (
	"image/color"

	"github.com/Flokey82/genbiome"
	"github.com/Flokey82/genworldplanar/climate"
)

// assignBiomes looks up the life zone and the Whittaker biome of every land
// cell. Water cells have no biome.
func (t *Terrain) assignBiomes() {
	for i := range t.Cells {
		c := &t.Cells[i]
		if c.FeatureType.IsWater() {
			c.Biome = -1
			c.WhittakerBiome = -1
			continue
		}
		tempC := TemperatureInCelsius(c.Temperature)
		c.Biome = climate.LifeZoneIndex(tempC, c.Moisture)
		c.WhittakerBiome = genbiome.GetWhittakerModBiome(int(tempC), int(c.Moisture/100))
	}
}

// LifeZone returns the life zone of the given cell, or nil for water.
func (t *Terrain) LifeZone(cell int) *climate.LifeZone {
	if b := t.Cells[cell].Biome; b >= 0 {
		return &climate.LifeZones[b]
	}
	return nil
}

// BiomeName returns the name of the biome of the given cell.
func (t *Terrain) BiomeName(cell int) string {
	c := &t.Cells[cell]
	if c.FeatureType.IsWater() {
		return c.FeatureType.String()
	}
	if z := t.LifeZone(cell); z != nil {
		return z.Name
	}
	return genbiome.WhittakerModBiomeToString(c.WhittakerBiome)
}

// WhittakerColor returns the Whittaker biome color of the given cell.
func (t *Terrain) WhittakerColor(cell int) color.NRGBA {
	c := &t.Cells[cell]
	tempC := TemperatureInCelsius(c.Temperature)
	return genbiome.GetWhittakerModBiomeColor(int(tempC), int(c.Moisture/100), 0.5)
}
