package genworldplanar

import (
	"math"

	"github.com/Flokey82/genworldplanar/climate"
)

// Baseline values of water cells. Water is an endless moisture source.
const (
	waterMoisture         = 400.0 // mm
	waterRelativeHumidity = 0.8
)

// assignMoisture carries humidity along the wind target chains, evaporating
// water and dropping precipitation on the way.
func (t *Terrain) assignMoisture() {
	for i := range t.Cells {
		c := &t.Cells[i]
		if c.FeatureType.IsWater() {
			t.pinWaterMoisture(c)
		} else {
			c.Moisture = 0
			c.RelativeHumidity = 0
			c.AbsoluteHumidity = 0
		}
	}

	sinks := t.windSinks()
	for it := 0; it < t.Config.Moisture.Iterations; it++ {
		// Chains starting over the ocean.
		visited := make([]bool, len(t.Cells))
		for _, s := range sinks {
			if t.Cells[s].FeatureType == FeatureOcean {
				t.moistureChain(s, visited)
			}
		}
		t.smoothMoisture()

		// Chains starting over land take their humidity from the
		// surrounding cells.
		visited = make([]bool, len(t.Cells))
		for _, s := range sinks {
			if t.Cells[s].FeatureType == FeatureOcean {
				continue
			}
			t.seedHumidity(s)
			t.moistureChain(s, visited)
		}
		t.smoothMoisture()
	}
}

// windSinks returns all cells no other cell's wind blows into.
func (t *Terrain) windSinks() []int {
	targeted := make([]bool, len(t.Cells))
	for i := range t.Cells {
		if tg := t.Cells[i].Wind.Target; tg >= 0 {
			targeted[tg] = true
		}
	}
	var res []int
	for i, isTarget := range targeted {
		if !isTarget {
			res = append(res, i)
		}
	}
	return res
}

func (t *Terrain) pinWaterMoisture(c *Cell) {
	temp := TemperatureInCelsius(c.Temperature)
	c.Moisture = waterMoisture
	c.RelativeHumidity = waterRelativeHumidity
	avp := waterRelativeHumidity * climate.SaturationVaporPressure(temp)
	c.AbsoluteHumidity = climate.VaporPressureToAbsoluteHumidity(avp, temp)
}

// seedHumidity sets the absolute humidity of cell i to the sum of the
// humidity of all neighbors except its wind target, divided by the number of
// neighbors.
func (t *Terrain) seedHumidity(i int) {
	nbs := t.neighbors(i)
	if len(nbs) == 0 {
		return
	}
	next := t.Cells[i].Wind.Target
	var sum float64
	for _, nb := range nbs {
		if nb != next {
			sum += t.Cells[nb].AbsoluteHumidity
		}
	}
	t.Cells[i].AbsoluteHumidity = sum / float64(len(nbs))
}

// moistureChain follows the wind targets starting at cell start until it
// reaches a cell without target or revisits a step.
func (t *Terrain) moistureChain(start int, visited []bool) {
	cur := start
	for steps := 0; steps < len(t.Cells); steps++ {
		next := t.Cells[cur].Wind.Target
		if next < 0 || (visited[cur] && visited[next]) {
			return
		}
		t.moistureStep(cur, next)
		visited[cur] = true
		cur = next
	}
}

// moistureStep evaporates and precipitates in cell cur and hands the
// remaining humidity to cell next.
func (t *Terrain) moistureStep(cur, next int) {
	c, n := &t.Cells[cur], &t.Cells[next]
	if c.FeatureType == FeatureOcean {
		t.pinWaterMoisture(c)
	}

	ce := t.Config.ElevationInMetersAsl(c.Elevation)
	ne := t.Config.ElevationInMetersAsl(n.Elevation)
	ct := TemperatureInCelsius(c.Temperature)
	nt := TemperatureInCelsius(n.Temperature)

	csvp := climate.SaturationVaporPressure(ct)
	cavp := climate.AbsoluteHumidityToVaporPressure(c.AbsoluteHumidity, ct)
	crh := cavp / csvp
	wf := math.Max(2, c.Wind.Velocity)

	// Evaporation.
	er := math.Max(0, climate.EvaporationRate(ct, c.Pressure, c.SolarInsolation, c.Wind.Velocity, csvp, cavp))
	possible := math.Min(c.Moisture, er)
	c.Moisture = math.Max(0, c.Moisture-possible)
	c.AbsoluteHumidity += possible / 100

	// Orographic lift, cooling by 3°C per 1000m of ascent.
	if ne > ce {
		rh := climate.RelativeHumidity(c.AbsoluteHumidity, ct-(ne-ce)/1000*3)
		if rh > 1 {
			precipitate(c, (rh-1)*c.AbsoluteHumidity/wf)
		}
		if nn := n.Wind.Target; nn >= 0 {
			if nne := t.Config.ElevationInMetersAsl(t.Cells[nn].Elevation); nne > ne {
				rh := climate.RelativeHumidity(c.AbsoluteHumidity, nt-(nne-ne)/1000*3)
				if rh > 1 {
					precipitate(c, (rh-1)*c.AbsoluteHumidity/wf/10)
				}
			}
		}
	}

	// Supersaturated air rains out.
	if crh > 1 {
		precipitate(c, (crh-1)*c.AbsoluteHumidity/wf)
	}

	// Moisture pulse at the coast.
	if c.FeatureType == FeatureOcean && n.FeatureType != FeatureOcean {
		diff := math.Min(c.AbsoluteHumidity, 2*t.Rand.Float64())
		n.Moisture += diff * 100
		c.AbsoluteHumidity -= diff
	}

	// Random showers over land.
	if r := t.Rand.Float64(); c.FeatureType == FeatureLand && r < 0.2 && c.AbsoluteHumidity > 0 {
		precipitate(c, c.AbsoluteHumidity*r/wf)
	}

	n.AbsoluteHumidity = c.AbsoluteHumidity
	c.RelativeHumidity = climate.AbsoluteHumidityToVaporPressure(c.AbsoluteHumidity, ct) / csvp
}

// precipitate moves up to diff g/m³ of humidity into the moisture of c.
func precipitate(c *Cell, diff float64) {
	diff = math.Max(0, math.Min(diff, c.AbsoluteHumidity))
	c.Moisture += diff * 100
	c.AbsoluteHumidity -= diff
}

// smoothMoisture averages the moisture of every cell that is not ocean with
// its neighbors that are not ocean.
func (t *Terrain) smoothMoisture() {
	res := make([]float64, len(t.Cells))
	for i := range t.Cells {
		c := &t.Cells[i]
		res[i] = c.Moisture
		if c.FeatureType == FeatureOcean {
			continue
		}
		sum, count := c.Moisture, 1.0
		for _, nb := range t.neighbors(i) {
			if t.Cells[nb].FeatureType != FeatureOcean {
				sum += t.Cells[nb].Moisture
				count++
			}
		}
		res[i] = sum / count
	}
	for i, v := range res {
		t.Cells[i].Moisture = v
	}
}
