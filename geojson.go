package genworldplanar

import (
	geojson "github.com/paulmach/go.geojson"
)

// GeoJSONCells returns all cells as polygon features with their attributes.
// Coordinates are map units.
func (t *Terrain) GeoJSONCells() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i := range t.Cells {
		c := &t.Cells[i]
		if len(c.Polygon) == 0 {
			continue
		}
		ring := make([][]float64, 0, len(c.Polygon)+1)
		for _, p := range c.Polygon {
			ring = append(ring, []float64{p[0], p[1]})
		}
		ring = append(ring, []float64{c.Polygon[0][0], c.Polygon[0][1]})

		f := geojson.NewPolygonFeature([][][]float64{ring})
		t.setCellProperties(f, i)
		fc.AddFeature(f)
	}
	return fc.MarshalJSON()
}

// GeoJSONCell returns a single cell as a point feature at its site.
func (t *Terrain) GeoJSONCell(i int) ([]byte, error) {
	c := &t.Cells[i]
	f := geojson.NewPointFeature([]float64{c.Site[0], c.Site[1]})
	t.setCellProperties(f, i)
	return f.MarshalJSON()
}

func (t *Terrain) setCellProperties(f *geojson.Feature, i int) {
	c := &t.Cells[i]
	f.SetProperty("id", c.ID)
	f.SetProperty("featureType", c.FeatureType.String())
	f.SetProperty("featureIndex", c.FeatureIndex)
	if ft := t.FeatureOf(i); ft != nil {
		f.SetProperty("featureName", ft.Name)
	}
	f.SetProperty("elevation", c.Elevation)
	f.SetProperty("metersAsl", t.Config.ElevationInMetersAsl(c.Elevation))
	f.SetProperty("temperature", TemperatureInCelsius(c.Temperature))
	f.SetProperty("latitude", c.Latitude)
	f.SetProperty("pressure", c.Pressure)
	f.SetProperty("windVelocity", c.Wind.Velocity)
	f.SetProperty("windTarget", c.Wind.Target)
	f.SetProperty("moisture", c.Moisture)
	f.SetProperty("absoluteHumidity", c.AbsoluteHumidity)
	f.SetProperty("relativeHumidity", c.RelativeHumidity)
	f.SetProperty("flux", c.Downhill.Flux)
	f.SetProperty("isRiver", c.IsRiver)
	f.SetProperty("biome", t.BiomeName(i))
}

// GeoJSONRivers returns every river segment as a line string feature.
func (t *Terrain) GeoJSONRivers() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i := range t.Cells {
		c := &t.Cells[i]
		if !c.IsRiver {
			continue
		}
		to := t.Cells[c.Downhill.Target].Site
		f := geojson.NewLineStringFeature([][]float64{{c.Site[0], c.Site[1]}, {to[0], to[1]}})
		f.SetProperty("from", i)
		f.SetProperty("to", c.Downhill.Target)
		f.SetProperty("flux", c.Downhill.Flux)
		fc.AddFeature(f)
	}
	return fc.MarshalJSON()
}

// GeoJSONWind returns the wind of every cell as a line string from the cell
// site along the wind force.
func (t *Terrain) GeoJSONWind() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i := range t.Cells {
		c := &t.Cells[i]
		if c.Wind.Velocity == 0 {
			continue
		}
		end := []float64{c.Site[0] + c.Wind.Force.X, c.Site[1] + c.Wind.Force.Y}
		f := geojson.NewLineStringFeature([][]float64{{c.Site[0], c.Site[1]}, end})
		f.SetProperty("cell", i)
		f.SetProperty("velocity", c.Wind.Velocity)
		f.SetProperty("target", c.Wind.Target)
		fc.AddFeature(f)
	}
	return fc.MarshalJSON()
}

// GeoJSONCoastlines returns the outline segments of every land mass.
func (t *Terrain) GeoJSONCoastlines() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i := range t.Features {
		ft := &t.Features[i]
		if ft.Type != FeatureLand {
			continue
		}
		var lines [][][]float64
		for _, e := range t.Coastline(ft) {
			edge := t.Mesh.Edges[e]
			lines = append(lines, [][]float64{{edge.A[0], edge.A[1]}, {edge.B[0], edge.B[1]}})
		}
		f := geojson.NewMultiLineStringFeature(lines...)
		f.SetProperty("name", ft.Name)
		f.SetProperty("index", ft.Index)
		f.SetProperty("size", ft.Size)
		fc.AddFeature(f)
	}
	return fc.MarshalJSON()
}
