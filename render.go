package genworldplanar

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dsvg"
	"github.com/mazznoer/colorgrad"

	"github.com/Flokey82/genworldplanar/various"
)

// The layers that can be rendered.
const (
	LayerElevation        = "elevation"
	LayerGreyscale        = "greyscale"
	LayerFeatures         = "features"
	LayerStep             = "step"
	LayerTemperature      = "temperature"
	LayerPressure         = "pressure"
	LayerWind             = "wind"
	LayerMoisture         = "moisture"
	LayerAbsoluteHumidity = "absoluteHumidity"
	LayerRelativeHumidity = "relativeHumidity"
	LayerRivers           = "rivers"
	LayerCoastline        = "coastline"
	LayerBiomes           = "biomes"
	LayerWhittaker        = "whittaker"
	LayerPlates           = "plates"
)

// Layers lists all layer names in rendering order of the batch runner.
var Layers = []string{
	LayerElevation, LayerGreyscale, LayerFeatures, LayerStep, LayerTemperature,
	LayerPressure, LayerWind, LayerMoisture, LayerAbsoluteHumidity,
	LayerRelativeHumidity, LayerRivers, LayerCoastline, LayerBiomes,
	LayerWhittaker, LayerPlates,
}

var (
	colOcean = color.NRGBA{0x71, 0xAB, 0xD8, 0xFF}
	colLand  = color.NRGBA{0x94, 0xBF, 0x8B, 0xFF}
	colLake  = color.NRGBA{0xD8, 0xF2, 0xFE, 0xFF}
	colIce   = color.NRGBA{0xF0, 0xF0, 0xF0, 0xFF}
	colShelf = color.NRGBA{0x44, 0x6C, 0xDE, 0xFF}
	colDeep  = color.NRGBA{0x07, 0x1B, 0xCA, 0xFF}
	colRiver = color.NRGBA{0x00, 0x00, 0xFF, 0xFF}
	colWind  = color.NRGBA{0xFF, 0x00, 0x00, 0xFF}
	colCoast = color.NRGBA{0x00, 0x00, 0x00, 0xFF}
)

// RenderImage draws the given layer into a new image. Map units are
// multiplied by scale to get pixels.
func (t *Terrain) RenderImage(layer string, scale float64) (image.Image, error) {
	w := int(math.Ceil(t.Config.Width * scale))
	h := int(math.Ceil(t.Config.Height * scale))
	dest := image.NewRGBA(image.Rect(0, 0, w, h))
	gc := draw2dimg.NewGraphicContext(dest)
	if err := t.drawLayer(gc, layer, scale); err != nil {
		return nil, err
	}
	return dest, nil
}

// ExportPNG renders the given layer to a PNG file.
func (t *Terrain) ExportPNG(path, layer string, scale float64) error {
	img, err := t.RenderImage(layer, scale)
	if err != nil {
		return err
	}
	return draw2dimg.SaveToPngFile(path, img)
}

// ExportSVG renders the given layer to an SVG file.
func (t *Terrain) ExportSVG(path, layer string, scale float64) error {
	dest := draw2dsvg.NewSvg()
	gc := draw2dsvg.NewGraphicContext(dest)
	if err := t.drawLayer(gc, layer, scale); err != nil {
		return err
	}
	return draw2dsvg.SaveToSvgFile(path, dest)
}

func (t *Terrain) drawLayer(gc draw2d.GraphicContext, layer string, scale float64) error {
	colorFunc, err := t.cellColorFunc(layer)
	if err != nil {
		return err
	}
	gc.Scale(scale, scale)
	gc.SetLineWidth(0.1)
	for i := range t.Cells {
		poly := t.Cells[i].Polygon
		if len(poly) == 0 {
			continue
		}
		col := colorFunc(i)
		gc.SetFillColor(col)
		gc.SetStrokeColor(col)
		gc.BeginPath()
		gc.MoveTo(poly[0][0], poly[0][1])
		for _, p := range poly[1:] {
			gc.LineTo(p[0], p[1])
		}
		gc.Close()
		gc.FillStroke()
	}

	// Overlays.
	switch layer {
	case LayerWind:
		t.drawWind(gc)
	case LayerRivers:
		t.drawRivers(gc)
	case LayerCoastline:
		t.drawCoastline(gc)
	case LayerPlates:
		t.drawPlates(gc)
	}
	return nil
}

// cellColorFunc returns the function that picks the fill color of a cell for
// the given layer.
func (t *Terrain) cellColorFunc(layer string) (func(i int) color.Color, error) {
	switch layer {
	case LayerElevation:
		return t.elevationColorFunc()
	case LayerGreyscale:
		return func(i int) color.Color {
			return color.Gray{Y: uint8(255 * various.Clamp(t.Cells[i].Elevation, 0, 1))}
		}, nil
	case LayerFeatures, LayerRivers, LayerCoastline, LayerPlates:
		return t.featureColor, nil
	case LayerStep:
		return func(i int) color.Color {
			return color.Gray{Y: uint8(255 * various.Clamp(1-t.Cells[i].Step, 0, 1))}
		}, nil
	case LayerTemperature:
		grad := colorgrad.Spectral()
		return func(i int) color.Color {
			return grad.At(1 - t.Cells[i].Temperature)
		}, nil
	case LayerPressure:
		grad := colorgrad.Blues()
		return func(i int) color.Color {
			return grad.At(t.Cells[i].Pressure / SeaLevelPressure)
		}, nil
	case LayerWind:
		grad := colorgrad.Greys()
		_, max := minMax(t.channel(func(c *Cell) float64 { return c.Wind.Velocity }))
		return func(i int) color.Color {
			if max == 0 {
				return grad.At(0)
			}
			return grad.At(0.5 * t.Cells[i].Wind.Velocity / max)
		}, nil
	case LayerMoisture:
		grad := colorgrad.Spectral()
		return func(i int) color.Color {
			return grad.At(various.Clamp(t.Cells[i].Moisture/waterMoisture, 0, 1))
		}, nil
	case LayerAbsoluteHumidity:
		grad := colorgrad.Spectral()
		_, max := minMax(t.channel(func(c *Cell) float64 { return c.AbsoluteHumidity }))
		return func(i int) color.Color {
			if max == 0 {
				return grad.At(0)
			}
			return grad.At(t.Cells[i].AbsoluteHumidity / max)
		}, nil
	case LayerRelativeHumidity:
		grad := colorgrad.Blues()
		return func(i int) color.Color {
			return grad.At(various.Clamp(t.Cells[i].RelativeHumidity, 0, 1))
		}, nil
	case LayerBiomes:
		return t.biomeColor, nil
	case LayerWhittaker:
		return func(i int) color.Color {
			if t.Cells[i].FeatureType.IsWater() {
				return t.featureColor(i)
			}
			return t.WhittakerColor(i)
		}, nil
	}
	return nil, fmt.Errorf("unknown layer %q", layer)
}

func (t *Terrain) featureColor(i int) color.Color {
	switch t.Cells[i].FeatureType {
	case FeatureOcean:
		return colOcean
	case FeatureLake:
		return colLake
	}
	return colLand
}

// elevationColorFunc colors the ocean with a light blue ramp and the land
// from green over sand and brown to snow.
func (t *Terrain) elevationColorFunc() (func(i int) color.Color, error) {
	sea := t.Config.SeaLevel
	oceanGrad := colorgrad.NewGradient()
	oceanGrad.Colors(colOcean, colLake)
	ocean, err := oceanGrad.Build()
	if err != nil {
		return nil, err
	}

	landGrad := colorgrad.NewGradient()
	landGrad.Colors(
		colLand,
		color.NRGBA{0xEF, 0xEB, 0xC0, 0xFF},
		color.NRGBA{0xAA, 0x87, 0x53, 0xFF},
		color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF},
	)
	if sea < 0.4 {
		landGrad.Domain(sea, 0.4, 0.7, 0.95)
	} else {
		landGrad.Domain(sea, 1)
	}
	land, err := landGrad.Build()
	if err != nil {
		return nil, err
	}

	return func(i int) color.Color {
		c := &t.Cells[i]
		if c.FeatureType == FeatureLake {
			return colLake
		}
		if t.Config.IsBelowSeaLevel(c.Elevation) {
			if sea == 0 {
				return ocean.At(0)
			}
			return ocean.At(c.Elevation / sea)
		}
		return land.At(c.Elevation)
	}, nil
}

// biomeColor returns the life zone color for land and a color depending on
// temperature and elevation for water.
func (t *Terrain) biomeColor(i int) color.Color {
	c := &t.Cells[i]
	switch c.FeatureType {
	case FeatureOcean:
		if TemperatureInCelsius(c.Temperature) < 0 {
			return colIce
		}
		if c.Elevation > 0.15 {
			return colShelf
		}
		return colDeep
	case FeatureLake:
		return colLake
	}
	if z := t.LifeZone(i); z != nil {
		return z.Color
	}
	return colLand
}

func (t *Terrain) drawSegment(gc draw2d.GraphicContext, a, b [2]float64) {
	gc.BeginPath()
	gc.MoveTo(a[0], a[1])
	gc.LineTo(b[0], b[1])
	gc.Stroke()
}

// drawWind draws the wind vector of every other cell.
func (t *Terrain) drawWind(gc draw2d.GraphicContext) {
	gc.SetStrokeColor(colWind)
	gc.SetLineWidth(0.5)
	for i := range t.Cells {
		c := &t.Cells[i]
		if i%2 == 0 || c.Wind.Velocity == 0 {
			continue
		}
		scalar := 0.5
		if c.Wind.Velocity >= 2 {
			scalar = 0.5 / math.Log(c.Wind.Velocity)
		}
		end := various.Add2(c.Site, various.Scale2(various.FromVec2(c.Wind.Force), scalar*3))
		t.drawSegment(gc, c.Site, end)
	}
}

// drawRivers connects every river cell with its downhill target.
func (t *Terrain) drawRivers(gc draw2d.GraphicContext) {
	gc.SetStrokeColor(colRiver)
	gc.SetLineWidth(0.5)
	for i := range t.Cells {
		c := &t.Cells[i]
		if !c.IsRiver {
			continue
		}
		t.drawSegment(gc, c.Site, t.Cells[c.Downhill.Target].Site)
	}
}

// drawCoastline outlines every land mass.
func (t *Terrain) drawCoastline(gc draw2d.GraphicContext) {
	gc.SetStrokeColor(colCoast)
	gc.SetLineWidth(0.5)
	for i := range t.Features {
		f := &t.Features[i]
		if f.Type != FeatureLand {
			continue
		}
		for _, e := range t.Coastline(f) {
			edge := t.Mesh.Edges[e]
			t.drawSegment(gc, edge.A, edge.B)
		}
	}
}

// drawPlates draws the plate boundaries, red for convergent and blue for
// divergent ones.
func (t *Terrain) drawPlates(gc draw2d.GraphicContext) {
	if t.Plates == nil {
		return
	}
	gc.SetLineWidth(1)
	for _, b := range t.Plates.Boundaries {
		if b.Divergent {
			gc.SetStrokeColor(colRiver)
		} else {
			gc.SetStrokeColor(colWind)
		}
		e := t.Plates.Edges[b.Edge]
		t.drawSegment(gc, e.A, e.B)
	}
}
