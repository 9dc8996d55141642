package genworldplanar

import (
	"fmt"
	"log"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ChannelStats summarizes one per cell value.
type ChannelStats struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Stats summarizes a terrain.
type Stats struct {
	Cells      int            `json:"cells"`
	Edges      int            `json:"edges"`
	Plates     int            `json:"plates"`
	OceanCells int            `json:"oceanCells"`
	LandCells  int            `json:"landCells"`
	LakeCells  int            `json:"lakeCells"`
	LandMasses int            `json:"landMasses"`
	Lakes      int            `json:"lakes"`
	RiverCells int            `json:"riverCells"`
	WindSinks  int            `json:"windSinks"`
	WindIters  int            `json:"windIterations"`
	Channels   []ChannelStats `json:"channels"`
	Stages     []StageTiming  `json:"stages"`
}

// Stats returns a summary of the terrain.
func (t *Terrain) Stats() *Stats {
	s := &Stats{
		Cells:  len(t.Cells),
		Edges:  len(t.Mesh.Edges),
		Stages: t.Stages,
	}
	if t.Plates != nil {
		s.Plates = len(t.Plates.Cells)
	}
	for i := range t.Cells {
		c := &t.Cells[i]
		switch c.FeatureType {
		case FeatureOcean:
			s.OceanCells++
		case FeatureLand:
			s.LandCells++
		case FeatureLake:
			s.LakeCells++
		}
		if c.IsRiver {
			s.RiverCells++
		}
	}
	for _, f := range t.Features {
		switch f.Type {
		case FeatureLand:
			s.LandMasses++
		case FeatureLake:
			s.Lakes++
		}
	}
	s.WindSinks = len(t.windSinks())
	s.WindIters = t.WindIterations
	for _, f := range checkedFields {
		s.Channels = append(s.Channels, t.channelStats(f.name, f.get))
	}
	return s
}

func (t *Terrain) channelStats(name string, get func(c *Cell) float64) ChannelStats {
	values := t.channel(get)
	if len(values) == 0 {
		return ChannelStats{Name: name}
	}
	return ChannelStats{
		Name: name,
		Min:  floats.Min(values),
		Max:  floats.Max(values),
		Mean: floats.Sum(values) / float64(len(values)),
	}
}

func (s *Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cells: %d, edges: %d, plates: %d\n", s.Cells, s.Edges, s.Plates)
	fmt.Fprintf(&sb, "ocean: %d, land: %d (%d masses), lake: %d (%d lakes), rivers: %d, wind sinks: %d (%d iterations)\n",
		s.OceanCells, s.LandCells, s.LandMasses, s.LakeCells, s.Lakes, s.RiverCells, s.WindSinks, s.WindIters)
	for _, c := range s.Channels {
		fmt.Fprintf(&sb, "%-18s min %10.4f max %10.4f mean %10.4f\n", c.Name, c.Min, c.Max, c.Mean)
	}
	return sb.String()
}

func (t *Terrain) logSummary() {
	s := t.Stats()
	log.Printf("Generated %d cells: %d ocean, %d land, %d lake, %d river", s.Cells, s.OceanCells, s.LandCells, s.LakeCells, s.RiverCells)
}
