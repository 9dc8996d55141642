package genworldplanar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSeedJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Seed
	}{
		{`42`, 42},
		{`"42"`, 42},
		{`-7`, -7},
		{`"hello"`, SeedFromString("hello")},
	}
	for _, tt := range tests {
		var s Seed
		if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
			t.Errorf("unmarshal %s: %v", tt.in, err)
			continue
		}
		if s != tt.want {
			t.Errorf("unmarshal %s = %d, want %d", tt.in, s, tt.want)
		}
	}

	var s Seed
	if err := json.Unmarshal([]byte(`true`), &s); err == nil {
		t.Error("expected error for boolean seed")
	}
	if SeedFromString("hello") == SeedFromString("world") {
		t.Error("different strings give the same seed")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"seed": "island", "seaLevel": 0.3, "moisture": {"iterations": 3}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Seed != SeedFromString("island") {
		t.Errorf("got seed %d", cfg.Seed)
	}
	if cfg.SeaLevel != 0.3 || cfg.Moisture.Iterations != 3 {
		t.Errorf("options from file not applied: %+v", cfg)
	}
	def := NewConfig()
	if cfg.Width != def.Width || len(cfg.Wind.Bands) != len(def.Wind.Bands) {
		t.Error("missing options did not keep their defaults")
	}

	out := filepath.Join(dir, "saved.json")
	if err := cfg.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := LoadConfig(out)
	if err != nil {
		t.Fatalf("LoadConfig(saved): %v", err)
	}
	if again.Seed != cfg.Seed || again.SeaLevel != cfg.SeaLevel || again.Elevation.Plates != cfg.Elevation.Plates {
		t.Error("saved config differs")
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	tests := map[string]func(c *Config){
		"zero width":      func(c *Config) { c.Width = 0 },
		"point distance":  func(c *Config) { c.PDSMaxDistance = 0 },
		"sea level":       func(c *Config) { c.SeaLevel = 1 },
		"missing section": func(c *Config) { c.Wind = nil },
		"plate distance":  func(c *Config) { c.Elevation.Plates.MaxDistance = 0 },
		"wind iterations": func(c *Config) { c.Wind.MaxIterations = 0 },
		"source set":      func(c *Config) { c.Wind.SourceSet = "everywhere" },
		"band gap":        func(c *Config) { c.Wind.Bands = c.Wind.Bands[1:] },
		"moisture":        func(c *Config) { c.Moisture.Iterations = -1 },
		"erosion rate":    func(c *Config) { c.Erosion.MaxErosionRate = 0 },
	}
	for name, modify := range tests {
		cfg := NewConfig()
		modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestWindConfigNamedBands(t *testing.T) {
	const full = `{
		"maxIterations": 200,
		"sourceSet": "ocean",
		"northernPolarEasterlies": {"startLatitude": 60, "endLatitude": 90, "angle": 270, "velocity": 5, "influence": 0.5},
		"northernWesterlies": {"startLatitude": 30, "endLatitude": 60, "angle": 80, "velocity": 20, "influence": 0.5},
		"northernTradeWinds": {"startLatitude": 0, "endLatitude": 30, "angle": 225, "velocity": 10, "influence": 1},
		"southernTradeWinds": {"startLatitude": -30, "endLatitude": 0, "angle": 315, "velocity": 10, "influence": 1},
		"southernWesterlies": {"startLatitude": -60, "endLatitude": -30, "angle": 100, "velocity": 15, "influence": 0.5},
		"southernPolarEasterlies": {"startLatitude": -90, "endLatitude": -60, "angle": 90, "velocity": 5, "influence": 0.5}
	}`
	cfg := NewWindConfig()
	if err := json.Unmarshal([]byte(full), cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.MaxIterations != 200 || cfg.SourceSet != SourceOcean {
		t.Errorf("plain options not applied: %d %q", cfg.MaxIterations, cfg.SourceSet)
	}
	if len(cfg.Bands) != 6 {
		t.Fatalf("got %d bands, want 6", len(cfg.Bands))
	}
	if err := cfg.Bands.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if b := cfg.Bands.Lookup(45); b == nil || b.Name != "northernWesterlies" || b.Velocity != 20 {
		t.Errorf("Lookup(45) = %+v, want northernWesterlies with velocity 20", b)
	}

	// Named bands from a fresh config without defaults.
	empty := &WindConfig{}
	if err := json.Unmarshal([]byte(full), empty); err != nil {
		t.Fatalf("unmarshal into empty config: %v", err)
	}
	if len(empty.Bands) != 6 || empty.Bands[0].Name != "northernPolarEasterlies" {
		t.Errorf("bands not ordered from north to south: %+v", empty.Bands)
	}

	// A partial band only overrides the given options.
	partial := NewWindConfig()
	if err := json.Unmarshal([]byte(`{"southernWesterlies": {"velocity": 25}}`), partial); err != nil {
		t.Fatalf("unmarshal partial: %v", err)
	}
	b := partial.Bands.Lookup(-45)
	if b == nil || b.Velocity != 25 || b.StartLatitude != -60 || b.Angle != 100 {
		t.Errorf("partial override gave %+v", b)
	}
	if err := partial.Bands.Validate(); err != nil {
		t.Errorf("Validate after partial override: %v", err)
	}

	// Both forms at once are ambiguous.
	mixed := `{"bands": [{"name": "all", "startLatitude": -90, "endLatitude": 90}], "northernWesterlies": {"velocity": 1}}`
	if err := json.Unmarshal([]byte(mixed), NewWindConfig()); err == nil {
		t.Error("expected error for a bands list next to named bands")
	}

	// An unknown band name is added and breaks the tiling.
	extra := NewWindConfig()
	if err := json.Unmarshal([]byte(`{"equatorialCalm": {"startLatitude": -5, "endLatitude": 5}}`), extra); err != nil {
		t.Fatalf("unmarshal extra band: %v", err)
	}
	if len(extra.Bands) != 7 {
		t.Fatalf("got %d bands, want 7", len(extra.Bands))
	}
	if err := extra.Bands.Validate(); err == nil {
		t.Error("expected overlap error for the extra band")
	}
}

func TestLoadConfigNamedBands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"seed": 3, "wind": {"northernTradeWinds": {"angle": 200}}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if b := cfg.Wind.Bands.Lookup(10); b == nil || b.Angle != 200 {
		t.Errorf("Lookup(10) = %+v, want angle 200", b)
	}
}
