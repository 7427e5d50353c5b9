package terrain

import (
	"context"
	"errors"
	"slices"
	"testing"

	"terragen/internal/core"
	"terragen/internal/sims/tectonic"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Dimension = 32
	cfg.Lifespan = 300
	cfg.Seed = 11
	cfg.ChartDimension = 10
	cfg.Erosion.Ratio = 2
	cfg.Erosion.MaxIterations = 40
	return cfg
}

func TestAccessorsBeforeGenerate(t *testing.T) {
	g, err := NewGenerator(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Result(); !errors.Is(err, ErrNotGenerated) {
		t.Fatalf("Result: expected ErrNotGenerated, got %v", err)
	}
	if _, err := g.Climate(); !errors.Is(err, ErrNotGenerated) {
		t.Fatalf("Climate: expected ErrNotGenerated, got %v", err)
	}
	if _, err := g.Regions(); !errors.Is(err, ErrNotGenerated) {
		t.Fatalf("Regions: expected ErrNotGenerated, got %v", err)
	}
}

func TestNewGeneratorValidates(t *testing.T) {
	cfg := smallConfig()
	cfg.Dimension = 33
	if _, err := NewGenerator(cfg); !errors.Is(err, tectonic.ErrDimension) {
		t.Fatalf("expected ErrDimension, got %v", err)
	}
	cfg = smallConfig()
	cfg.OceanThreshold = 80
	if _, err := NewGenerator(cfg); err == nil {
		t.Fatal("ocean above mountain threshold should be rejected")
	}
}

func TestGenerateProducesConsistentLayers(t *testing.T) {
	g, err := NewGenerator(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	var phases []string
	g.SetProgress(func(ev core.Event) {
		if ev.Done {
			phases = append(phases, ev.Phase)
		}
	})
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Elevation.W != 64 || res.Elevation.H != 64 {
		t.Fatalf("filtered elevation is %dx%d, want 64x64", res.Elevation.W, res.Elevation.H)
	}
	if res.Eroded.W != 128 || res.ModelInput.W != 64 {
		t.Fatalf("eroded %d wide, model input %d wide", res.Eroded.W, res.ModelInput.W)
	}
	for i, v := range res.Elevation.Cells() {
		if v < 0 || v > 100 {
			t.Fatalf("elevation %d out of range: %d", i, v)
		}
	}
	for i, v := range res.Climate.Cells() {
		if v < 0 || v > 6 {
			t.Fatalf("climate %d out of range: %d", i, v)
		}
	}
	land := 0
	for _, v := range res.Ocean.Cells() {
		if v == 0 {
			land++
		}
	}
	if res.Regions.Len() != land {
		t.Fatalf("%d regions for %d land cells", res.Regions.Len(), land)
	}
	for _, c := range res.Regions.Continents() {
		if len(c.Order) != len(res.Regions.Regions(c.ID)) {
			t.Fatalf("continent %d drained %d of %d regions", c.ID, len(c.Order), len(res.Regions.Regions(c.ID)))
		}
	}
	if res.ErosionIterations < 1 || res.ErosionIterations > 40 {
		t.Fatalf("erosion ran %d iterations", res.ErosionIterations)
	}
	want := []string{"tectonic", PhaseFilters, PhaseClimate, PhaseRegions, PhaseModel, "erosion"}
	if !slices.Equal(phases, want) {
		t.Fatalf("phases reported %v, want %v", phases, want)
	}
	if got, err := g.Result(); err != nil || got != res {
		t.Fatalf("Result after Generate: %v", err)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	run := func() *Result {
		g, err := NewGenerator(smallConfig())
		if err != nil {
			t.Fatal(err)
		}
		res, err := g.Generate(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	a, b := run(), run()
	if !slices.Equal(a.Elevation.Cells(), b.Elevation.Cells()) {
		t.Fatal("elevation differs between runs")
	}
	if !slices.Equal(a.Climate.Cells(), b.Climate.Cells()) {
		t.Fatal("climate differs between runs")
	}
	if !slices.Equal(a.ModelInput.Cells(), b.ModelInput.Cells()) {
		t.Fatal("model input differs between runs")
	}
	if !slices.Equal(a.Eroded.Cells(), b.Eroded.Cells()) {
		t.Fatal("eroded heightmap differs between runs")
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	g, err := NewGenerator(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := g.Result(); !errors.Is(err, ErrNotGenerated) {
		t.Fatal("cancelled run must not publish a result")
	}
}

func TestFromMapAndParameters(t *testing.T) {
	cfg := FromMap(map[string]string{
		"dimension":         "64",
		"seed":              "7",
		"ocean":             "30",
		"erosion_ratio":     "2",
		"drainage":          "false",
		"exponent_relative": "true",
		"mountain":          "nope",
	})
	if cfg.Dimension != 64 || cfg.Seed != 7 || cfg.OceanThreshold != 30 || cfg.Erosion.Ratio != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Drainage || !cfg.Filters.ExponentRelativeToMax || cfg.Filters.OceanLevel != 30 {
		t.Fatal("boolean overrides not applied")
	}
	if cfg.MountainThreshold != 75 {
		t.Fatalf("invalid mountain value should be ignored, got %d", cfg.MountainThreshold)
	}
	snap := cfg.Parameters()
	if v, ok := snap.Lookup("ocean"); !ok || v != "30" {
		t.Fatalf("snapshot ocean = %q", v)
	}
	if v, ok := snap.Lookup("seed"); !ok || v != "7" {
		t.Fatalf("snapshot seed = %q", v)
	}
}
