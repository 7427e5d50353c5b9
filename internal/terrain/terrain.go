// Package terrain chains the generation phases: plate simulation, filtering,
// classification, region drainage and erosion.
package terrain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"terragen/internal/classify"
	"terragen/internal/core"
	"terragen/internal/interp"
	"terragen/internal/region"
	"terragen/internal/sims/erosion"
	"terragen/internal/sims/tectonic"
	pcore "terragen/pkg/core"
)

// ErrNotGenerated reports access to layers before Generate has finished.
var ErrNotGenerated = errors.New("terrain: not generated")

// Phase names reported through the progress callback.
const (
	PhaseTectonic = "tectonic"
	PhaseFilters  = "filters"
	PhaseClimate  = "climate"
	PhaseRegions  = "regions"
	PhaseModel    = "model"
	PhaseErosion  = "erosion"
)

// Result holds every layer produced by a run. Elevation and the
// classification layers share the filtered resolution; Eroded is Elevation
// scaled by the erosion ratio.
type Result struct {
	Seed int64

	Elevation  *core.IntGrid
	Eroded     *core.FloatGrid
	ModelInput *core.FloatGrid

	Ocean         *core.IntGrid
	Mountain      *core.IntGrid
	Wind          *core.VecField
	Precipitation *core.IntGrid
	Temperature   *core.IntGrid
	Climate       *core.IntGrid
	ContinentIDs  *core.IntGrid

	Continents int
	Regions    *region.Arena

	ErosionIterations int
	ErosionConverged  bool
	Elapsed           time.Duration
}

// LandFraction returns the share of cells above the ocean threshold.
func (r *Result) LandFraction() float64 {
	land := 0
	for _, v := range r.Ocean.Cells() {
		if v == 0 {
			land++
		}
	}
	return float64(land) / float64(len(r.Ocean.Cells()))
}

// Generator runs the pipeline for one configuration.
type Generator struct {
	cfg      Config
	progress core.ProgressFunc

	mu     sync.Mutex
	result *Result
}

// NewGenerator validates cfg and returns a Generator for it.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// SetProgress installs a progress callback. It must be set before Generate.
func (g *Generator) SetProgress(fn core.ProgressFunc) { g.progress = fn }

func (g *Generator) report(phase string, start time.Time) {
	if g.progress != nil {
		g.progress(core.Event{Phase: phase, Step: 1, Total: 1, Elapsed: time.Since(start), Done: true})
	}
}

// Generate runs every phase in order. The first failing phase, or a
// cancelled ctx, stops the run and its error is returned.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	cfg := g.cfg
	start := time.Now()
	rng := pcore.NewRNG(cfg.Seed)
	res := &Result{Seed: cfg.Seed}

	plates, err := tectonic.NewWithConfig(cfg.tectonicConfig(rng.Int64()))
	if err != nil {
		return nil, err
	}
	plates.SetProgress(g.progress)
	if err := plates.Run(ctx); err != nil {
		return nil, fmt.Errorf("terrain: tectonic phase: %w", err)
	}

	t := time.Now()
	res.Elevation = classify.FilterChain(plates.Terrain(), cfg.Filters)
	g.report(PhaseFilters, t)

	t = time.Now()
	if err := g.classify(ctx, res); err != nil {
		return nil, fmt.Errorf("terrain: climate phase: %w", err)
	}
	g.report(PhaseClimate, t)

	t = time.Now()
	arena, err := region.Build(res.ContinentIDs, res.Continents, res.Elevation, res.Climate, res.Precipitation, res.Temperature, res.Wind)
	if err != nil {
		return nil, fmt.Errorf("terrain: region phase: %w", err)
	}
	arena.ChartDim = cfg.ChartDimension
	if cfg.Drainage {
		if err := arena.DrainAll(ctx); err != nil {
			return nil, fmt.Errorf("terrain: region phase: %w", err)
		}
	}
	res.Regions = arena
	g.report(PhaseRegions, t)

	t = time.Now()
	model := interp.Bilinear(res.Elevation, cfg.InterpolationRatio, cfg.VerticalRatio)
	res.ModelInput = classify.Randomize(model, cfg.VerticalRatio, rng)
	g.report(PhaseModel, t)

	ero, err := erosion.NewWithConfig(core.ToFloat(res.Elevation), cfg.erosionConfig(rng.Int64()))
	if err != nil {
		return nil, fmt.Errorf("terrain: erosion phase: %w", err)
	}
	ero.SetProgress(g.progress)
	if err := ero.Simulate(ctx); err != nil {
		return nil, fmt.Errorf("terrain: erosion phase: %w", err)
	}
	res.Eroded = ero.Data()
	res.ErosionIterations = ero.Iterations()
	res.ErosionConverged = ero.Converged()
	res.Elapsed = time.Since(start)

	g.mu.Lock()
	g.result = res
	g.mu.Unlock()
	return res, nil
}

func (g *Generator) classify(ctx context.Context, res *Result) error {
	cfg := g.cfg
	elev := res.Elevation
	dim := elev.W
	res.Ocean = classify.OceanMask(elev, cfg.OceanThreshold)
	res.Mountain = classify.MountainMask(elev, cfg.MountainThreshold)
	res.Wind = classify.WindField(dim)
	precip, err := classify.RainShadow(ctx, elev, res.Ocean, res.Wind, cfg.RainShadowBlocker)
	if err != nil {
		return err
	}
	res.Precipitation = precip
	res.Temperature = classify.Temperature(dim)
	climate, err := classify.Climate(elev, precip, res.Temperature, cfg.OceanThreshold, cfg.MountainThreshold)
	if err != nil {
		return err
	}
	res.Climate = climate
	res.ContinentIDs, res.Continents = classify.Continents(res.Ocean)
	return nil
}

// Result returns the layers of the last completed run.
func (g *Generator) Result() (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return nil, ErrNotGenerated
	}
	return g.result, nil
}

// Elevation returns the filtered elevation of the last completed run.
func (g *Generator) Elevation() (*core.IntGrid, error) {
	res, err := g.Result()
	if err != nil {
		return nil, err
	}
	return res.Elevation, nil
}

// Climate returns the climate categories of the last completed run.
func (g *Generator) Climate() (*core.IntGrid, error) {
	res, err := g.Result()
	if err != nil {
		return nil, err
	}
	return res.Climate, nil
}

// Regions returns the region arena of the last completed run.
func (g *Generator) Regions() (*region.Arena, error) {
	res, err := g.Result()
	if err != nil {
		return nil, err
	}
	return res.Regions, nil
}
