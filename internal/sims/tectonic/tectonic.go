// Package tectonic grows a coarse elevation map from hotspot uplift and
// convection-driven mass transfer.
package tectonic

import (
	"context"
	"time"

	"terragen/internal/core"
	pcore "terragen/pkg/core"
)

// Engine is the plate/heat simulation. Grids are allocated on Run or Reset,
// never by SetDimension.
type Engine struct {
	cfg Config

	dim  int
	time int

	heat      *core.IntGrid
	elevation *core.IntGrid
	smoothed  *core.IntGrid
	scratch   *core.IntGrid

	// reference is the per-step snapshot cells give mass from; incoming
	// accumulates the mass they receive.
	reference *core.IntGrid
	incoming  *core.IntGrid

	currents *core.VecField
	spots    []*Hotspot

	rng     *pcore.RNG
	barrier *core.Barrier
	serial  bool

	progress core.ProgressFunc
}

// New returns an Engine with the default configuration and the given seed.
func New(seed int64) *Engine {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return &Engine{cfg: cfg, rng: pcore.NewRNG(seed), barrier: core.NewBarrier(cfg.Workers)}
}

// NewWithConfig validates cfg and returns an Engine configured from it.
func NewWithConfig(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, rng: pcore.NewRNG(cfg.Seed), barrier: core.NewBarrier(cfg.Workers)}, nil
}

// SetDimension sets the grid edge length. Dimensions that are not a positive
// multiple of ChunkSize are rejected immediately.
func (e *Engine) SetDimension(dim int) error {
	if err := validateDimension(dim); err != nil {
		return err
	}
	e.cfg.Dimension = dim
	return nil
}

// SetLifespan sets the number of simulation steps.
func (e *Engine) SetLifespan(steps int) {
	if steps < 0 {
		steps = 0
	}
	e.cfg.Lifespan = steps
}

// SetProgress installs a progress callback used by Run.
func (e *Engine) SetProgress(fn core.ProgressFunc) { e.progress = fn }

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "tectonic" }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.cfg.Dimension, H: e.cfg.Dimension} }

// Time returns the number of completed steps.
func (e *Engine) Time() int { return e.time }

// Done reports whether the step budget has been exhausted.
func (e *Engine) Done() bool { return e.time > e.cfg.Lifespan }

// Terrain returns the raw elevation grid, or nil before the first run.
func (e *Engine) Terrain() *core.IntGrid { return e.elevation }

// TerrainSmoothed returns the elevation after the smoothing kernel.
func (e *Engine) TerrainSmoothed() *core.IntGrid { return e.smoothed }

// Heat exposes the heat field of the last step.
func (e *Engine) Heat() *core.IntGrid { return e.heat }

// Currents exposes the convection field.
func (e *Engine) Currents() *core.VecField { return e.currents }

// Hotspots exposes the active hotspots.
func (e *Engine) Hotspots() []*Hotspot { return e.spots }

// Reset allocates fresh grids and reseeds the engine.
func (e *Engine) Reset(seed int64) {
	e.cfg.Seed = seed
	e.rng = pcore.NewRNG(seed)
	e.allocate()
}

func (e *Engine) allocate() {
	d := e.cfg.Dimension
	e.dim = d
	e.time = 0
	e.spots = e.spots[:0]
	e.heat = core.NewIntGrid(d)
	e.elevation = core.NewIntGrid(d)
	e.smoothed = core.NewIntGrid(d)
	e.scratch = core.NewIntGrid(d)
	e.reference = core.NewIntGrid(d)
	e.incoming = core.NewIntGrid(d)
	e.currents = ConvectionCells(d)
}

// Run simulates until the lifespan is exceeded, fanning chunk jobs out over
// the worker pool. It returns early with ctx.Err() on cancellation.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	e.allocate()
	p := core.NewProgress(e.Name(), e.cfg.Lifespan+1, 2*time.Second, e.progress)
	if err := core.Drive(ctx, e, func(step int) { p.Tick(step) }); err != nil {
		return err
	}
	p.Finish(e.time)
	return nil
}

// RunSerial runs the same simulation with every chunk job executed in order
// on the calling goroutine. For a given seed it produces the same terrain as Run.
func (e *Engine) RunSerial(ctx context.Context) error {
	e.serial = true
	defer func() { e.serial = false }()
	return e.Run(ctx)
}

// Step advances the simulation by one time unit.
func (e *Engine) Step(ctx context.Context) error {
	if e.elevation == nil || e.dim != e.cfg.Dimension {
		if err := e.cfg.Validate(); err != nil {
			return err
		}
		e.allocate()
	}
	e.time++
	e.simulateHotspots()
	e.heatToElevation()
	if err := e.applyCurrents(ctx); err != nil {
		return err
	}
	e.smooth()
	return nil
}

func (e *Engine) simulateHotspots() {
	p := e.cfg.Params
	alive := e.spots[:0]
	for _, s := range e.spots {
		if !s.Expired() {
			alive = append(alive, s)
		}
	}
	e.spots = alive
	if len(e.spots) < p.MaxHotspots {
		e.spots = append(e.spots, NewHotspot(
			e.rng.Between(0, e.dim-1),
			e.rng.Between(0, e.dim-1),
			e.rng.Between(p.HotspotLifeMin, p.HotspotLifeMax),
			e.rng.Between(p.HotspotMagnitudeMin, p.HotspotMagnitudeMax),
		))
	}
	e.heat.Clear()
	for _, s := range e.spots {
		s.Stamp(e.heat)
	}
}

func (e *Engine) heatToElevation() {
	p := e.cfg.Params
	heat := e.heat.Cells()
	elev := e.elevation.Cells()
	for i, h := range heat {
		if h <= p.HeatThreshold {
			continue
		}
		if e.rng.Between(1, p.UpliftOdds) == p.UpliftOdds {
			elev[i] = min(elev[i]+1, p.MaxElevation)
		}
	}
}
