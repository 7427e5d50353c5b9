// Package erosion refines a coarse heightmap with bicubic interpolation and
// then wears it down with a cellular water-flow model until the water drains.
package erosion

import (
	"context"
	"fmt"
	"time"

	"terragen/internal/core"
	"terragen/internal/interp"
	pcore "terragen/pkg/core"
)

// Engine runs hydraulic erosion over a fine grid derived from a coarse map.
// Height and hydration each live in a Buffers pair: an iteration reads Front,
// writes Back, and swaps once every coarse-cell job has joined.
type Engine struct {
	cfg    Config
	coarse *core.FloatGrid

	height    *core.Buffers[float64]
	hydration *core.Buffers[float64]

	rng      *pcore.RNG
	cellRNGs []*pcore.RNG
	barrier  *core.Barrier

	iterations int
	history    []float64
	converged  bool

	progress core.ProgressFunc
}

// New interpolates heightmap by ratio and prepares an engine with the default
// termination bounds.
func New(heightmap *core.FloatGrid, oceanLevel float64, ratio int, seed int64) (*Engine, error) {
	cfg := DefaultConfig()
	cfg.OceanLevel = oceanLevel
	cfg.Ratio = ratio
	cfg.Seed = seed
	return NewWithConfig(heightmap, cfg)
}

// NewWithConfig validates cfg and heightmap and prepares an engine.
func NewWithConfig(heightmap *core.FloatGrid, cfg Config) (*Engine, error) {
	if heightmap == nil || len(heightmap.Cells()) == 0 {
		return nil, fmt.Errorf("%w: empty heightmap", ErrInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:     cfg,
		coarse:  heightmap.Clone(),
		barrier: core.NewBarrier(cfg.Workers),
	}
	e.Reset(cfg.Seed)
	return e, nil
}

// SetProgress installs a progress callback used by Simulate.
func (e *Engine) SetProgress(fn core.ProgressFunc) { e.progress = fn }

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "erosion" }

// Size reports the fine grid dimensions.
func (e *Engine) Size() core.Size {
	return core.Size{W: e.height.Front.W, H: e.height.Front.H}
}

// Reset re-interpolates the coarse map and refills every cell with one unit
// of water.
func (e *Engine) Reset(seed int64) {
	e.cfg.Seed = seed
	e.rng = pcore.NewRNG(seed)
	r := e.cfg.Ratio
	w, h := e.coarse.W*r, e.coarse.H*r
	e.height = core.NewBuffers[float64](w, h)
	e.hydration = core.NewBuffers[float64](w, h)
	e.hydration.Fill(1)

	e.cellRNGs = make([]*pcore.RNG, len(e.coarse.Cells()))
	for i := range e.cellRNGs {
		e.cellRNGs[i] = pcore.NewRNG(0)
	}
	e.iterations = 0
	e.history = e.history[:0]
	e.converged = false

	for cy := 0; cy < e.coarse.H; cy++ {
		for cx := 0; cx < e.coarse.W; cx++ {
			block := interp.Bicubic(e.sample(cx, cy), r)
			for j := 0; j < r; j++ {
				for i := 0; i < r; i++ {
					e.height.Front.Set(cx*r+i, cy*r+j, block[i][j])
				}
			}
		}
	}
	e.height.Sync()
}

// sample gathers the 5x5 neighbourhood of a coarse cell, zero beyond the edge.
func (e *Engine) sample(cx, cy int) interp.Sample {
	var s interp.Sample
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			x, y := cx+dx, cy+dy
			if e.coarse.InBounds(x, y) {
				s[dx+2][dy+2] = e.coarse.At(x, y)
			}
		}
	}
	return s
}

// Simulate iterates until the total hydration falls to Epsilon or the
// iteration bound is reached. Cancellation stops the run with ctx.Err().
func (e *Engine) Simulate(ctx context.Context) error {
	p := core.NewProgress(e.Name(), e.cfg.MaxIterations, 2*time.Second, e.progress)
	if err := core.Drive(ctx, e, func(int) { p.Tick(e.iterations) }); err != nil {
		return err
	}
	p.Finish(e.iterations)
	return nil
}

// Done reports whether the run has converged or exhausted its iterations.
func (e *Engine) Done() bool {
	return e.converged || e.iterations >= e.cfg.MaxIterations
}

// Step performs one erosion iteration.
func (e *Engine) Step(ctx context.Context) error {
	front := e.hydration.Front
	level := front.Sum() / float64(len(front.Cells()))

	for _, r := range e.cellRNGs {
		r.Reseed(e.rng.Int64())
	}
	// One job per coarse row; each coarse cell keeps its own stream, so the
	// result does not depend on how cells are batched.
	err := e.barrier.Run(ctx, e.coarse.H, func(_ context.Context, cy int) error {
		for cx := 0; cx < e.coarse.W; cx++ {
			e.erodeBlock(cx, cy, level, e.cellRNGs[cy*e.coarse.W+cx])
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.height.Swap()
	e.hydration.Swap()

	e.iterations++
	total := e.hydration.Front.Sum()
	e.history = append(e.history, total)
	if total <= e.cfg.Epsilon {
		e.converged = true
	}
	return nil
}

// Data returns the current fine heightmap.
func (e *Engine) Data() *core.FloatGrid { return e.height.Front }

// Hydration returns the current water grid.
func (e *Engine) Hydration() *core.FloatGrid { return e.hydration.Front }

// TotalHydration sums the water left on the map.
func (e *Engine) TotalHydration() float64 { return e.hydration.Front.Sum() }

// Iterations returns the number of completed iterations.
func (e *Engine) Iterations() int { return e.iterations }

// History returns the total hydration after each iteration.
func (e *Engine) History() []float64 { return e.history }

// Converged reports whether the run ended by draining rather than by the
// iteration bound.
func (e *Engine) Converged() bool { return e.converged }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }
