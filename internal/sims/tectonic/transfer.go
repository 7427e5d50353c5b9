package tectonic

import (
	"context"

	pcore "terragen/pkg/core"
)

// applyCurrents moves elevation along the convection field. Chunk jobs skip
// the first two rows and columns of their chunk; those seams are handled by a
// serial pass after the join. Every job only writes the cells it owns plus
// the seam cells on its right/lower border, which no other job touches.
func (e *Engine) applyCurrents(ctx context.Context) error {
	e.reference.CopyFrom(e.elevation)
	e.incoming.Clear()

	chunks := e.dim / ChunkSize
	n := chunks * chunks
	rngs := make([]*pcore.RNG, n)
	for i := range rngs {
		rngs[i] = e.rng.Child()
	}
	job := func(_ context.Context, i int) error {
		e.moveChunk(i/chunks, i%chunks, rngs[i])
		return nil
	}

	if e.serial {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			_ = job(ctx, i)
		}
	} else if err := e.barrier.Run(ctx, n, job); err != nil {
		return err
	}

	e.fillSeams()

	sat := e.cfg.Params.SaturationHeight
	elev := e.elevation.Cells()
	in := e.incoming.Cells()
	ref := e.reference.Cells()
	for i := range elev {
		elev[i] = min(in[i]+ref[i], sat)
	}
	return nil
}

func (e *Engine) moveChunk(cx, cy int, rng *pcore.RNG) {
	ox, oy := cx*ChunkSize, cy*ChunkSize
	for ly := 2; ly < ChunkSize; ly++ {
		for lx := 2; lx < ChunkSize; lx++ {
			e.moveCell(ox+lx, oy+ly, rng)
		}
	}
}

func isSeam(v int) bool {
	m := v % ChunkSize
	return m == 0 || m == 1
}

func (e *Engine) fillSeams() {
	for y := 0; y < e.dim; y++ {
		for x := 0; x < e.dim; x++ {
			if isSeam(x) || isSeam(y) {
				e.moveCell(x, y, e.rng)
			}
		}
	}
}

// moveCell rolls whether (x, y) sheds mass this step and, if so, pushes units
// into the neighbour along one axis of its current until either the
// neighbour saturates or the cell drops to its goal height.
func (e *Engine) moveCell(x, y int, rng *pcore.RNG) {
	p := e.cfg.Params
	transfer := rng.Between(1, p.TransferOdds) == 1
	var goal int
	if rng.Between(1, 2) == 1 {
		goal = rng.Between(p.GoalLow, p.GoalHigh)
	} else {
		goal = rng.Between(0, p.GoalHigh)
	}
	cur := e.currents.At(x, y)
	nx, ny := x, y
	if rng.Between(1, 2) == 1 {
		if cur.X() >= 0 {
			nx++
		} else {
			nx--
		}
	} else {
		if cur.Y() >= 0 {
			ny++
		} else {
			ny--
		}
	}
	if !transfer || !e.reference.InBounds(nx, ny) {
		return
	}
	room := p.SaturationHeight - e.incoming.At(nx, ny) - e.reference.At(nx, ny)
	surplus := e.reference.At(x, y) - goal
	k := min(room, surplus)
	if k <= 0 {
		return
	}
	e.incoming.Add(nx, ny, k)
	e.reference.Add(x, y, -k)
}
