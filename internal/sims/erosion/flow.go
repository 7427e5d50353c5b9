package erosion

import (
	"math"

	pcore "terragen/pkg/core"
)

var offsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// erodeBlock updates the ratio x ratio fine cells owned by coarse cell (cx, cy).
func (e *Engine) erodeBlock(cx, cy int, level float64, rng *pcore.RNG) {
	r := e.cfg.Ratio
	for j := 0; j < r; j++ {
		for i := 0; i < r; i++ {
			e.erodeCell(cx*r+i, cy*r+j, level, rng)
		}
	}
}

// erodeCell collects the water running into (x, y) from taller neighbours,
// then lowers the cell toward its highest non-taller neighbour in proportion
// to the change in flow. Cells without an outlet keep their height and lose
// their water.
func (e *Engine) erodeCell(x, y int, level float64, rng *pcore.RNG) {
	hf, wf := e.height.Front, e.hydration.Front
	h := hf.At(x, y)

	hits, count := 0, 0
	inflow := 0.0
	highest := math.Inf(-1)
	for _, d := range offsets {
		nx, ny := x+d[0], y+d[1]
		if !hf.InBounds(nx, ny) {
			continue
		}
		count++
		hn := hf.At(nx, ny)
		switch {
		case hn > h:
			hits++
			inflow += wf.At(nx, ny) * (hn - h) / e.drop(nx, ny, hn)
		case hn == h && !e.hasLower(nx, ny, hn):
			highest = max(highest, hn)
			if rng.Chance(e.cfg.TieBreakOdds) {
				inflow += wf.At(nx, ny) / float64(e.equalCount(nx, ny, hn))
			}
		default:
			highest = max(highest, hn)
		}
	}
	basin := hits == count

	water := min(inflow, e.cfg.MaxHydration)
	shear := math.Abs(inflow - wf.At(x, y))
	if level > 1 {
		shear = wf.At(x, y) / level
	}
	nh := h
	if h > e.cfg.OceanLevel && !basin {
		// shear == 0 divides to +Inf and settles on highest.
		nh = max(highest, h-e.cfg.ErosionRate/shear)
	} else {
		water = 0
	}
	e.height.Back.Set(x, y, nh)
	e.hydration.Back.Set(x, y, water)
}

// drop sums the height difference from (x, y) to each of its lower neighbours.
func (e *Engine) drop(x, y int, h float64) float64 {
	hf := e.height.Front
	sum := 0.0
	for _, d := range offsets {
		nx, ny := x+d[0], y+d[1]
		if hf.InBounds(nx, ny) && hf.At(nx, ny) < h {
			sum += h - hf.At(nx, ny)
		}
	}
	return sum
}

func (e *Engine) hasLower(x, y int, h float64) bool {
	hf := e.height.Front
	for _, d := range offsets {
		nx, ny := x+d[0], y+d[1]
		if hf.InBounds(nx, ny) && hf.At(nx, ny) < h {
			return true
		}
	}
	return false
}

func (e *Engine) equalCount(x, y int, h float64) int {
	hf := e.height.Front
	n := 0
	for _, d := range offsets {
		nx, ny := x+d[0], y+d[1]
		if hf.InBounds(nx, ny) && hf.At(nx, ny) == h {
			n++
		}
	}
	return n
}
