package tectonic

import "terragen/internal/core"

// binomial5 is the 5x5 outer product of (1,4,6,4,1); its weights sum to 256.
var binomial5 = [5]int{1, 4, 6, 4, 1}

// smooth runs the binomial kernel twice over the elevation into smoothed.
func (e *Engine) smooth() {
	Smooth(e.elevation, e.scratch, e.cfg.Params.MaxElevation)
	Smooth(e.scratch, e.smoothed, e.cfg.Params.MaxElevation)
}

// Smooth writes a 5x5 binomial blur of src into dst, replicating edge cells
// and clamping the result to [0, hi].
func Smooth(src, dst *core.IntGrid, hi int) {
	w, h := src.W, src.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for j := -2; j <= 2; j++ {
				sy := clampIndex(y+j, h)
				wy := binomial5[j+2]
				for i := -2; i <= 2; i++ {
					sx := clampIndex(x+i, w)
					sum += src.At(sx, sy) * wy * binomial5[i+2]
				}
			}
			v := sum / 256
			if v < 0 {
				v = 0
			} else if v > hi {
				v = hi
			}
			dst.Set(x, y, v)
		}
	}
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
