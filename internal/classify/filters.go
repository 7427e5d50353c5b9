package classify

import (
	"math"

	"terragen/internal/core"
	pcore "terragen/pkg/core"
)

// Options tunes the filter chain.
type Options struct {
	// OceanLevel is the height below which LandExponential leaves cells alone.
	OceanLevel int
	// ExponentRelativeToMax scales the land exponential by each cell's height
	// above the ocean instead of using a constant ratio of one.
	ExponentRelativeToMax bool
}

// DefaultOptions returns the standard filter options.
func DefaultOptions() Options { return Options{OceanLevel: 25} }

// FilterChain reshapes the raw plate output: it doubles the resolution and
// alternates contrast and smoothing passes before flattening low land.
func FilterChain(elev *core.IntGrid, opts Options) *core.IntGrid {
	g := Double(elev)
	g = Compression(g)
	g = ThreeHalves(g)
	g = SmoothFurther(g)
	g = SmallSharpen(g)
	g = SmoothFurther(g)
	g = ThreeHalves(g)
	g = SmallSmooth(g)
	g = SmallSharpen(g)
	g = SmoothFurther(g)
	g = SmoothFurther(g)
	for i := 0; i < 6; i++ {
		g = LandExponential(g, opts)
	}
	return g
}

func clamp100(v int) int { return max(0, min(v, 100)) }

// Double upsamples by two: even cells copy the source and odd cells average
// it with the right, lower or diagonal neighbour.
func Double(src *core.IntGrid) *core.IntGrid {
	out := core.NewGrid[int](src.W*2, src.H*2)
	for y := 0; y < src.H; y++ {
		y1 := min(y+1, src.H-1)
		for x := 0; x < src.W; x++ {
			x1 := min(x+1, src.W-1)
			c := src.At(x, y)
			out.Set(2*x, 2*y, c)
			out.Set(2*x+1, 2*y, (c+src.At(x1, y))/2)
			out.Set(2*x, 2*y+1, (c+src.At(x, y1))/2)
			out.Set(2*x+1, 2*y+1, (c+src.At(x1, y1))/2)
		}
	}
	return out
}

// Compression lifts low ground and flattens high ground.
func Compression(src *core.IntGrid) *core.IntGrid {
	out := src.Clone()
	for i, d := range out.Cells() {
		switch {
		case d < 25:
			d = int(float64(d) * 1.5)
		case d > 75:
			d = d / 3 * 2
		}
		out.Cells()[i] = clamp100(d)
	}
	return out
}

// ThreeHalves scales every cell by 1.5, capped at 100.
func ThreeHalves(src *core.IntGrid) *core.IntGrid {
	out := src.Clone()
	for i, d := range out.Cells() {
		out.Cells()[i] = clamp100(int(float64(d) * 1.5))
	}
	return out
}

var binomial5 = [5]int{1, 4, 6, 4, 1}

// SmoothFurther applies a 5x5 binomial blur to cells at least two away from
// the border; border cells are copied.
func SmoothFurther(src *core.IntGrid) *core.IntGrid {
	out := src.Clone()
	for y := 2; y < src.H-2; y++ {
		for x := 2; x < src.W-2; x++ {
			sum := 0
			for j := -2; j <= 2; j++ {
				for i := -2; i <= 2; i++ {
					sum += src.At(x+i, y+j) * binomial5[i+2] * binomial5[j+2]
				}
			}
			out.Set(x, y, clamp100(sum/256))
		}
	}
	return out
}

var (
	sharpen3 = [3][3]int{{0, -1, 0}, {-1, 5, -1}, {0, -1, 0}}
	smooth3  = [3][3]int{{1, 2, 1}, {2, 4, 2}, {1, 2, 1}}
)

func convolve3(src *core.IntGrid, k [3][3]int, div int) *core.IntGrid {
	out := src.Clone()
	for y := 1; y < src.H-1; y++ {
		for x := 1; x < src.W-1; x++ {
			sum := 0
			for j := -1; j <= 1; j++ {
				for i := -1; i <= 1; i++ {
					sum += src.At(x+i, y+j) * k[j+1][i+1]
				}
			}
			out.Set(x, y, clamp100(sum/div))
		}
	}
	return out
}

// SmallSharpen applies a 3x3 sharpening kernel to interior cells.
func SmallSharpen(src *core.IntGrid) *core.IntGrid { return convolve3(src, sharpen3, 1) }

// SmallSmooth applies a 3x3 1-2-1 kernel divided by 13, which also brightens
// the map slightly.
func SmallSmooth(src *core.IntGrid) *core.IntGrid { return convolve3(src, smooth3, 13) }

// LandExponential pulls land between the ocean level and 90 toward the
// coast. Results never sink to the ocean.
func LandExponential(src *core.IntGrid, opts Options) *core.IntGrid {
	out := src.Clone()
	ocean := opts.OceanLevel
	for i, d := range out.Cells() {
		if d <= ocean || d >= 90 {
			continue
		}
		ratio := 1.0
		if opts.ExponentRelativeToMax && ocean < 100 {
			ratio = float64(d-ocean) / float64(100-ocean)
		}
		fd := float64(d)
		v := int(math.Round(fd*math.Exp(-(1-ratio))*0.2 + fd*0.8))
		out.Cells()[i] = clamp100(max(v, ocean+1))
	}
	return out
}

// Randomize adds up to e/vertical units of noise to every cell of a scaled
// model-input grid.
func Randomize(src *core.FloatGrid, vertical float64, rng *pcore.RNG) *core.FloatGrid {
	out := src.Clone()
	if vertical <= 0 {
		vertical = 1
	}
	for i, e := range out.Cells() {
		out.Cells()[i] = e + float64(rng.Between(0, int(e/vertical)))
	}
	return out
}
