package interp

import "terragen/internal/core"

// Bilinear upsamples an integer elevation grid by ratio along both axes and
// scales the result by vertical. Each coarse cell blends its own value with
// the right, lower and diagonal neighbours; the last row and column reuse
// their own values in place of the missing neighbour.
func Bilinear(src *core.IntGrid, ratio int, vertical float64) *core.FloatGrid {
	if ratio < 1 {
		ratio = 1
	}
	out := core.NewGrid[float64](src.W*ratio, src.H*ratio)
	area := float64(ratio * ratio)
	for y := 0; y < src.H; y++ {
		y1 := min(y+1, src.H-1)
		for x := 0; x < src.W; x++ {
			x1 := min(x+1, src.W-1)
			c00 := float64(src.At(x, y))
			c10 := float64(src.At(x1, y))
			c01 := float64(src.At(x, y1))
			c11 := float64(src.At(x1, y1))
			for j := 0; j < ratio; j++ {
				for i := 0; i < ratio; i++ {
					fx, fy := float64(i), float64(j)
					r := float64(ratio)
					v := (c00*(r-fx)*(r-fy) + c10*fx*(r-fy) + c01*(r-fx)*fy + c11*fx*fy) / area
					out.Set(x*ratio+i, y*ratio+j, v*vertical)
				}
			}
		}
	}
	return out
}

// Chart is a square integer chart indexed [x][y].
type Chart [][]int

// NewChart allocates a dim x dim chart filled with v.
func NewChart(dim, v int) Chart {
	c := make(Chart, dim)
	for x := range c {
		c[x] = make([]int, dim)
		if v != 0 {
			for y := range c[x] {
				c[x][y] = v
			}
		}
	}
	return c
}

// Corners holds the four values surrounding one quadrant, indexed [dx][dy].
type Corners [2][2]int

// Quadrants holds the corner values for the north-west, north-east,
// south-west and south-east quadrants of a chart, in that order.
type Quadrants [4]Corners

// QuadrantChart fills a dim x dim chart from four sets of corner values. Each
// quadrant spans dim/2 cells per axis and blends its corners bilinearly,
// normalised so that equal corners produce that same value everywhere.
func QuadrantChart(q Quadrants, dim int) Chart {
	chart := NewChart(dim, 0)
	mid := dim / 2
	if mid == 0 {
		return chart
	}
	spans := [4][4]int{
		{0, mid, 0, mid},
		{mid, dim, 0, mid},
		{0, mid, mid, dim},
		{mid, dim, mid, dim},
	}
	for n, s := range spans {
		c := q[n]
		w := float64(s[1] - s[0])
		h := float64(s[3] - s[2])
		for i := s[0]; i < s[1]; i++ {
			fx := float64(i-s[0]) / w
			for j := s[2]; j < s[3]; j++ {
				fy := float64(j-s[2]) / h
				v := float64(c[0][0])*(1-fx)*(1-fy) +
					float64(c[1][0])*fx*(1-fy) +
					float64(c[0][1])*(1-fx)*fy +
					float64(c[1][1])*fx*fy
				chart[i][j] = int(v + 0.5)
			}
		}
	}
	return chart
}
