// Package interp upsamples coarse elevation samples into finer grids.
package interp

// Sample is a 5x5 neighborhood indexed [dx+2][dy+2] around a coarse cell.
type Sample [5][5]float64

// Bicubic interpolates the centre cell of a 5x5 sample into a
// (ratio+1)x(ratio+1) block indexed [i][j], where i runs along the first
// sample axis and j along the second. The sample is first averaged into a 4x4
// lattice of cell corners; a cubic through each row of four corners is then
// evaluated at t = j/ratio, and the same cubic is run down the resulting
// columns. The block spans the corners shared by the centre cell, so
// neighbouring blocks meet without seams.
func Bicubic(macro Sample, ratio int) [][]float64 {
	if ratio < 1 {
		ratio = 1
	}
	var sub [4][4]float64
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			sub[x][y] = (macro[x][y] + macro[x+1][y] + macro[x][y+1] + macro[x+1][y+1]) / 4
		}
	}

	var rows [4][]float64
	for k := 0; k < 4; k++ {
		rows[k] = make([]float64, ratio+1)
		for i := 0; i <= ratio; i++ {
			rows[k][i] = cubic(sub[k][0], sub[k][1], sub[k][2], sub[k][3], float64(i)/float64(ratio))
		}
	}

	out := make([][]float64, ratio+1)
	for i := range out {
		out[i] = make([]float64, ratio+1)
	}
	for j := 0; j <= ratio; j++ {
		for i := 0; i <= ratio; i++ {
			out[i][j] = cubic(rows[0][j], rows[1][j], rows[2][j], rows[3][j], float64(i)/float64(ratio))
		}
	}
	return out
}

// cubic evaluates the curve through p1 (t=0) and p2 (t=1) shaped by p0 and p3.
func cubic(p0, p1, p2, p3, t float64) float64 {
	a0 := p3 - p2 - p0 + p1
	a1 := p0 - p1 - a0
	a2 := p2 - p0
	a3 := p1
	t2 := t * t
	return a0*t*t2 + a1*t2 + a2*t + a3
}
