package interp

import (
	"math"
	"testing"

	"terragen/internal/core"
)

func TestBicubicFlatInputStaysFlat(t *testing.T) {
	var s Sample
	for x := range s {
		for y := range s[x] {
			s[x][y] = 37
		}
	}
	for _, ratio := range []int{1, 2, 4, 7} {
		out := Bicubic(s, ratio)
		if len(out) != ratio+1 || len(out[0]) != ratio+1 {
			t.Fatalf("ratio %d: got %dx%d block", ratio, len(out), len(out[0]))
		}
		for i := range out {
			for j := range out[i] {
				if math.Abs(out[i][j]-37) > 1e-9 {
					t.Fatalf("ratio %d: cell (%d,%d) = %v, want 37", ratio, i, j, out[i][j])
				}
			}
		}
	}
}

func TestBicubicPassesThroughCorners(t *testing.T) {
	var s Sample
	for x := range s {
		for y := range s[x] {
			s[x][y] = float64(x*10 + y)
		}
	}
	out := Bicubic(s, 4)
	// Corner (0,0) of the block is the average of the 2x2 window at [1..2][1..2].
	want := (s[1][1] + s[2][1] + s[1][2] + s[2][2]) / 4
	if math.Abs(out[0][0]-want) > 1e-9 {
		t.Fatalf("block origin = %v, want %v", out[0][0], want)
	}
	wantFar := (s[2][2] + s[3][2] + s[2][3] + s[3][3]) / 4
	if math.Abs(out[4][4]-wantFar) > 1e-9 {
		t.Fatalf("block far corner = %v, want %v", out[4][4], wantFar)
	}
}

func TestBilinearFlatInputStaysFlat(t *testing.T) {
	src := core.NewIntGrid(6)
	src.Fill(12)
	out := Bilinear(src, 3, 10)
	if out.W != 18 || out.H != 18 {
		t.Fatalf("got %dx%d, want 18x18", out.W, out.H)
	}
	for i, v := range out.Cells() {
		if math.Abs(v-120) > 1e-9 {
			t.Fatalf("cell %d = %v, want 120", i, v)
		}
	}
}

func TestQuadrantChartFlatCornersStayFlat(t *testing.T) {
	var q Quadrants
	for n := range q {
		q[n] = Corners{{60, 60}, {60, 60}}
	}
	chart := QuadrantChart(q, 100)
	for x := range chart {
		for y := range chart[x] {
			if chart[x][y] != 60 {
				t.Fatalf("chart[%d][%d] = %d, want 60", x, y, chart[x][y])
			}
		}
	}
}

func TestQuadrantChartBlendsTowardCorner(t *testing.T) {
	var q Quadrants
	q[0] = Corners{{0, 0}, {0, 100}}
	chart := QuadrantChart(q, 10)
	if chart[0][0] != 0 {
		t.Fatalf("origin = %d, want 0", chart[0][0])
	}
	if chart[4][4] <= chart[2][2] {
		t.Fatalf("values should grow toward the weighted corner: %d <= %d", chart[4][4], chart[2][2])
	}
}
