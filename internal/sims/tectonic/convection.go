package tectonic

import (
	"math"

	"terragen/internal/core"
)

// currentLength is the magnitude of every convection vector.
const currentLength = 99

// ConvectionCells builds the fixed current field: rotational cells a quarter
// of the map wide, alternating handedness between bands along y.
func ConvectionCells(dim int) *core.VecField {
	field := core.NewVecField(dim, dim)
	fourth := dim / 4
	eighth := fourth / 2
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			nx, ny := x, y
			counter := y < fourth || (y < fourth*3 && y > fourth*2-1)
			if counter {
				if ny > fourth {
					ny -= fourth * 2
				}
			} else if ny > fourth*2+1 {
				ny -= fourth * 3
			} else {
				ny -= fourth
			}
			for fourth > 0 && nx > fourth {
				nx -= fourth
			}
			nx = max(nx, 0)
			ny = max(ny, 0)

			nx -= eighth
			ny -= eighth
			mag := math.Hypot(float64(nx), float64(ny))
			if mag < float64(fourth/10) {
				nx += fourth / 10
			}

			angle := math.Atan2(float64(ny), float64(nx))
			if angle < 0 {
				angle += 2 * math.Pi
			}
			if counter {
				angle += math.Pi / 2
			} else {
				angle -= math.Pi / 2
			}
			for angle > 2*math.Pi {
				angle -= 2 * math.Pi
			}
			for angle < 0 {
				angle += 2 * math.Pi
			}
			field.Set(x, y, core.AngleVec(angle, currentLength))
		}
	}
	return field
}
