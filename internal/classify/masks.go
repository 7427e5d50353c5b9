// Package classify derives the climate layers of a finished elevation map:
// ocean and mountain masks, prevailing winds, rain shadow, temperature,
// climate categories and continent labels. It also holds the image filters
// that reshape the raw plate output before classification.
package classify

import (
	"errors"
	"fmt"

	"terragen/internal/core"
)

// ErrShape reports layers whose dimensions do not match.
var ErrShape = errors.New("classify: mismatched grid sizes")

func sameShape(ref *core.IntGrid, others ...*core.IntGrid) error {
	for _, g := range others {
		if g == nil || !g.SameSize(ref.W, ref.H) {
			return fmt.Errorf("%w: want %dx%d", ErrShape, ref.W, ref.H)
		}
	}
	return nil
}

// OceanMask marks cells below threshold with the threshold value; land is 0.
func OceanMask(elev *core.IntGrid, threshold int) *core.IntGrid {
	out := core.NewGrid[int](elev.W, elev.H)
	dst := out.Cells()
	for i, v := range elev.Cells() {
		if v < threshold {
			dst[i] = threshold
		}
	}
	return out
}

// MountainMask marks cells above threshold with the threshold value.
func MountainMask(elev *core.IntGrid, threshold int) *core.IntGrid {
	out := core.NewGrid[int](elev.W, elev.H)
	dst := out.Cells()
	for i, v := range elev.Cells() {
		if v > threshold {
			dst[i] = threshold
		}
	}
	return out
}
