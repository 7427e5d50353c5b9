package classify

import (
	"context"
	"math"

	"terragen/internal/core"
)

// Climate categories.
const (
	Ocean = iota
	Rainforest
	Forest
	Temperate
	Desert
	Tundra
	Mountain
)

// ClimateNames maps climate categories to display names.
var ClimateNames = [...]string{
	Ocean:      "ocean",
	Rainforest: "rainforest",
	Forest:     "forest",
	Temperate:  "temperate",
	Desert:     "desert",
	Tundra:     "tundra",
	Mountain:   "mountain",
}

// windBands are the prevailing directions of the six bands along x.
var windBands = [6]core.Vec2{
	{-1, -1},
	{1, 1},
	{-1, -1},
	{-1, 1},
	{1, -1},
	{-1, 1},
}

// WindField returns the prevailing wind of each cell. The map is split into
// six equal bands along x; any remainder joins the last band.
func WindField(dim int) *core.VecField {
	field := core.NewVecField(dim, dim)
	sixth := max(dim/6, 1)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			field.Set(x, y, windBands[min(x/sixth, 5)])
		}
	}
	return field
}

// RainShadow carries moisture inland from the ocean. Every particle steps
// downwind along x and diagonally along its wind's y sign, wetting targets
// lower than blocker, and leaves its source dry. Sweeps run in scan order
// until no more than 2*dim particles remain or 4*dim sweeps have run.
func RainShadow(ctx context.Context, elev, ocean *core.IntGrid, wind *core.VecField, blocker int) (*core.IntGrid, error) {
	if err := sameShape(elev, ocean); err != nil {
		return nil, err
	}
	if wind == nil || wind.W != elev.W || wind.H != elev.H {
		return nil, ErrShape
	}
	w, h := elev.W, elev.H
	precip := core.NewGrid[int](w, h)
	particles := core.NewGrid[int](w, h)
	live := 0
	for i, v := range ocean.Cells() {
		if v > 1 {
			particles.Cells()[i] = 1
			precip.Cells()[i] = 1
			live++
		}
	}

	dim := max(w, h)
	for sweep := 0; live > 2*dim && sweep < 4*dim; sweep++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if particles.At(x, y) == 0 {
					continue
				}
				dir := wind.At(x, y)
				tx, ty := x+1, y+1
				if dir.X() == -1 {
					tx = x - 1
				}
				if dir.Y() == -1 {
					ty = y - 1
				}
				for _, t := range [2][2]int{{tx, y}, {tx, ty}} {
					if elev.InBounds(t[0], t[1]) && elev.At(t[0], t[1]) < blocker {
						particles.Set(t[0], t[1], 1)
						precip.Set(t[0], t[1], 1)
					}
				}
				particles.Set(x, y, 0)
			}
		}
		live = 0
		for _, v := range particles.Cells() {
			live += v
		}
	}
	return precip, nil
}

// Temperature returns a latitude profile: warmest on the middle row, falling
// to zero at the top and bottom edges along a sine curve.
func Temperature(dim int) *core.IntGrid {
	out := core.NewIntGrid(dim)
	half := float64(dim) / 2
	if dim/2 > 0 {
		half = float64(dim / 2)
	}
	for y := 0; y < dim; y++ {
		t := int(100 - math.Abs(float64(y)-half)/half*100)
		v := int(math.Sin(float64(t)/100*math.Pi/2) * 100)
		for x := 0; x < dim; x++ {
			out.Set(x, y, v)
		}
	}
	return out
}

// Climate assigns each cell a category from its elevation, precipitation
// and temperature.
func Climate(elev, precip, temp *core.IntGrid, ocean, mountain int) (*core.IntGrid, error) {
	if err := sameShape(elev, precip, temp); err != nil {
		return nil, err
	}
	out := core.NewGrid[int](elev.W, elev.H)
	e, p, t, dst := elev.Cells(), precip.Cells(), temp.Cells(), out.Cells()
	for i := range e {
		dst[i] = category(e[i], p[i], t[i], ocean, mountain)
	}
	return out, nil
}

func category(elev, precip, temp, ocean, mountain int) int {
	if elev <= ocean {
		if temp > 25 {
			return Ocean
		}
		return Tundra
	}
	switch {
	case elev > mountain:
		return Mountain
	case precip > 0:
		switch {
		case temp > 94:
			return Rainforest
		case temp > 80:
			return Forest
		case temp > 40:
			return Temperate
		}
		return Tundra
	case temp > 40:
		return Desert
	}
	return Tundra
}
