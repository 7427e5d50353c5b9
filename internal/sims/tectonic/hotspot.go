package tectonic

import "terragen/internal/core"

// Hotspot is a transient heat source that raises the rock above it.
type Hotspot struct {
	X, Y int

	Age  int
	Life int

	Magnitude    int
	MaxMagnitude int
}

// NewHotspot returns a hotspot at (x, y) that lives for life steps.
func NewHotspot(x, y, life, magnitude int) *Hotspot {
	return &Hotspot{X: x, Y: y, Life: life, Magnitude: 1, MaxMagnitude: magnitude}
}

// Expired reports whether the hotspot has outlived its lifespan.
func (h *Hotspot) Expired() bool { return h.Age >= h.Life }

// distance from mid-life and half the lifespan.
func (h *Hotspot) phase() (int, int) {
	half := h.Life / 2
	d := half - h.Age
	if d < 0 {
		d = -d
	}
	return d, half
}

// Intensity is the heat stamped this step: 100 at mid-life, falling
// linearly toward 0 at birth and death.
func (h *Hotspot) Intensity() int {
	d, half := h.phase()
	if half <= 0 {
		return 0
	}
	v := 100 - d*100/half
	if v < 0 {
		return 0
	}
	return v
}

// updateMagnitude applies the triangular ramp in five bands.
func (h *Hotspot) updateMagnitude() {
	d, half := h.phase()
	r := 0.0
	if half > 0 {
		r = 1 - float64(d)/float64(half)
	}
	m := float64(h.MaxMagnitude)
	switch {
	case r > 0.8:
		h.Magnitude = h.MaxMagnitude
	case r > 0.6:
		h.Magnitude = int(0.8 * m)
	case r > 0.4:
		h.Magnitude = int(0.6 * m)
	case r > 0.2:
		h.Magnitude = int(0.4 * m)
	default:
		h.Magnitude = int(0.2 * m)
	}
}

var (
	footprintCenter = [][2]int{{0, 0}}
	footprintPlus   = [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	footprintSquare = [][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {0, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	footprintDiamond = [][2]int{
		{0, -2},
		{-1, -1}, {0, -1}, {1, -1},
		{-2, 0}, {-1, 0}, {0, 0}, {1, 0}, {2, 0},
		{-1, 1}, {0, 1}, {1, 1},
		{0, 2},
	}
)

// Footprint returns the cell offsets heated at the given magnitude.
func Footprint(magnitude int) [][2]int {
	switch {
	case magnitude <= 0:
		return nil
	case magnitude == 1:
		return footprintCenter
	case magnitude == 2:
		return footprintPlus
	case magnitude < 5:
		return footprintSquare
	default:
		return footprintDiamond
	}
}

// Stamp writes the hotspot's heat into its footprint, clipped to the grid,
// and ages it by one step.
func (h *Hotspot) Stamp(heat *core.IntGrid) {
	h.updateMagnitude()
	v := h.Intensity()
	for _, off := range Footprint(h.Magnitude) {
		x, y := h.X+off[0], h.Y+off[1]
		if heat.InBounds(x, y) {
			heat.Set(x, y, v)
		}
	}
	h.Age++
}
