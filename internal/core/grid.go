package core

// Number lists the cell types a Grid can hold.
type Number interface {
	~uint8 | ~int | ~float64
}

// Grid stores a 2D grid of cell values in row-major order.
type Grid[T Number] struct {
	W, H int
	data []T
}

// IntGrid is the integer elevation/classification grid used by the coarse phases.
type IntGrid = Grid[int]

// FloatGrid is the floating-point grid used by the erosion phase.
type FloatGrid = Grid[float64]

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T Number](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// NewIntGrid allocates a square integer grid.
func NewIntGrid(dim int) *IntGrid { return NewGrid[int](dim, dim) }

// NewFloatGrid allocates a square float grid.
func NewFloatGrid(dim int) *FloatGrid { return NewGrid[float64](dim, dim) }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the value at (x, y).
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set writes v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// Add adds v to the cell at (x, y).
func (g *Grid[T]) Add(x, y int, v T) { g.data[y*g.W+x] += v }

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear fills the grid with zeros.
func (g *Grid[T]) Clear() {
	var zero T
	g.Fill(zero)
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{W: g.W, H: g.H, data: make([]T, len(g.data))}
	copy(out.data, g.data)
	return out
}

// CopyFrom overwrites g with src. Both grids must share dimensions.
func (g *Grid[T]) CopyFrom(src *Grid[T]) { copy(g.data, src.data) }

// SameSize reports whether two grids have identical dimensions.
func (g *Grid[T]) SameSize(w, h int) bool { return g.W == w && g.H == h }

// Sum returns the sum of all cells as float64.
func (g *Grid[T]) Sum() float64 {
	total := 0.0
	for _, v := range g.data {
		total += float64(v)
	}
	return total
}

// Clamp limits every cell to [lo, hi].
func (g *Grid[T]) Clamp(lo, hi T) {
	for i, v := range g.data {
		if v < lo {
			g.data[i] = lo
		} else if v > hi {
			g.data[i] = hi
		}
	}
}

// MinMax returns the smallest and largest cell values.
func (g *Grid[T]) MinMax() (T, T) {
	if len(g.data) == 0 {
		var zero T
		return zero, zero
	}
	lo, hi := g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// ToFloat converts an integer grid into a float grid.
func ToFloat(g *IntGrid) *FloatGrid {
	out := NewGrid[float64](g.W, g.H)
	for i, v := range g.data {
		out.data[i] = float64(v)
	}
	return out
}
