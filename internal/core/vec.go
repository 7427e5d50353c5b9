package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D direction vector.
type Vec2 = mgl64.Vec2

// VecField stores one Vec2 per cell in row-major order.
type VecField struct {
	W, H int
	data []Vec2
}

// NewVecField allocates a w*h vector field of zero vectors.
func NewVecField(w, h int) *VecField {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &VecField{W: w, H: h, data: make([]Vec2, w*h)}
}

// At returns the vector stored at (x, y).
func (f *VecField) At(x, y int) Vec2 { return f.data[y*f.W+x] }

// Set stores v at (x, y).
func (f *VecField) Set(x, y int, v Vec2) { f.data[y*f.W+x] = v }

// Cells exposes the backing slice.
func (f *VecField) Cells() []Vec2 { return f.data }

// XComponents returns the truncated x component of every vector as an int grid.
func (f *VecField) XComponents() *IntGrid {
	out := NewGrid[int](f.W, f.H)
	for i, v := range f.data {
		out.data[i] = int(v.X())
	}
	return out
}

// AngleVec returns a vector of the given length pointing at angle radians,
// with components truncated toward zero.
func AngleVec(angle, length float64) Vec2 {
	return Vec2{math.Trunc(length * math.Cos(angle)), math.Trunc(length * math.Sin(angle))}
}
