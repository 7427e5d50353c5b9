package core

// Buffers pairs two equally sized grids for ping-pong updates. During a step
// Front is only read and Back is only written; Swap publishes Back as the new
// Front once every writer has joined.
type Buffers[T Number] struct {
	Front *Grid[T]
	Back  *Grid[T]
}

// NewBuffers allocates a pair of w*h grids.
func NewBuffers[T Number](w, h int) *Buffers[T] {
	return &Buffers[T]{Front: NewGrid[T](w, h), Back: NewGrid[T](w, h)}
}

// Swap exchanges the read and write buffers.
func (b *Buffers[T]) Swap() { b.Front, b.Back = b.Back, b.Front }

// Fill sets every cell of both buffers to v.
func (b *Buffers[T]) Fill(v T) {
	b.Front.Fill(v)
	b.Back.Fill(v)
}

// Sync copies Front into Back so both start a step from the same state.
func (b *Buffers[T]) Sync() { b.Back.CopyFrom(b.Front) }
