package core

import "context"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract shared by the time-stepped terrain engines.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	// Step advances the simulation by one step or iteration.
	Step(ctx context.Context) error
	// Done reports whether the simulation has reached its end condition.
	Done() bool
}

// Drive steps sim until it reports Done, ctx is cancelled, or a step fails.
// onStep, when non-nil, is called with the number of completed steps.
func Drive(ctx context.Context, sim Sim, onStep func(step int)) error {
	step := 0
	for !sim.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sim.Step(ctx); err != nil {
			return err
		}
		step++
		if onStep != nil {
			onStep(step)
		}
	}
	return nil
}
