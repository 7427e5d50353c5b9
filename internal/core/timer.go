package core

import "time"

// Event is a progress report emitted by a long-running phase.
type Event struct {
	Phase   string        `json:"phase"`
	Step    int           `json:"step"`
	Total   int           `json:"total"`
	Elapsed time.Duration `json:"elapsed"`
	ETA     time.Duration `json:"eta"`
	Done    bool          `json:"done"`
}

// ProgressFunc receives progress events. Implementations must be safe to call
// from the goroutine running the phase.
type ProgressFunc func(Event)

// Progress rate-limits progress reports to one per interval and estimates the
// time remaining from the average step duration so far.
type Progress struct {
	phase string
	total int
	fn    ProgressFunc

	every       time.Duration
	accumulator time.Duration
	start       time.Time
	last        time.Time

	now func() time.Time
}

// NewProgress constructs a Progress for a phase of total steps. A nil fn
// produces a Progress that reports nothing.
func NewProgress(phase string, total int, every time.Duration, fn ProgressFunc) *Progress {
	if every <= 0 {
		every = time.Second
	}
	return &Progress{phase: phase, total: total, fn: fn, every: every, now: time.Now}
}

// SetClock replaces the time source. Intended for tests.
func (p *Progress) SetClock(now func() time.Time) { p.now = now }

// Tick records that step steps have completed and emits an event when the
// reporting interval has elapsed. It reports whether an event was emitted.
func (p *Progress) Tick(step int) bool {
	if p == nil || p.fn == nil {
		return false
	}
	now := p.now()
	if p.start.IsZero() {
		p.start = now
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	if p.accumulator < p.every {
		return false
	}
	p.accumulator = 0
	p.fn(p.event(step, now, false))
	return true
}

// Finish emits a final event for the phase regardless of the interval.
func (p *Progress) Finish(step int) {
	if p == nil || p.fn == nil {
		return
	}
	now := p.now()
	if p.start.IsZero() {
		p.start = now
	}
	p.fn(p.event(step, now, true))
}

func (p *Progress) event(step int, now time.Time, done bool) Event {
	elapsed := now.Sub(p.start)
	var eta time.Duration
	if step > 0 && p.total > step {
		eta = elapsed / time.Duration(step) * time.Duration(p.total-step)
	}
	return Event{Phase: p.phase, Step: step, Total: p.total, Elapsed: elapsed, ETA: eta, Done: done}
}
