package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"terragen/internal/core"
	"terragen/internal/terrain"
)

// Status is the lifecycle state of a generation job.
type Status string

const (
	StatusRunning   Status = "running"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// ErrJobNotFound reports an unknown job id.
var ErrJobNotFound = errors.New("server: job not found")

// Job is one generation run.
type Job struct {
	ID      uuid.UUID
	Created time.Time
	Config  terrain.Config

	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	status Status
	err    error
	last   core.Event
	result *terrain.Result
	subs   map[chan core.Event]struct{}
}

// Done is closed when the job has stopped for any reason.
func (j *Job) Done() <-chan struct{} { return j.done }

// Cancel stops a running job.
func (j *Job) Cancel() { j.cancel() }

// State returns the status, last progress event and failure of the job.
func (j *Job) State() (Status, core.Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status, j.last, j.err
}

// Result returns the finished result, or terrain.ErrNotGenerated while the
// job is still running or if it failed.
func (j *Job) Result() (*terrain.Result, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.result == nil {
		return nil, terrain.ErrNotGenerated
	}
	return j.result, nil
}

// Subscribe returns a channel of progress events and a function that
// releases it. Slow subscribers miss events instead of stalling the job.
func (j *Job) Subscribe() (<-chan core.Event, func()) {
	ch := make(chan core.Event, 16)
	j.mu.Lock()
	j.subs[ch] = struct{}{}
	j.mu.Unlock()
	return ch, func() {
		j.mu.Lock()
		delete(j.subs, ch)
		j.mu.Unlock()
	}
}

func (j *Job) publish(ev core.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.last = ev
	for ch := range j.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (j *Job) run(ctx context.Context, g *terrain.Generator) {
	defer close(j.done)
	g.SetProgress(j.publish)
	res, err := g.Generate(ctx)

	j.mu.Lock()
	defer j.mu.Unlock()
	switch {
	case err == nil:
		j.status = StatusDone
		j.result = res
	case errors.Is(err, context.Canceled):
		j.status = StatusCancelled
		j.err = err
	default:
		j.status = StatusFailed
		j.err = err
	}
}

// Store keeps every job in memory, keyed by id.
type Store struct {
	ctx context.Context

	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewStore returns a Store whose jobs are cancelled when ctx is.
func NewStore(ctx context.Context) *Store {
	return &Store{ctx: ctx, jobs: make(map[uuid.UUID]*Job)}
}

// Create validates cfg and starts a job for it in the background.
func (s *Store) Create(cfg terrain.Config) (*Job, error) {
	g, err := terrain.NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(s.ctx)
	j := &Job{
		ID:      uuid.New(),
		Created: time.Now(),
		Config:  cfg,
		cancel:  cancel,
		done:    make(chan struct{}),
		status:  StatusRunning,
		subs:    make(map[chan core.Event]struct{}),
	}
	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()

	go func() {
		defer cancel()
		j.run(ctx, g)
	}()
	return j, nil
}

// Get looks a job up by its string id.
func (s *Store) Get(id string) (*Job, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[u]
	if !ok {
		return nil, ErrJobNotFound
	}
	return j, nil
}

// List returns every job.
func (s *Store) List() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out
}
