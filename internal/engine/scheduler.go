package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"lockstep/internal/core"
)

// State is the lifecycle phase of a Scheduler.
type State int

const (
	// Stopped means no workers are running; the field may be edited.
	Stopped State = iota
	// Running means workers are advancing generations.
	Running
	// Paused is Stopped reached through Pause.
	Paused
	// Shutdown is terminal.
	Shutdown
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Shutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options wires the scheduler to its observer.
//
// OnCommit is called once per committed generation on the goroutine that
// committed it, with every worker parked at the barrier. It should return
// quickly and must not call Pause, Stop, Shutdown or Advance; reading the
// field through LiveCells is fine.
//
// OnFault is called from a background goroutine when a run stops because of a
// computation fault.
type Options struct {
	OnCommit func()
	OnFault  func(error)
	Logger   *log.Logger
}

// run tracks one batch of worker goroutines.
type run struct {
	cancel    context.CancelFunc
	done      chan struct{}
	completed atomic.Bool
	after     State

	faultOnce sync.Once
	fault     error
}

// stop asks the run to end cleanly.
func (r *run) stop() { r.cancel() }

// complete ends a run that committed its generation limit.
func (r *run) complete() {
	r.completed.Store(true)
	r.cancel()
}

// fail records the first fault and cancels the run.
func (r *run) fail(err error) {
	r.faultOnce.Do(func() { r.fault = err })
	r.cancel()
}

// Scheduler owns the worker pool and the lifecycle of the simulation.
type Scheduler struct {
	mu    sync.Mutex
	cfg   Config
	opts  Options
	log   *log.Logger
	state State
	cur   *run
	err   error

	rule    Rule
	grid    *Grid
	staging *Staging
	barrier *Barrier
	pace    *core.Pace
	commit  *committer
}

// NewScheduler builds a stopped scheduler for cfg seeded with cells.
func NewScheduler(cfg Config, seed []core.Cell, opts Options) (*Scheduler, error) {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultConfig().Workers
	}
	grid, err := NewGrid(cfg.Side, seed)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Scheduler{
		cfg:     cfg,
		opts:    opts,
		log:     logger,
		rule:    Conway,
		grid:    grid,
		staging: NewStaging(cfg.Workers),
		pace:    core.NewPace(cfg.Pace),
	}
	s.commit = &committer{
		grid:    s.grid,
		staging: s.staging,
		pace:    s.pace,
		notify:  opts.OnCommit,
	}
	s.barrier = NewBarrier(cfg.Workers, s.commit.commit)
	return s, nil
}

// State returns the lifecycle phase.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the fault that ended the last run, if any. It is cleared by the
// next Start or Advance.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Workers returns the size of the worker pool.
func (s *Scheduler) Workers() int { return s.cfg.Workers }

// Generation returns the number of generations committed since the last seed.
func (s *Scheduler) Generation() uint64 { return s.commit.generation.Load() }

// LiveCells returns a row-major copy of the current live cells.
func (s *Scheduler) LiveCells() []core.Cell { return s.grid.LiveCells() }

// IsLive reports whether c is live in the current generation.
func (s *Scheduler) IsLive(c core.Cell) bool { return s.grid.IsLive(c) }

// Size returns the side length of the field.
func (s *Scheduler) Size() int { return s.grid.Size() }

// Population returns the number of live cells.
func (s *Scheduler) Population() int { return s.grid.Population() }

// Pace returns the delay applied after each commit.
func (s *Scheduler) Pace() time.Duration { return s.pace.Interval() }

// SetPace changes the delay applied after each commit. It takes effect on the
// next commit and never requires a restart.
func (s *Scheduler) SetPace(d time.Duration) { s.pace.Set(d) }

// Start launches the workers. It fails with ErrInvalidTransition when already
// running.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked("start"); err != nil {
		return err
	}
	r := s.launchLocked(context.Background(), 0)
	r.after = Stopped
	s.state = Running
	s.log.Printf("engine: started %d workers on %dx%d field at generation %d",
		s.cfg.Workers, s.grid.Size(), s.grid.Size(), s.Generation())
	return nil
}

// Pause cancels the workers, waits for them to exit and leaves the scheduler
// Paused. The field keeps the last committed generation.
func (s *Scheduler) Pause() error { return s.halt(Paused) }

// Stop is Pause ending in the Stopped state.
func (s *Scheduler) Stop() error { return s.halt(Stopped) }

func (s *Scheduler) halt(to State) error {
	s.mu.Lock()
	if s.state == Shutdown {
		s.mu.Unlock()
		return ErrShutdown
	}
	if s.state != Running || s.cur == nil {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, to, state)
	}
	r := s.cur
	r.after = to
	r.stop()
	s.mu.Unlock()

	<-r.done
	return nil
}

// Advance runs exactly n generations with the worker pool and returns to the
// state it was called in. It is only valid while not running. When Pause,
// Stop or Shutdown cut the run short it returns ErrHalted; the generations
// committed until then are kept.
func (s *Scheduler) Advance(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	s.mu.Lock()
	if err := s.editableLocked("advance"); err != nil {
		s.mu.Unlock()
		return err
	}
	from := s.Generation()
	r := s.launchLocked(ctx, uint64(n))
	r.after = s.state
	s.state = Running
	s.mu.Unlock()

	<-r.done
	switch {
	case r.fault != nil:
		return r.fault
	case r.completed.Load():
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return fmt.Errorf("%w after %d of %d generations", ErrHalted, s.Generation()-from, n)
}

// Seed replaces the field while not running and resets the generation count.
func (s *Scheduler) Seed(cells []core.Cell, side int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked("seed"); err != nil {
		return err
	}
	if err := s.grid.Replace(cells, side); err != nil {
		return err
	}
	s.commit.generation.Store(0)
	return nil
}

// Resize clears the field and changes its side while not running.
func (s *Scheduler) Resize(side int) error { return s.Seed(nil, side) }

// Clear kills every cell while not running.
func (s *Scheduler) Clear() error { return s.Seed(nil, s.grid.Size()) }

// Shutdown stops any run and makes the scheduler unusable. It is idempotent.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	if s.state == Shutdown {
		s.mu.Unlock()
		return
	}
	r := s.cur
	s.state = Shutdown
	if r != nil {
		r.after = Shutdown
		r.stop()
	}
	s.mu.Unlock()

	if r != nil {
		<-r.done
	}
	s.log.Printf("engine: shut down at generation %d", s.Generation())
}

func (s *Scheduler) editableLocked(op string) error {
	switch s.state {
	case Shutdown:
		return ErrShutdown
	case Running:
		return fmt.Errorf("%w: %s while running", ErrInvalidTransition, op)
	}
	return nil
}

// launchLocked starts one goroutine per band. The caller holds s.mu and sets
// r.after and s.state.
func (s *Scheduler) launchLocked(parent context.Context, limit uint64) *run {
	ctx, cancel := context.WithCancel(parent)
	r := &run{cancel: cancel, done: make(chan struct{})}
	s.cur = r
	s.err = nil
	s.barrier.Reset()
	s.staging.Clear()
	s.commit.arm(limit, r.complete)

	bands := Partitions(s.cfg.Workers, s.grid.Size())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(bands))
	for i, band := range bands {
		w := &worker{
			index:   i,
			band:    band,
			rule:    s.rule,
			grid:    s.grid,
			staging: s.staging,
			barrier: s.barrier,
			gen:     s.commit.generation.Load,
		}
		g.Go(func() error {
			err := w.run(gctx)
			if err != nil && !isCancellation(err) {
				r.fail(err)
			}
			return err
		})
	}
	go s.supervise(r, g)
	return r
}

func (s *Scheduler) supervise(r *run, g *errgroup.Group) {
	_ = g.Wait()
	r.cancel()

	s.mu.Lock()
	s.barrier.Reset()
	s.staging.Clear()
	if s.cur == r {
		s.cur = nil
	}
	fault := r.fault
	switch {
	case s.state == Shutdown:
	case fault != nil:
		s.err = fault
		s.state = Stopped
	default:
		s.state = r.after
	}
	state := s.state
	s.mu.Unlock()

	if fault != nil {
		s.log.Printf("engine: run stopped abnormally at generation %d: %v", s.Generation(), fault)
		if s.opts.OnFault != nil {
			s.opts.OnFault(fault)
		}
	} else {
		s.log.Printf("engine: workers exited, now %s at generation %d", state, s.Generation())
	}
	close(r.done)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrBarrierBroken)
}
