package engine

import (
	"context"
	"sync/atomic"

	"lockstep/internal/core"
)

// committer is the barrier action. It runs once per generation on whichever
// worker arrived last, while every other worker is parked at the barrier.
type committer struct {
	grid    *Grid
	staging *Staging
	pace    *core.Pace
	notify  func()

	generation atomic.Uint64

	// limit stops the run after that many commits of the current run; zero
	// means unbounded. done is invoked exactly once when the limit is hit.
	limit uint64
	run   uint64
	done  func()
}

func (c *committer) commit(ctx context.Context) error {
	c.grid.commit(c.staging)
	c.staging.Clear()
	c.generation.Add(1)
	c.run++

	last := c.limit > 0 && c.run >= c.limit
	var err error
	if !last {
		err = c.pace.Sleep(ctx)
	}
	if c.notify != nil {
		c.notify()
	}
	if last && c.done != nil {
		c.done()
	}
	return err
}

// arm prepares the committer for a new run.
func (c *committer) arm(limit uint64, done func()) {
	c.limit = limit
	c.run = 0
	c.done = done
}
