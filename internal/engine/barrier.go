package engine

import (
	"context"
	"fmt"
	"sync"
)

// BarrierState is the phase of the cycle a barrier is currently running.
type BarrierState int

const (
	// BarrierWaiting means fewer than all parties have arrived.
	BarrierWaiting BarrierState = iota
	// BarrierTripping means the last party arrived and the action is running.
	BarrierTripping
	// BarrierReleased means the cycle finished, normally or broken.
	BarrierReleased
)

func (s BarrierState) String() string {
	switch s {
	case BarrierWaiting:
		return "waiting"
	case BarrierTripping:
		return "tripping"
	case BarrierReleased:
		return "released"
	default:
		return fmt.Sprintf("BarrierState(%d)", int(s))
	}
}

// cycle is one rendezvous. Closing released wakes every waiting party; broken
// is written before the close.
type cycle struct {
	state    BarrierState
	broken   bool
	released chan struct{}
}

func newCycle() *cycle {
	return &cycle{released: make(chan struct{})}
}

// Barrier is a reusable rendezvous for a fixed number of parties. The last
// party to arrive runs the action on its own goroutine while every other party
// stays blocked; once the action returns, all parties are released together
// and the arrival count starts over.
//
// A cycle breaks when a waiting party is cancelled, when Break or Reset is
// called with parties waiting, or when the action fails. Parties of a broken
// cycle get ErrBarrierBroken, and so does every later arrival until Reset.
type Barrier struct {
	mu      sync.Mutex
	parties int
	arrived int
	trips   uint64
	cur     *cycle
	action  func(ctx context.Context) error
}

// NewBarrier creates a barrier for parties participants. action may be nil.
func NewBarrier(parties int, action func(ctx context.Context) error) *Barrier {
	if parties < 1 {
		parties = 1
	}
	return &Barrier{parties: parties, cur: newCycle(), action: action}
}

// Parties returns the number of parties needed to trip the barrier.
func (b *Barrier) Parties() int { return b.parties }

// Waiting returns the number of parties that arrived in the current cycle.
func (b *Barrier) Waiting() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.arrived
}

// Generation returns how many cycles completed without breaking.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trips
}

// State returns the phase of the current cycle.
func (b *Barrier) State() BarrierState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur.state
}

// Broken reports whether the current cycle is broken.
func (b *Barrier) Broken() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur.broken
}

// Await registers the caller's arrival and blocks until the cycle completes.
// It returns nil on a normal release, ErrBarrierBroken if the cycle broke,
// ctx.Err() if the caller was cancelled while waiting, and the action's error
// to the party that ran a failing action.
func (b *Barrier) Await(ctx context.Context) error {
	b.mu.Lock()
	c := b.cur
	if c.broken {
		b.mu.Unlock()
		return ErrBarrierBroken
	}
	if err := ctx.Err(); err != nil {
		b.breakLocked(c)
		b.mu.Unlock()
		return err
	}
	b.arrived++
	if b.arrived < b.parties {
		b.mu.Unlock()
		return b.wait(ctx, c)
	}
	c.state = BarrierTripping
	b.mu.Unlock()

	err := b.runAction(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		c.broken = true
	} else {
		b.trips++
	}
	c.state = BarrierReleased
	close(c.released)
	if b.cur == c && !c.broken {
		b.cur = newCycle()
		b.arrived = 0
	}
	return err
}

func (b *Barrier) wait(ctx context.Context, c *cycle) error {
	select {
	case <-c.released:
		return b.outcome(c)
	case <-ctx.Done():
	}

	b.mu.Lock()
	switch c.state {
	case BarrierTripping:
		// The action is already running; it must finish before anyone leaves.
		b.mu.Unlock()
		<-c.released
		return ctx.Err()
	case BarrierReleased:
		b.mu.Unlock()
		return b.outcome(c)
	default:
		b.breakLocked(c)
		b.mu.Unlock()
		return ctx.Err()
	}
}

func (b *Barrier) outcome(c *cycle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c.broken {
		return ErrBarrierBroken
	}
	return nil
}

func (b *Barrier) runAction(ctx context.Context) (err error) {
	if b.action == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: barrier action: %v", ErrComputation, r)
		}
	}()
	return b.action(ctx)
}

// breakLocked releases every waiter of a waiting cycle with ErrBarrierBroken.
// A tripping cycle is left to its action.
func (b *Barrier) breakLocked(c *cycle) {
	if c.state != BarrierWaiting {
		return
	}
	c.broken = true
	c.state = BarrierReleased
	close(c.released)
}

// Break breaks the current cycle, releasing its waiters with
// ErrBarrierBroken. Later arrivals fail the same way until Reset.
func (b *Barrier) Break() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.breakLocked(b.cur)
}

// Reset breaks any waiting cycle and starts a fresh one with no arrivals.
func (b *Barrier) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.breakLocked(b.cur)
	b.cur = newCycle()
	b.arrived = 0
}
