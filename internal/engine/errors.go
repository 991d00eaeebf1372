package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrBarrierBroken is returned to parties waiting on a barrier cycle that
	// was abandoned by a cancelled or failed party.
	ErrBarrierBroken = errors.New("engine: barrier broken")

	// ErrInvalidTransition reports a lifecycle call made in the wrong state,
	// such as Start while running or Resize while running.
	ErrInvalidTransition = errors.New("engine: invalid state transition")

	// ErrShutdown is returned by every lifecycle call after Shutdown.
	ErrShutdown = errors.New("engine: scheduler shut down")

	// ErrHalted is returned by Advance when Pause, Stop or Shutdown ended the
	// run before it committed every requested generation.
	ErrHalted = errors.New("engine: run halted")

	// ErrComputation marks a fault raised while evaluating the rule.
	ErrComputation = errors.New("engine: computation fault")

	// ErrInvalidSize rejects side lengths below one.
	ErrInvalidSize = errors.New("engine: invalid side size")

	// ErrCellOutOfRange rejects seed cells outside the field.
	ErrCellOutOfRange = errors.New("engine: cell out of range")
)

// ComputeError carries the recovered panic of a worker.
type ComputeError struct {
	Worker     int
	Generation uint64
	Value      any
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("engine: worker %d failed computing generation %d: %v", e.Worker, e.Generation, e.Value)
}

// Unwrap lets errors.Is match ErrComputation.
func (e *ComputeError) Unwrap() error { return ErrComputation }
