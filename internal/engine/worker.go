package engine

import (
	"context"

	"lockstep/internal/core"
)

// Rule decides whether a cell is live in the next generation given its
// current state and its live neighbor count.
type Rule func(alive bool, neighbors int) bool

// Conway is the standard B3/S23 rule.
func Conway(alive bool, neighbors int) bool {
	return neighbors == 3 || (alive && neighbors == 2)
}

// worker computes one band of rows per generation until its context ends.
type worker struct {
	index   int
	band    Band
	rule    Rule
	grid    *Grid
	staging *Staging
	barrier *Barrier
	gen     func() uint64
}

func (w *worker) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		cells, err := w.compute(w.grid.Snapshot(), w.staging.Slot(w.index))
		if err != nil {
			w.barrier.Break()
			return err
		}
		w.staging.Store(w.index, cells)
		if err := w.barrier.Await(ctx); err != nil {
			return err
		}
	}
}

// compute appends the next generation's live cells of the band to dst.
func (w *worker) compute(snap Snapshot, dst []core.Cell) (out []core.Cell, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ComputeError{Worker: w.index, Generation: w.gen() + 1, Value: r}
		}
	}()
	side := snap.Side()
	for row := w.band.Start; w.band.Contains(row); row++ {
		for col := 0; col < side; col++ {
			alive := snap.IsLive(core.Cell{Row: row, Col: col})
			if w.rule(alive, snap.Neighbors(row, col)) {
				dst = append(dst, core.Cell{Row: row, Col: col})
			}
		}
	}
	return dst, nil
}
