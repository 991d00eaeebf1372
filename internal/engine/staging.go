package engine

import "lockstep/internal/core"

// Staging collects the next generation while it is being computed. Each
// worker owns one slot and is its only writer; the committer reads every slot
// once all workers have reached the barrier, so no slot is ever touched by two
// goroutines at the same time.
type Staging struct {
	slots [][]core.Cell
}

// NewStaging allocates one slot per worker.
func NewStaging(workers int) *Staging {
	if workers < 1 {
		workers = 1
	}
	return &Staging{slots: make([][]core.Cell, workers)}
}

// Slot returns the slot of worker i, truncated for reuse.
func (s *Staging) Slot(i int) []core.Cell { return s.slots[i][:0] }

// Store publishes the cells computed by worker i.
func (s *Staging) Store(i int, cells []core.Cell) { s.slots[i] = cells }

// Len returns the number of staged cells across all slots.
func (s *Staging) Len() int {
	n := 0
	for _, slot := range s.slots {
		n += len(slot)
	}
	return n
}

// Clear empties every slot, keeping the backing arrays.
func (s *Staging) Clear() {
	for i := range s.slots {
		s.slots[i] = s.slots[i][:0]
	}
}
