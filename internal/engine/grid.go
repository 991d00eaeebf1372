package engine

import (
	"fmt"
	"sync"

	"lockstep/internal/core"
)

// Grid is the authoritative state of the field: its side length and the live
// cells of the last committed generation. It is double buffered; a commit
// fills the back buffer and swaps it in under the write lock, so readers never
// observe a partially written generation.
type Grid struct {
	mu         sync.RWMutex
	cur        *core.ByteGrid
	nxt        *core.ByteGrid
	population int
}

// NewGrid allocates a grid of the given side seeded with cells.
func NewGrid(side int, cells []core.Cell) (*Grid, error) {
	g := &Grid{}
	if err := g.Replace(cells, side); err != nil {
		return nil, err
	}
	return g, nil
}

// Size returns the side length.
func (g *Grid) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cur.Side
}

// Population returns the number of live cells.
func (g *Grid) Population() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.population
}

// IsLive reports whether c is live. Cells outside the field are dead.
func (g *Grid) IsLive(c core.Cell) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cur.At(c.Row, c.Col) != 0
}

// LiveCells returns a row-major copy of the live cells.
func (g *Grid) LiveCells() []core.Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cur.Live()
}

// Replace swaps in a whole new field. Duplicate cells collapse; any cell
// outside [0, side) rejects the call and leaves the grid untouched.
func (g *Grid) Replace(cells []core.Cell, side int) error {
	if side < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, side)
	}
	for _, c := range cells {
		if !c.In(side) {
			return fmt.Errorf("%w: (%d,%d) on side %d", ErrCellOutOfRange, c.Row, c.Col, side)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cur == nil || g.cur.Side != side {
		g.cur = core.NewByteGrid(side)
		g.nxt = core.NewByteGrid(side)
	}
	g.cur.Plot(cells)
	g.nxt.Clear()
	g.population = countLive(g.cur)
	return nil
}

// Snapshot returns the read-only view of the current generation. The view is
// only stable while no commit or Replace runs, which the scheduler guarantees
// for the duration of one generation.
func (g *Grid) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Snapshot{g: g.cur}
}

// commit merges the staged cells into the back buffer and swaps it in.
func (g *Grid) commit(st *Staging) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nxt.Clear()
	for _, slot := range st.slots {
		for _, c := range slot {
			g.nxt.Set(c.Row, c.Col, 1)
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
	g.population = st.Len()
}

func countLive(b *core.ByteGrid) int {
	n := 0
	for _, v := range b.Cells() {
		if v != 0 {
			n++
		}
	}
	return n
}

// Snapshot is an immutable view of one generation.
type Snapshot struct {
	g *core.ByteGrid
}

// Side returns the side length of the viewed field.
func (s Snapshot) Side() int { return s.g.Side }

// IsLive reports whether c is live in the viewed generation. The field is
// bounded: cells outside it are permanently dead.
func (s Snapshot) IsLive(c core.Cell) bool { return s.g.At(c.Row, c.Col) != 0 }

// Neighbors counts the live cells among the eight surrounding (row, col).
func (s Snapshot) Neighbors(row, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n += int(s.g.At(row+dr, col+dc))
		}
	}
	return n
}
