// Package patterns registers the built-in seed patterns.
package patterns

import "lockstep/internal/core"

// SoupDensity is the live-cell probability of the random pattern.
const SoupDensity = 0.3

func init() {
	core.Register("empty", func(int, int64) []core.Cell { return nil })
	core.Register("blinker", centered([][2]int{{0, 0}, {0, 1}, {0, 2}}))
	core.Register("block", centered([][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}))
	core.Register("glider", centered([][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}))
	core.Register("rpentomino", centered([][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 1}, {2, 1}}))
	core.Register("random", func(side int, seed int64) []core.Cell {
		return core.NewRNG(seed).Soup(side, SoupDensity)
	})
}

// centered places shape, given as {row, col} offsets, in the middle of the
// field, dropping any cell that does not fit.
func centered(shape [][2]int) core.Pattern {
	h, w := extent(shape)
	return func(side int, _ int64) []core.Cell {
		top := (side - h) / 2
		left := (side - w) / 2
		out := make([]core.Cell, 0, len(shape))
		for _, c := range shape {
			p := core.Cell{Row: top + c[0], Col: left + c[1]}
			if p.In(side) {
				out = append(out, p)
			}
		}
		return out
	}
}

func extent(shape [][2]int) (h, w int) {
	for _, c := range shape {
		if c[0]+1 > h {
			h = c[0] + 1
		}
		if c[1]+1 > w {
			w = c[1] + 1
		}
	}
	return h, w
}

// Build looks up name and builds it for side, returning the cells row-major.
// ok is false for unknown names.
func Build(name string, side int, seed int64) (cells []core.Cell, ok bool) {
	p, ok := core.Patterns()[name]
	if !ok {
		return nil, false
	}
	cells = p(side, seed)
	core.SortCells(cells)
	return cells, true
}
