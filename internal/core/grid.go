package core

// ByteGrid stores a square grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	Side int
	data []uint8
}

// NewByteGrid allocates a grid with the given side length.
func NewByteGrid(side int) *ByteGrid {
	if side <= 0 {
		side = 1
	}
	return &ByteGrid{Side: side, data: make([]uint8, side*side)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for (row, col).
func (g *ByteGrid) Index(row, col int) int { return row*g.Side + col }

// At returns the value at (row, col); coordinates outside the grid read as 0.
func (g *ByteGrid) At(row, col int) uint8 {
	if row < 0 || row >= g.Side || col < 0 || col >= g.Side {
		return 0
	}
	return g.data[row*g.Side+col]
}

// Set stores v at (row, col). Out-of-range coordinates are ignored.
func (g *ByteGrid) Set(row, col int, v uint8) {
	if row < 0 || row >= g.Side || col < 0 || col >= g.Side {
		return
	}
	g.data[row*g.Side+col] = v
}

// Plot clears the grid and marks every in-range cell with 1.
func (g *ByteGrid) Plot(cells []Cell) {
	g.Clear()
	for _, c := range cells {
		g.Set(c.Row, c.Col, 1)
	}
}

// Live collects the coordinates of every non-zero cell in row-major order.
func (g *ByteGrid) Live() []Cell {
	var out []Cell
	for i, v := range g.data {
		if v != 0 {
			out = append(out, Cell{Row: i / g.Side, Col: i % g.Side})
		}
	}
	return out
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
