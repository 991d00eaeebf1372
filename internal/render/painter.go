//go:build ebiten

package render

import (
	"lockstep/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one RGBA image of the field, refreshed from live cells.
type GridPainter struct {
	side    int
	img     *ebiten.Image
	grid    *core.ByteGrid
	buf     []byte
	palette Palette
}

// NewGridPainter allocates a painter for a side x side field.
func NewGridPainter(side int, p Palette) *GridPainter {
	gp := &GridPainter{palette: p}
	gp.Resize(side)
	return gp
}

// Resize reallocates the image when the field side changes.
func (gp *GridPainter) Resize(side int) {
	if gp.img != nil && gp.side == side {
		return
	}
	gp.side = side
	gp.grid = core.NewByteGrid(side)
	gp.img = ebiten.NewImage(side, side)
	gp.buf = nil
}

// Update uploads the provided live cells into the painter image.
func (gp *GridPainter) Update(cells []core.Cell) {
	gp.buf = Rasterize(gp.buf, gp.grid, cells, gp.palette)
	gp.img.WritePixels(gp.buf)
}

// Draw paints the image scaled onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Side returns the side of the painted field.
func (gp *GridPainter) Side() int { return gp.side }
