package render

import (
	"image/color"

	"lockstep/internal/core"
)

// Palette holds the colors used to paint the field.
type Palette struct {
	Live  color.Color
	Dead  color.Color
	Frame color.Color
}

// DefaultPalette paints live cells white on black.
func DefaultPalette() Palette {
	return Palette{Live: color.White, Dead: color.Black, Frame: color.RGBA{R: 40, G: 40, B: 48, A: 255}}
}

// Rasterize plots cells onto grid and converts it into RGBA pixels, one pixel
// per cell. buf is reused when it has the right length.
func Rasterize(buf []byte, grid *core.ByteGrid, cells []core.Cell, p Palette) []byte {
	grid.Plot(cells)
	n := 4 * len(grid.Cells())
	if len(buf) != n {
		buf = make([]byte, n)
	}
	fillBinaryRGBA(buf, grid.Cells(), p.Live, p.Dead)
	return buf
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// CellAt maps a screen position inside the field view to the cell under it.
// ok is false outside the field.
func CellAt(x, y, scale, side int) (core.Cell, bool) {
	if scale <= 0 || x < 0 || y < 0 {
		return core.Cell{}, false
	}
	c := core.Cell{Row: y / scale, Col: x / scale}
	return c, c.In(side)
}
