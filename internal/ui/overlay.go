//go:build ebiten

package ui

import (
	"image/color"

	"lockstep/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type bandSource interface {
	Size() int
	Workers() int
}

// HelpLines lists the key bindings shown by the help overlay.
var HelpLines = []string{
	"space  start / pause",
	"n      step one generation",
	"c      clear",
	"r / s  reseed (same / new seed)",
	"1 2 3  small / medium / large",
	"- =    slower / faster",
	"mouse  paint (left) erase (right)",
	"b      worker bands",
	"h      this help",
	"q      quit",
}

// Overlay draws optional visuals on top of the field: the row band owned by
// each worker and a key binding reference.
type Overlay struct {
	src       bandSource
	scale     int
	showBands bool
	showHelp  bool
	pixel     *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(src bandSource, scale int) *Overlay {
	o := &Overlay{src: src, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showBands = !o.showBands
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	side := o.src.Size()
	if side <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showBands {
		o.drawBands(screen, side, scale)
	}
	if o.showHelp {
		o.drawHelp(screen)
	}
}

// drawBands tints alternate bands and marks every boundary.
func (o *Overlay) drawBands(screen *ebiten.Image, side, scale int) {
	width := float64(side * scale)
	for i, b := range engine.Partitions(o.src.Workers(), side) {
		if b.Rows() == 0 {
			continue
		}
		top := float64(b.Start * scale)
		if i%2 == 1 {
			o.fillRect(screen, 0, top, width, float64(b.Rows()*scale), color.RGBA{R: 40, G: 90, B: 160, A: 60})
		}
		if b.Start > 0 {
			o.fillRect(screen, 0, top, width, 1, color.RGBA{R: 255, G: 140, B: 40, A: 200})
		}
	}
}

func (o *Overlay) drawHelp(screen *ebiten.Image) {
	const (
		lineH = 16
		pad   = 8
	)
	w := 0
	face := basicfont.Face7x13
	for _, line := range HelpLines {
		if dx := text.BoundString(face, line).Dx(); dx > w {
			w = dx
		}
	}
	h := len(HelpLines)*lineH + pad
	o.fillRect(screen, pad, pad, float64(w+2*pad), float64(h+pad), color.RGBA{R: 0, G: 0, B: 0, A: 200})
	for i, line := range HelpLines {
		text.Draw(screen, line, face, 2*pad, 2*pad+(i+1)*lineH-4, color.RGBA{R: 230, G: 230, B: 240, A: 255})
	}
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(o.pixel, op)
}
