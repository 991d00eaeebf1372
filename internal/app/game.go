//go:build ebiten

package app

import (
	"log"
	"time"

	"lockstep/internal/render"
	"lockstep/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Controller to the ebiten.Game interface. Commits arrive on
// worker goroutines and only flip the controller's dirty flag; the field is
// re-read and uploaded here, on the ebiten thread.
type Game struct {
	ctl     *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	palette render.Palette

	scale int
	seed  int64
}

// New constructs a Game for the provided controller.
func New(ctl *Controller, scale int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	p := render.DefaultPalette()
	return &Game{
		ctl:     ctl,
		painter: render.NewGridPainter(ctl.Sim().Size(), p),
		hud:     ui.NewHUD(ctl, ui.PanelWidth),
		overlay: ui.NewOverlay(ctl.Sim(), scale),
		palette: p,
		scale:   scale,
		seed:    seed,
	}
}

// WindowSize returns the window dimensions for the current field.
func (g *Game) WindowSize() (int, int) {
	side := g.ctl.Sim().Size() * g.scale
	return side + ui.PanelWidth, side
}

// Update handles input and refreshes the field image after a commit.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handleMouse()
	g.overlay.Update()
	g.hud.Update(g.ctl.Sim().Size() * g.scale)

	if g.ctl.TakeDirty() {
		side := g.ctl.Sim().Size()
		if side != g.painter.Side() {
			g.painter.Resize(side)
			ebiten.SetWindowSize(g.WindowSize())
		}
		g.painter.Update(g.ctl.Sim().LiveCells())
	}
	return nil
}

func (g *Game) handleKeys() {
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		err = g.ctl.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		err = g.ctl.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		err = g.ctl.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		err = g.ctl.Reseed(g.seed)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.seed = time.Now().UnixNano()
		err = g.ctl.Reseed(g.seed)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		err = g.ctl.Resize(SidePresets[0])
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		err = g.ctl.Resize(SidePresets[1])
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		err = g.ctl.Resize(SidePresets[2])
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.ctl.Faster()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.ctl.Slower()
	}
	if err != nil {
		log.Printf("command rejected: %v", err)
	}
}

// handleMouse paints with the left button and erases with the right one.
// Editing is ignored while the workers run.
func (g *Game) handleMouse() {
	if g.ctl.Running() {
		return
	}
	live := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	dead := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !live && !dead {
		return
	}
	x, y := ebiten.CursorPosition()
	cell, ok := render.CellAt(x, y, g.scale, g.ctl.Sim().Size())
	if !ok {
		return
	}
	if err := g.ctl.Paint(cell, live); err != nil {
		log.Printf("paint %v: %v", cell, err)
	}
}

// Draw renders the field, the HUD panel and the help overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Frame)
	g.painter.Draw(screen, g.scale)
	g.hud.Draw(screen, g.ctl.Sim().Size()*g.scale)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
