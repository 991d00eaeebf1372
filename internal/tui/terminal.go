// Package tui drives a Controller from a terminal using tcell.
package tui

import (
	"time"

	"lockstep/internal/app"
	"lockstep/internal/core"

	"github.com/gdamore/tcell/v2"
)

const helpLine = "space run/pause  n step  c clear  r/s reseed  1-3 size  -/= speed  q quit"

var (
	liveStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	deadStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray).Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	faultStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
)

// Each cell is two columns wide so the field looks square.
const cellWidth = 2

// Waker returns a wake callback for app.NewController that posts an
// interrupt to screen. A full event queue drops the wake-up; the dirty flag
// is picked up with the next event.
func Waker(screen tcell.Screen) func() {
	return func() { _ = screen.PostEvent(tcell.NewEventInterrupt(nil)) }
}

// Terminal renders the field and translates keys and mouse clicks into
// controller commands.
type Terminal struct {
	screen tcell.Screen
	ctl    *app.Controller
	seed   int64
	msg    string
}

// New constructs a Terminal on an initialised screen.
func New(screen tcell.Screen, ctl *app.Controller, seed int64) *Terminal {
	return &Terminal{screen: screen, ctl: ctl, seed: seed}
}

// Run processes events until the user quits or the screen is finalised.
func (t *Terminal) Run() {
	t.ctl.TakeDirty()
	t.Draw()
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()
			t.Draw()
		case *tcell.EventInterrupt:
			if t.ctl.TakeDirty() {
				t.Draw()
			}
		case *tcell.EventKey:
			if t.HandleKey(ev) {
				return
			}
			t.ctl.TakeDirty()
			t.Draw()
		case *tcell.EventMouse:
			t.handleMouse(ev)
			if t.ctl.TakeDirty() {
				t.Draw()
			}
		}
	}
}

// HandleKey applies a key press and reports whether it asked to quit.
func (t *Terminal) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	var err error
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		err = t.ctl.Toggle()
	case 'n':
		err = t.ctl.Step()
	case 'c':
		err = t.ctl.Clear()
	case 'r':
		err = t.ctl.Reseed(t.seed)
	case 's':
		t.seed = time.Now().UnixNano()
		err = t.ctl.Reseed(t.seed)
	case '1', '2', '3':
		err = t.ctl.Resize(app.SidePresets[ev.Rune()-'1'])
	case '-':
		t.ctl.Slower()
	case '=', '+':
		t.ctl.Faster()
	}
	t.msg = ""
	if err != nil {
		t.msg = err.Error()
	}
	return false
}

// handleMouse paints with the primary button and erases with the secondary
// one while the simulation is not running.
func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	live := buttons&tcell.Button1 != 0
	if !live && buttons&tcell.Button2 == 0 {
		return
	}
	if t.ctl.Running() {
		return
	}
	x, y := ev.Position()
	cell := core.Cell{Row: y, Col: x / cellWidth}
	if !cell.In(t.ctl.Sim().Size()) {
		return
	}
	if err := t.ctl.Paint(cell, live); err != nil {
		t.msg = err.Error()
	}
}

// Draw repaints the whole screen from the current field.
func (t *Terminal) Draw() {
	s := t.screen
	s.Clear()
	sim := t.ctl.Sim()
	side := sim.Size()
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			r, style := '·', deadStyle
			if sim.IsLive(core.Cell{Row: row, Col: col}) {
				r, style = '█', liveStyle
			}
			for i := 0; i < cellWidth; i++ {
				s.SetContent(col*cellWidth+i, row, r, nil, style)
			}
		}
	}
	_, h := s.Size()
	y := side
	if y > h-2 {
		y = h - 2
	}
	status, style := t.ctl.Status(), statusStyle
	if t.ctl.Fault() != nil {
		style = faultStyle
	}
	if t.msg != "" {
		status += "  (" + t.msg + ")"
	}
	drawText(s, 0, y, status, style)
	drawText(s, 0, y+1, helpLine, tcell.StyleDefault)
	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
