package tui

import (
	"io"
	"log"
	"testing"
	"time"

	"lockstep/internal/app"
	"lockstep/internal/core"

	"github.com/gdamore/tcell/v2"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(80, 30)
	t.Cleanup(s.Fini)

	cfg := app.NewConfig()
	cfg.Pattern = "blinker"
	cfg.Side = 5
	cfg.Workers = 2
	cfg.PaceMS = 1
	ctl, err := app.NewController(cfg, Waker(s), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	t.Cleanup(ctl.Close)
	return New(s, ctl, cfg.Seed), s
}

func runeAt(s tcell.SimulationScreen, c core.Cell) rune {
	r, _, _, _ := s.GetContent(c.Col*cellWidth, c.Row)
	return r
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestDrawShowsLiveCells(t *testing.T) {
	term, s := newTestTerminal(t)
	term.Draw()
	for col := 1; col <= 3; col++ {
		if got := runeAt(s, core.Cell{Row: 2, Col: col}); got != '█' {
			t.Fatalf("cell (2,%d) drawn as %q", col, got)
		}
	}
	if got := runeAt(s, core.Cell{Row: 1, Col: 2}); got != '·' {
		t.Fatalf("dead cell drawn as %q", got)
	}
}

func TestRunStepsAndQuits(t *testing.T) {
	term, s := newTestTerminal(t)
	s.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan struct{})
	go func() {
		term.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}

	if term.ctl.Sim().Generation() != 1 {
		t.Fatalf("generation = %d, want 1", term.ctl.Sim().Generation())
	}
	if got := runeAt(s, core.Cell{Row: 1, Col: 2}); got != '█' {
		t.Fatalf("stepped blinker not drawn vertically, (1,2) = %q", got)
	}
	if got := runeAt(s, core.Cell{Row: 2, Col: 1}); got != '·' {
		t.Fatalf("(2,1) = %q after step", got)
	}
}

func TestEditsRejectedWhileRunning(t *testing.T) {
	term, _ := newTestTerminal(t)
	if term.HandleKey(key(' ')) {
		t.Fatal("space must not quit")
	}
	if !term.ctl.Running() {
		t.Fatal("space did not start the run")
	}
	term.HandleKey(key('c'))
	if term.msg == "" {
		t.Fatal("clearing a running simulation must report an error")
	}
	term.HandleKey(key(' '))
	if term.ctl.Running() {
		t.Fatal("space did not pause the run")
	}
}

func TestMousePaints(t *testing.T) {
	term, _ := newTestTerminal(t)
	term.handleMouse(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	if !term.ctl.Sim().IsLive(core.Cell{Row: 0, Col: 0}) {
		t.Fatal("primary button did not paint (0,0)")
	}
	term.handleMouse(tcell.NewEventMouse(2*cellWidth+1, 2, tcell.Button2, tcell.ModNone))
	if term.ctl.Sim().IsLive(core.Cell{Row: 2, Col: 2}) {
		t.Fatal("secondary button did not erase (2,2)")
	}
	term.handleMouse(tcell.NewEventMouse(70, 20, tcell.Button1, tcell.ModNone))
	if term.ctl.Sim().Population() != 3 {
		t.Fatalf("population = %d, want 3", term.ctl.Sim().Population())
	}
}

func TestQuitKeys(t *testing.T) {
	term, _ := newTestTerminal(t)
	for _, ev := range []*tcell.EventKey{
		key('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
	} {
		if !term.HandleKey(ev) {
			t.Fatalf("%v did not quit", ev.Name())
		}
	}
}
