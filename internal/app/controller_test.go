package app

import (
	"errors"
	"flag"
	"io"
	"log"
	"slices"
	"testing"
	"time"

	"lockstep/internal/core"
	"lockstep/internal/engine"
)

func newTestController(t *testing.T, pattern string, side int) *Controller {
	t.Helper()
	cfg := NewConfig()
	cfg.Pattern = pattern
	cfg.Side = side
	cfg.Workers = 3
	cfg.PaceMS = 1
	c, err := NewController(cfg, nil, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-side", "30", "-workers", "2", "-pace", "500", "-pattern", "block", "-start"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ec := cfg.Engine()
	if ec.Side != 30 || ec.Workers != 2 || ec.Pace != core.PaceSlow {
		t.Fatalf("Engine() = %+v", ec)
	}
	if cfg.Pattern != "block" || !cfg.Autostart {
		t.Fatalf("flags not bound: %+v", cfg)
	}
}

func TestUnknownPatternRejected(t *testing.T) {
	cfg := NewConfig()
	cfg.Pattern = "spaceship-factory"
	if _, err := NewController(cfg, nil, log.New(io.Discard, "", 0)); err == nil {
		t.Fatal("expected an error for an unknown pattern")
	}
}

func TestInvalidSideRejected(t *testing.T) {
	for _, side := range []int{0, -3} {
		cfg := NewConfig()
		cfg.Side = side
		_, err := NewController(cfg, nil, log.New(io.Discard, "", 0))
		if !errors.Is(err, engine.ErrInvalidSize) {
			t.Fatalf("side %d: NewController returned %v, want ErrInvalidSize", side, err)
		}
	}
}

func TestReseedRebuildsPattern(t *testing.T) {
	c := newTestController(t, "block", 6)
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := c.Reseed(7); err != nil {
		t.Fatalf("Reseed: %v", err)
	}
	want := []core.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 3, Col: 3}}
	if got := c.Sim().LiveCells(); !slices.Equal(got, want) {
		t.Fatalf("after Reseed = %v, want %v", got, want)
	}

	c.cfg.Pattern = "spaceship-factory"
	if err := c.Reseed(7); err == nil {
		t.Fatal("Reseed with an unknown pattern must fail")
	}
	if c.Sim().Population() != 4 {
		t.Fatalf("failed Reseed changed the field: population %d", c.Sim().Population())
	}
}

func TestStepAndPaint(t *testing.T) {
	c := newTestController(t, "blinker", 5)
	if !c.TakeDirty() {
		t.Fatal("a new controller must request an initial paint")
	}
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	want := []core.Cell{{Row: 1, Col: 2}, {Row: 2, Col: 2}, {Row: 3, Col: 2}}
	if got := c.Sim().LiveCells(); !slices.Equal(got, want) {
		t.Fatalf("after Step = %v, want %v", got, want)
	}
	if !c.TakeDirty() || c.TakeDirty() {
		t.Fatal("a commit must mark the field dirty exactly once")
	}

	if err := c.Paint(core.Cell{Row: 0, Col: 0}, true); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if err := c.Paint(core.Cell{Row: 2, Col: 2}, false); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	want = []core.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 3, Col: 2}}
	if got := c.Sim().LiveCells(); !slices.Equal(got, want) {
		t.Fatalf("after painting = %v, want %v", got, want)
	}
}

func TestToggleLocksEditing(t *testing.T) {
	c := newTestController(t, "glider", 20)
	if err := c.Toggle(); err != nil {
		t.Fatalf("Toggle start: %v", err)
	}
	if !c.Running() {
		t.Fatal("Toggle did not start the run")
	}
	if err := c.Clear(); !errors.Is(err, engine.ErrInvalidTransition) {
		t.Fatalf("Clear while running returned %v", err)
	}
	if c.SetIntParameter("side", 30) {
		t.Fatal("side change accepted while running")
	}
	if !c.SetIntParameter("pace_ms", 5000) || c.Sim().Pace() != 2*time.Second {
		t.Fatalf("pace not clamped: %v", c.Sim().Pace())
	}
	c.Sim().SetPace(time.Millisecond)
	if err := c.Toggle(); err != nil {
		t.Fatalf("Toggle pause: %v", err)
	}
	if c.Sim().State() != engine.Paused {
		t.Fatalf("State = %s, want paused", c.Sim().State())
	}
	if !c.SetIntParameter("side", 35) || c.Sim().Size() != 35 {
		t.Fatalf("side change refused while paused")
	}
}

func TestSpeedPresets(t *testing.T) {
	c := newTestController(t, "empty", 10)
	c.Sim().SetPace(core.PaceNormal)
	c.Faster()
	if c.Sim().Pace() != core.PaceFast {
		t.Fatalf("Faster -> %v", c.Sim().Pace())
	}
	c.Slower()
	c.Slower()
	if c.Sim().Pace() != core.PaceSlow {
		t.Fatalf("Slower twice -> %v", c.Sim().Pace())
	}
}
