package core

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestByteGridPlotAndLive(t *testing.T) {
	g := NewByteGrid(4)
	g.Plot([]Cell{{Row: 3, Col: 0}, {Row: 0, Col: 2}, {Row: 9, Col: 9}})
	want := []Cell{{Row: 0, Col: 2}, {Row: 3, Col: 0}}
	if got := g.Live(); !slices.Equal(got, want) {
		t.Fatalf("Live = %v, want %v", got, want)
	}
	if g.At(-1, 0) != 0 || g.At(0, 4) != 0 {
		t.Fatal("out-of-range reads must be zero")
	}
	g.Clear()
	if len(g.Live()) != 0 {
		t.Fatal("Clear left live cells")
	}
}

func TestNewByteGridClampsSide(t *testing.T) {
	if g := NewByteGrid(0); g.Side != 1 || len(g.Cells()) != 1 {
		t.Fatalf("NewByteGrid(0) = side %d len %d", g.Side, len(g.Cells()))
	}
}

func TestSortCells(t *testing.T) {
	cells := []Cell{{Row: 2, Col: 0}, {Row: 0, Col: 3}, {Row: 0, Col: 1}}
	SortCells(cells)
	want := []Cell{{Row: 0, Col: 1}, {Row: 0, Col: 3}, {Row: 2, Col: 0}}
	if !slices.Equal(cells, want) {
		t.Fatalf("SortCells = %v, want %v", cells, want)
	}
}

func TestPaceSleepIsInterruptible(t *testing.T) {
	p := NewPace(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Sleep(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Sleep returned %v, want context.Canceled", err)
	}

	p.Set(-time.Second)
	if p.Interval() != 0 {
		t.Fatalf("negative interval stored as %v", p.Interval())
	}
	if err := p.Sleep(context.Background()); err != nil {
		t.Fatalf("zero-length Sleep returned %v", err)
	}
}

func TestPacePresets(t *testing.T) {
	if Faster(PaceSlow) != PaceNormal || Faster(PaceNormal) != PaceFast || Faster(PaceFast) != PaceFast {
		t.Fatal("Faster does not walk slow -> normal -> fast")
	}
	if Slower(PaceFast) != PaceNormal || Slower(PaceNormal) != PaceSlow || Slower(PaceSlow) != PaceSlow {
		t.Fatal("Slower does not walk fast -> normal -> slow")
	}
}

func TestSoupIsDeterministic(t *testing.T) {
	a := NewRNG(11).Soup(16, 0.4)
	b := NewRNG(11).Soup(16, 0.4)
	if !slices.Equal(a, b) {
		t.Fatal("same seed produced different soups")
	}
	for _, c := range a {
		if !c.In(16) {
			t.Fatalf("soup cell %v outside the field", c)
		}
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 10, Max: 20, HasMin: true, HasMax: true}
	if c.Clamp(5) != 10 || c.Clamp(25) != 20 || c.Clamp(15) != 15 {
		t.Fatal("Clamp ignores bounds")
	}
}
