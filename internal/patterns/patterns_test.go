package patterns

import (
	"slices"
	"testing"

	"lockstep/internal/core"
)

func TestBuiltinsRegistered(t *testing.T) {
	want := []string{"blinker", "block", "empty", "glider", "random", "rpentomino"}
	for _, name := range want {
		if _, ok := core.Patterns()[name]; !ok {
			t.Fatalf("pattern %q not registered", name)
		}
	}
	if _, ok := Build("nope", 10, 0); ok {
		t.Fatal("unknown pattern reported as found")
	}
}

func TestBlinkerIsCentered(t *testing.T) {
	got, ok := Build("blinker", 5, 0)
	if !ok {
		t.Fatal("blinker missing")
	}
	want := []core.Cell{{Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 2, Col: 3}}
	if !slices.Equal(got, want) {
		t.Fatalf("blinker on 5x5 = %v, want %v", got, want)
	}
}

func TestPatternsStayInsideTinyFields(t *testing.T) {
	for _, name := range core.PatternNames() {
		for _, side := range []int{1, 2, 3, 20} {
			cells, _ := Build(name, side, 1)
			for _, c := range cells {
				if !c.In(side) {
					t.Fatalf("%s on side %d produced %v", name, side, c)
				}
			}
		}
	}
}

func TestBuildReturnsRowMajor(t *testing.T) {
	core.Register("test-unsorted", func(side int, _ int64) []core.Cell {
		var out []core.Cell
		for _, c := range []core.Cell{{Row: 3, Col: 0}, {Row: 0, Col: 2}, {Row: 0, Col: 1}} {
			if c.In(side) {
				out = append(out, c)
			}
		}
		return out
	})
	got, _ := Build("test-unsorted", 5, 0)
	want := []core.Cell{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 3, Col: 0}}
	if !slices.Equal(got, want) {
		t.Fatalf("Build = %v, want %v", got, want)
	}
}
