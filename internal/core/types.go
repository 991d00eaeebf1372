package core

import "sort"

// Cell addresses a single square of the field by row and column.
type Cell struct {
	Row int
	Col int
}

// In reports whether the cell lies inside a square field of the given side.
func (c Cell) In(side int) bool {
	return c.Row >= 0 && c.Row < side && c.Col >= 0 && c.Col < side
}

// SortCells orders cells row-major in place.
func SortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}

// Pattern builds the live cells of a seed for a field of the given side.
// Implementations must only return cells inside the field.
type Pattern func(side int, seed int64) []Cell

var patterns = map[string]Pattern{}

// Register adds a seed pattern under the provided name.
func Register(name string, p Pattern) {
	if name == "" || p == nil {
		return
	}
	patterns[name] = p
}

// Patterns exposes the registry of available seed patterns.
func Patterns() map[string]Pattern {
	return patterns
}

// PatternNames lists the registered patterns in alphabetical order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
