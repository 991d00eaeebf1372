package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Soup returns every cell of a side x side field that comes up live with the
// given density.
func (r *RNG) Soup(side int, density float64) []Cell {
	var out []Cell
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			if r.Chance(density) {
				out = append(out, Cell{Row: row, Col: col})
			}
		}
	}
	return out
}
