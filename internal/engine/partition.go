package engine

// Band is the half-open range of rows [Start, End) assigned to one worker.
type Band struct {
	Start int
	End   int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return b.End - b.Start }

// Contains reports whether row belongs to the band.
func (b Band) Contains(row int) bool { return row >= b.Start && row < b.End }

// Partitions splits side rows into workers contiguous bands whose sizes differ
// by at most one. Every row is covered exactly once. When there are more
// workers than rows the surplus workers receive empty bands.
func Partitions(workers, side int) []Band {
	if workers < 1 {
		workers = 1
	}
	if side < 0 {
		side = 0
	}
	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{
			Start: i * side / workers,
			End:   (i + 1) * side / workers,
		}
	}
	return bands
}
