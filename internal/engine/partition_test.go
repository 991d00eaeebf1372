package engine

import "testing"

func TestPartitionsCoverEveryRowOnce(t *testing.T) {
	for _, side := range []int{1, 5, 20, 25, 30, 35, 64} {
		for _, workers := range []int{1, 2, 3, 4, 8, 16, 40} {
			bands := Partitions(workers, side)
			if len(bands) != workers {
				t.Fatalf("side %d workers %d: got %d bands", side, workers, len(bands))
			}
			owner := make([]int, side)
			for i := range owner {
				owner[i] = -1
			}
			lo, hi := side, 0
			for i, b := range bands {
				if b.Start > b.End {
					t.Fatalf("side %d workers %d: band %d inverted %+v", side, workers, i, b)
				}
				for row := b.Start; row < b.End; row++ {
					if owner[row] != -1 {
						t.Fatalf("side %d workers %d: row %d owned by %d and %d", side, workers, row, owner[row], i)
					}
					owner[row] = i
				}
				if b.Rows() < lo {
					lo = b.Rows()
				}
				if b.Rows() > hi {
					hi = b.Rows()
				}
			}
			for row, o := range owner {
				if o == -1 {
					t.Fatalf("side %d workers %d: row %d unassigned", side, workers, row)
				}
			}
			if hi-lo > 1 {
				t.Fatalf("side %d workers %d: unbalanced bands (min %d, max %d)", side, workers, lo, hi)
			}
		}
	}
}

func TestPartitionsSurplusWorkersGetEmptyBands(t *testing.T) {
	bands := Partitions(8, 3)
	empty := 0
	for _, b := range bands {
		if b.Rows() == 0 {
			empty++
		}
	}
	if empty != 5 {
		t.Fatalf("expected 5 empty bands, got %d (%v)", empty, bands)
	}
}

func TestPartitionsClampsWorkers(t *testing.T) {
	bands := Partitions(0, 10)
	if len(bands) != 1 || bands[0] != (Band{Start: 0, End: 10}) {
		t.Fatalf("Partitions(0, 10) = %v, want a single full band", bands)
	}
}
