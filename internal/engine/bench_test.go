package engine

import (
	"context"
	"fmt"
	"testing"

	"lockstep/internal/core"
)

func benchmarkAdvance(b *testing.B, side, generations int) {
	seed := core.NewRNG(42).Soup(side, 0.3)
	for workers := 1; workers <= 16; workers *= 2 {
		name := fmt.Sprintf("%dx%dx%d-%d", side, side, generations, workers)
		b.Run(name, func(b *testing.B) {
			s, err := NewScheduler(Config{Side: side, Workers: workers}, seed, Options{Logger: quietLogger()})
			if err != nil {
				b.Fatal(err)
			}
			defer s.Shutdown()
			for i := 0; i < b.N; i++ {
				if err := s.Seed(seed, side); err != nil {
					b.Fatal(err)
				}
				if err := s.Advance(context.Background(), generations); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func Benchmark_128_100(b *testing.B) { benchmarkAdvance(b, 128, 100) }

func Benchmark_512_20(b *testing.B) { benchmarkAdvance(b, 512, 20) }
