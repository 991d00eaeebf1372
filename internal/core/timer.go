package core

import (
	"context"
	"sync/atomic"
	"time"
)

// Preset pacing intervals offered by the speed menu.
const (
	PaceSlow   = 500 * time.Millisecond
	PaceNormal = 250 * time.Millisecond
	PaceFast   = 125 * time.Millisecond
)

// Pace holds the delay inserted after every committed generation. It is safe
// to change from any goroutine; sleepers pick up the new value on their next
// call to Sleep.
type Pace struct {
	interval atomic.Int64
}

// NewPace constructs a Pace with the given interval. Negative values are
// treated as zero.
func NewPace(d time.Duration) *Pace {
	p := &Pace{}
	p.Set(d)
	return p
}

// Set changes the interval.
func (p *Pace) Set(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.interval.Store(int64(d))
}

// Interval returns the current interval.
func (p *Pace) Interval() time.Duration {
	return time.Duration(p.interval.Load())
}

// Sleep blocks for the current interval or until ctx is done, whichever comes
// first. It returns ctx.Err() when interrupted.
func (p *Pace) Sleep(ctx context.Context) error {
	d := p.Interval()
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Faster returns the next quicker preset after d, saturating at PaceFast.
func Faster(d time.Duration) time.Duration {
	switch {
	case d > PaceNormal:
		return PaceNormal
	default:
		return PaceFast
	}
}

// Slower returns the next slower preset after d, saturating at PaceSlow.
func Slower(d time.Duration) time.Duration {
	switch {
	case d < PaceNormal:
		return PaceNormal
	default:
		return PaceSlow
	}
}
