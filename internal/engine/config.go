package engine

import (
	"runtime"
	"strconv"
	"time"

	"lockstep/internal/core"
)

// Side presets offered by the size menu.
const (
	SideSmall   = 20
	SideDefault = 25
	SideMedium  = 30
	SideLarge   = 35
)

// Config controls the engine dimensions, parallelism and speed.
type Config struct {
	Side    int
	Workers int
	Pace    time.Duration
}

// DefaultConfig returns the standard configuration: one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Side:    SideDefault,
		Workers: runtime.NumCPU(),
		Pace:    core.PaceNormal,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["side"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Side = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["pace_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Pace = time.Duration(parsed) * time.Millisecond
		}
	}
	return c
}
