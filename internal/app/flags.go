package app

import (
	"flag"
	"runtime"
	"strconv"

	"lockstep/internal/engine"
)

// Config represents the command-line parameters shared by the drivers.
type Config struct {
	Pattern   string
	Side      int
	Workers   int
	PaceMS    int
	Seed      int64
	Autostart bool

	Scale int
	TPS   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Pattern: "glider",
		Side:    engine.SideDefault,
		Workers: runtime.NumCPU(),
		PaceMS:  250,
		Seed:    42,
		Scale:   20,
		TPS:     60,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "seed pattern (empty, blinker, block, glider, rpentomino, random)")
	fs.IntVar(&c.Side, "side", c.Side, "side length of the square field")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker goroutines computing each generation")
	fs.IntVar(&c.PaceMS, "pace", c.PaceMS, "delay after each generation in milliseconds")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random pattern")
	fs.BoolVar(&c.Autostart, "start", c.Autostart, "start running immediately")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell in the GUI")
	fs.IntVar(&c.TPS, "tps", c.TPS, "GUI ticks per second")
}

// EngineMap renders the engine-related flags as the key/value form read by
// engine.FromMap.
func (c *Config) EngineMap() map[string]string {
	return map[string]string{
		"side":    strconv.Itoa(c.Side),
		"workers": strconv.Itoa(c.Workers),
		"pace_ms": strconv.Itoa(c.PaceMS),
	}
}

// Engine returns the engine configuration.
func (c *Config) Engine() engine.Config {
	return engine.FromMap(c.EngineMap())
}
