package app

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"lockstep/internal/core"
	"lockstep/internal/engine"
	"lockstep/internal/patterns"
)

var (
	_ core.ParameterProvider  = (*Controller)(nil)
	_ core.IntParameterSetter = (*Controller)(nil)
)

// Side presets offered by the size menu, in menu order.
var SidePresets = []int{engine.SideSmall, engine.SideMedium, engine.SideLarge}

// Controller translates UI commands into scheduler calls and tracks whether a
// repaint is due. It is shared by the GUI and terminal drivers.
type Controller struct {
	sim  *engine.Scheduler
	cfg  Config
	wake func()
	log  *log.Logger

	dirty atomic.Bool

	mu    sync.Mutex
	fault error
}

// NewController seeds a scheduler from cfg. wake, when non-nil, is called
// after every commit and fault so the driver can schedule a repaint on its
// own thread; it must not block.
func NewController(cfg *Config, wake func(), logger *log.Logger) (*Controller, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Side < 1 {
		return nil, fmt.Errorf("%w: side %d", engine.ErrInvalidSize, cfg.Side)
	}
	c := &Controller{cfg: *cfg, wake: wake, log: logger}
	ec := cfg.Engine()
	seed, ok := patterns.Build(cfg.Pattern, ec.Side, cfg.Seed)
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", cfg.Pattern)
	}
	sim, err := engine.NewScheduler(ec, seed, engine.Options{
		OnCommit: c.changed,
		OnFault:  c.failed,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	c.sim = sim
	c.dirty.Store(true)
	return c, nil
}

// Sim exposes the scheduler.
func (c *Controller) Sim() *engine.Scheduler { return c.sim }

func (c *Controller) changed() {
	c.dirty.Store(true)
	if c.wake != nil {
		c.wake()
	}
}

func (c *Controller) failed(err error) {
	c.mu.Lock()
	c.fault = err
	c.mu.Unlock()
	c.changed()
}

// Fault returns the error that stopped the last run abnormally, if any.
func (c *Controller) Fault() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fault
}

// TakeDirty reports whether the field changed since the last call.
func (c *Controller) TakeDirty() bool { return c.dirty.Swap(false) }

// Running reports whether the workers are active.
func (c *Controller) Running() bool { return c.sim.State() == engine.Running }

// Toggle starts a stopped simulation or pauses a running one.
func (c *Controller) Toggle() error {
	if c.Running() {
		return c.sim.Pause()
	}
	c.mu.Lock()
	c.fault = nil
	c.mu.Unlock()
	return c.sim.Start()
}

// Step advances exactly one generation while stopped.
func (c *Controller) Step() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return c.sim.Advance(ctx, 1)
}

// Clear kills every cell while stopped.
func (c *Controller) Clear() error {
	return c.edit(c.sim.Clear)
}

// Reseed rebuilds the configured pattern on the current field.
func (c *Controller) Reseed(seed int64) error {
	cells, ok := patterns.Build(c.cfg.Pattern, c.sim.Size(), seed)
	if !ok {
		return fmt.Errorf("unknown pattern %q", c.cfg.Pattern)
	}
	return c.edit(func() error { return c.sim.Seed(cells, c.sim.Size()) })
}

// Resize clears the field and changes its side while stopped.
func (c *Controller) Resize(side int) error {
	return c.edit(func() error { return c.sim.Resize(side) })
}

// Paint sets a cell live or dead while stopped.
func (c *Controller) Paint(cell core.Cell, live bool) error {
	if c.sim.IsLive(cell) == live {
		return nil
	}
	return c.edit(func() error {
		cells := c.sim.LiveCells()
		if live {
			cells = append(cells, cell)
		} else {
			kept := cells[:0]
			for _, v := range cells {
				if v != cell {
					kept = append(kept, v)
				}
			}
			cells = kept
		}
		return c.sim.Seed(cells, c.sim.Size())
	})
}

// Faster moves to the next quicker speed preset.
func (c *Controller) Faster() { c.sim.SetPace(core.Faster(c.sim.Pace())) }

// Slower moves to the next slower speed preset.
func (c *Controller) Slower() { c.sim.SetPace(core.Slower(c.sim.Pace())) }

func (c *Controller) edit(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	c.changed()
	return nil
}

// Close shuts the scheduler down.
func (c *Controller) Close() { c.sim.Shutdown() }

// Status summarizes the simulation in one line.
func (c *Controller) Status() string {
	s := fmt.Sprintf("%s  gen %d  pop %d  %dx%d  pace %v  workers %d",
		c.sim.State(), c.sim.Generation(), c.sim.Population(),
		c.sim.Size(), c.sim.Size(), c.sim.Pace(), c.sim.Workers())
	if err := c.Fault(); err != nil {
		s += "  STOPPED: " + err.Error()
	}
	return s
}

// Parameters lists the values shown on the HUD.
func (c *Controller) Parameters() []core.Parameter {
	return []core.Parameter{
		{Key: "state", Label: "State", Type: core.ParamTypeText, Value: c.sim.State().String()},
		{Key: "generation", Label: "Generation", Type: core.ParamTypeText, Value: strconv.FormatUint(c.sim.Generation(), 10)},
		{Key: "population", Label: "Population", Type: core.ParamTypeText, Value: strconv.Itoa(c.sim.Population())},
		{Key: "workers", Label: "Workers", Type: core.ParamTypeText, Value: strconv.Itoa(c.sim.Workers())},
		{Key: "pace_ms", Label: "Pace (ms)", Type: core.ParamTypeInt, Value: strconv.Itoa(int(c.sim.Pace() / time.Millisecond))},
		{Key: "side", Label: "Side", Type: core.ParamTypeInt, Value: strconv.Itoa(c.sim.Size())},
	}
}

// ParameterControls lists the HUD-adjustable parameters.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "pace_ms", Label: "Pace (ms)", Step: 25, Min: 0, Max: 2000, HasMin: true, HasMax: true},
		{Key: "side", Label: "Side", Step: 5, Min: 5, Max: 200, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies a HUD adjustment. Side changes are refused while
// running.
func (c *Controller) SetIntParameter(key string, value int) bool {
	for _, ctrl := range c.ParameterControls() {
		if ctrl.Key == key {
			value = ctrl.Clamp(value)
		}
	}
	switch key {
	case "pace_ms":
		c.sim.SetPace(time.Duration(value) * time.Millisecond)
		return true
	case "side":
		return c.Resize(value) == nil
	}
	return false
}
