// internal/clock/clock.go
package clock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go-tower-arena/internal/config"
)

// Ticker is advanced by the clock. app.Game implements it and ignores ticks
// outside the running phase, so pausing needs no help from the clock.
type Ticker interface {
	Tick(deltaTime float64)
}

// Clock drives a Ticker at a fixed cadence, independent of rendering.
// Each step advances the simulation by a fixed dt, speed times in a row, so
// the result does not depend on how late the ticker fires.
type Clock struct {
	target   Ticker
	interval time.Duration
	speed    atomic.Int32
	steps    atomic.Uint64

	// AfterStep, если задан, вызывается после каждого шага с номером шага.
	AfterStep func(step uint64)
}

// New creates a clock running target every interval at normal speed.
func New(target Ticker, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = config.TickInterval
	}
	c := &Clock{target: target, interval: interval}
	c.speed.Store(1)
	return c
}

// SetSpeed changes the simulation speed multiplier. Only config.GameSpeeds are allowed.
func (c *Clock) SetSpeed(multiplier int) error {
	for _, s := range config.GameSpeeds {
		if s == multiplier {
			c.speed.Store(int32(multiplier))
			return nil
		}
	}
	return fmt.Errorf("unsupported speed x%d", multiplier)
}

// Speed returns the current multiplier.
func (c *Clock) Speed() int {
	return int(c.speed.Load())
}

// Steps returns how many steps have run.
func (c *Clock) Steps() uint64 {
	return c.steps.Load()
}

// Step runs one clock step synchronously.
func (c *Clock) Step() {
	dt := c.interval.Seconds()
	for i := int32(0); i < c.speed.Load(); i++ {
		c.target.Tick(dt)
	}
	n := c.steps.Add(1)
	if c.AfterStep != nil {
		c.AfterStep(n)
	}
}

// Run steps the clock until ctx is cancelled. Cancellation is only observed
// between steps, never in the middle of one.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Step()
		}
	}
}
