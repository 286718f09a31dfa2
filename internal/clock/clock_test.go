package clock

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingTicker struct {
	mu    sync.Mutex
	ticks int
	total float64
}

func (c *countingTicker) Tick(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
	c.total += dt
}

func (c *countingTicker) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

func TestStepHonoursSpeed(t *testing.T) {
	target := &countingTicker{}
	c := New(target, 40*time.Millisecond)

	c.Step()
	if target.ticks != 1 {
		t.Fatalf("ticks = %d, want 1", target.ticks)
	}
	if err := c.SetSpeed(4); err != nil {
		t.Fatal(err)
	}
	c.Step()
	if target.ticks != 5 {
		t.Errorf("ticks = %d, want 5", target.ticks)
	}
	if target.total < 0.1999 || target.total > 0.2001 {
		t.Errorf("simulated time = %v, want 0.2", target.total)
	}
	if c.Steps() != 2 {
		t.Errorf("steps = %d", c.Steps())
	}
}

func TestSetSpeedRejectsUnknown(t *testing.T) {
	c := New(&countingTicker{}, time.Millisecond)
	for _, bad := range []int{0, 3, 8, -1} {
		if err := c.SetSpeed(bad); err == nil {
			t.Errorf("speed x%d accepted", bad)
		}
	}
	if c.Speed() != 1 {
		t.Errorf("speed = %d after rejected changes", c.Speed())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	target := &countingTicker{}
	c := New(target, time.Millisecond)
	stepped := make(chan uint64, 100)
	c.AfterStep = func(n uint64) {
		select {
		case stepped <- n:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-stepped:
		case <-time.After(2 * time.Second):
			t.Fatal("clock did not step")
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	after := target.count()
	time.Sleep(10 * time.Millisecond)
	if target.count() != after {
		t.Error("clock kept ticking after Run returned")
	}
}
