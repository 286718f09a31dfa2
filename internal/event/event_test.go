package event

import (
	"sync"
	"testing"
)

func TestAppendDrain(t *testing.T) {
	l := NewLog(0)
	l.Append(Event{Type: TowerPlaced, Entity: 4})
	l.Append(Event{Type: TowerSold, Entity: 4})
	if l.Len() != 2 {
		t.Fatalf("Expected 2 pending, got %d", l.Len())
	}
	events := l.Drain()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Seq != 1 || events[1].Seq != 2 {
		t.Errorf("Unexpected sequence numbers %d %d", events[0].Seq, events[1].Seq)
	}
	if events[0].Type != TowerPlaced || events[1].Type != TowerSold {
		t.Errorf("Events out of order: %v", events)
	}
	if l.Len() != 0 || len(l.Drain()) != 0 {
		t.Error("Drain must clear the log")
	}
	if seq := l.Append(Event{Type: WaveStarted}); seq != 3 {
		t.Errorf("Sequence must continue after drain, got %d", seq)
	}
}

func TestLimitDropsOldest(t *testing.T) {
	l := NewLog(3)
	for i := 0; i < 5; i++ {
		l.Append(Event{Type: CreatureSpawned, Value: i})
	}
	events := l.Drain()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Value != 2 || events[2].Value != 4 {
		t.Errorf("Expected newest events kept, got %v", events)
	}
}

func TestConcurrentAppend(t *testing.T) {
	l := NewLog(0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.Append(Event{Type: CreatureKilled})
			}
		}()
	}
	wg.Wait()
	events := l.Drain()
	if len(events) != 800 {
		t.Fatalf("Expected 800 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq != events[i-1].Seq+1 {
			t.Fatalf("Sequence gap at %d", i)
		}
	}
}
