// internal/event/event.go
package event

import (
	"sync"

	"go-tower-arena/internal/types"
)

// EventType — тип события
type EventType string

// Event — запись журнала изменений. Поля, не относящиеся к типу, пусты.
type Event struct {
	Seq    uint64         `json:"seq"`
	Type   EventType      `json:"type"`
	Player types.PlayerID `json:"player,omitempty"`
	Entity types.EntityID `json:"entity,omitempty"`
	Value  int            `json:"value,omitempty"`
	Text   string         `json:"text,omitempty"`
}

// Log is the change-log filled by game mutations and drained by the
// broadcaster. It replaces listener registration: nobody is called back,
// consumers pull what happened since their last drain.
type Log struct {
	mu      sync.Mutex
	nextSeq uint64
	pending []Event
	limit   int
}

// NewLog creates a change-log keeping at most limit undrained events (0 = unbounded).
// When the limit is exceeded the oldest events are dropped.
func NewLog(limit int) *Log {
	return &Log{nextSeq: 1, limit: limit}
}

// Append records an event and returns its sequence number.
func (l *Log) Append(e Event) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.Seq = l.nextSeq
	l.nextSeq++
	l.pending = append(l.pending, e)
	if l.limit > 0 && len(l.pending) > l.limit {
		l.pending = append([]Event(nil), l.pending[len(l.pending)-l.limit:]...)
	}
	return e.Seq
}

// Drain returns and clears every pending event in sequence order.
func (l *Log) Drain() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.pending
	l.pending = nil
	return events
}

// Len returns the number of pending events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
