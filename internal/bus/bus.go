// Package bus is a small in-process pub/sub that decouples pipeline
// progress from its presentation.
package bus

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type EventType string

const (
	EventStageStarted  EventType = "stage.started"
	EventStageFinished EventType = "stage.finished"
	EventStageDegraded EventType = "stage.degraded"
	EventRecorded      EventType = "question.recorded"
)

// wildcard subscriptions receive every event type.
const wildcard EventType = "*"

// Event is one pipeline transition.
type Event struct {
	Type   EventType
	Stage  string
	Detail string
	Time   time.Time
}

type Handler func(Event)

type entry struct {
	id int
	h  Handler
}

// Bus fans events out to subscribers. Handlers run synchronously on the
// publishing goroutine; a panicking handler is isolated so it cannot take
// down the pipeline.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventType][]entry
	logger   *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[EventType][]entry),
		logger:   logger,
	}
}

// Subscription undoes a Subscribe. Unsubscribe is idempotent.
type Subscription struct {
	bus  *Bus
	typ  EventType
	id   int
	once sync.Once
}

func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		entries := s.bus.handlers[s.typ]
		for i, e := range entries {
			if e.id == s.id {
				s.bus.handlers[s.typ] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
	})
}

func (b *Bus) Subscribe(t EventType, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[t] = append(b.handlers[t], entry{id: b.nextID, h: h})
	return &Subscription{bus: b, typ: t, id: b.nextID}
}

func (b *Bus) SubscribeAll(h Handler) *Subscription {
	return b.Subscribe(wildcard, h)
}

func (b *Bus) Publish(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	// Copy handlers under lock so subscribers may come and go mid-publish.
	b.mu.RLock()
	specific := make([]entry, len(b.handlers[e.Type]))
	copy(specific, b.handlers[e.Type])
	wild := make([]entry, len(b.handlers[wildcard]))
	copy(wild, b.handlers[wildcard])
	b.mu.RUnlock()

	for _, en := range specific {
		b.invoke(en.h, e)
	}
	for _, en := range wild {
		b.invoke(en.h, e)
	}
}

func (b *Bus) invoke(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("type", string(e.Type)),
				zap.Any("panic", r),
			)
		}
	}()
	h(e)
}
