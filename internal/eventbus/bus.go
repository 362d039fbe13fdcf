// Package eventbus provides an in-memory, asynchronous event bus. Business
// flows publish events; listeners such as the notification handler consume
// them on a small worker pool so the publisher never waits on delivery.
package eventbus

import (
	"log/slog"
	"sync"
)

const (
	defaultWorkers    = 3
	defaultBufferSize = 100
)

// EventBus is the interface for publishing events and managing subscribers.
type EventBus interface {
	// Publish enqueues an event and reports whether it was accepted. It
	// never blocks: when the buffer is full or the bus is closed the event
	// is dropped and a warning is logged.
	Publish(eventType string, payload map[string]string) bool

	// Subscribe registers a listener called for every published event.
	// Subscribe before the first Publish.
	Subscribe(listener Listener)

	// Close stops accepting events and waits for pending ones to be processed.
	Close()
}

type inMemoryBus struct {
	ch        chan Event
	listeners []Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	workers   int
	logger    *slog.Logger

	closeMu sync.RWMutex
	closed  bool
}

// New creates an in-memory EventBus with the given number of workers.
// If workers is <= 0, defaultWorkers (3) is used. A nil logger uses slog.Default().
func New(workers int, logger *slog.Logger) EventBus {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &inMemoryBus{
		ch:      make(chan Event, defaultBufferSize),
		workers: workers,
		logger:  logger,
	}
	b.startWorkers()
	return b
}

func (b *inMemoryBus) startWorkers() {
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for e := range b.ch {
				b.dispatch(e)
			}
		}()
	}
}

// dispatch calls every listener with panic recovery so one bad listener
// cannot affect the others.
func (b *inMemoryBus) dispatch(e Event) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event listener panicked", "event_id", e.ID, "event_type", e.Type, "panic", r)
				}
			}()
			l(e)
		}()
	}
}

func (b *inMemoryBus) Publish(eventType string, payload map[string]string) bool {
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()
	if b.closed {
		b.logger.Warn("event bus closed, dropping event", "event_type", eventType)
		return false
	}

	e := NewEvent(eventType, payload)

	select {
	case b.ch <- e:
		return true
	default:
		b.logger.Warn("event bus buffer full, dropping event", "event_type", eventType)
		return false
	}
}

func (b *inMemoryBus) Subscribe(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener)
}

// Close drains the channel and waits for the workers. Calling it again is a no-op.
func (b *inMemoryBus) Close() {
	b.closeMu.Lock()
	if b.closed {
		b.closeMu.Unlock()
		return
	}
	b.closed = true
	close(b.ch)
	b.closeMu.Unlock()
	b.wg.Wait()
}
