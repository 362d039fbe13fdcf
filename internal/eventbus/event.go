package eventbus

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Event is a business event on its way to the notification listeners.
type Event struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   map[string]string `json:"payload"`
}

// NewEvent stamps an event. The payload is copied so the publisher may
// reuse its map once Publish returns.
func NewEvent(eventType string, payload map[string]string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   maps.Clone(payload),
	}
}

// Listener handles one event. Panics are recovered by the bus.
type Listener func(Event)
