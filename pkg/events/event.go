package events

import "time"

// Event is the contract for session lifecycle events published to the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_READY").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeSessionCreated = "SESSION_CREATED"
	TypeSessionReady   = "SESSION_READY"
	TypeSessionFailed  = "SESSION_FAILED"
)

// NewSessionReady signals that ingestion completed and the session accepts
// queries.
func NewSessionReady(sessionId string, chunksCreated int) Event {
	return BaseEvent{
		Type: TypeSessionReady,
		Data: map[string]interface{}{
			"session_id":     sessionId,
			"chunks_created": chunksCreated,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewSessionFailed signals an irrecoverable ingestion failure.
func NewSessionFailed(sessionId string, reason string) Event {
	return BaseEvent{
		Type: TypeSessionFailed,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"reason":     reason,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewSessionCreated signals a freshly created session awaiting its upload.
func NewSessionCreated(sessionId string) Event {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"session_id": sessionId,
		},
		OccurredAt: time.Now().UTC(),
	}
}
