package service

import (
	"context"

	"ai-docquery-be/pkg/events"
)

// EventPublisher is the outward event bus boundary (NATS in production).
// Services treat it as optional: a nil publisher disables lifecycle events
// without affecting the core pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
