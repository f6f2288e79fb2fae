package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// EventSink accepts domain events for asynchronous delivery. Enqueue must
// not block the caller.
type EventSink interface {
	Enqueue(event domain.Event)
}

// EventPublisher delivers a single event to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
