package messaging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.Event) error {
	p.log.Info().
		Str("subject", event.Subject).
		Str("key", event.Key).
		Time("occurred_at", event.OccurredAt).
		Msg("domain event")
	return nil
}
