package service

import (
	"time"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

func emit(sink ports.EventSink, subject, key string, payload any) {
	if sink == nil {
		return
	}
	sink.Enqueue(domain.Event{
		Subject:    subject,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
}
