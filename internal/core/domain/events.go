package domain

import "time"

// Event subjects emitted after successful writes.
const (
	SubjectUserRegistered = "user.registered"
	SubjectProductCreated = "product.created"
	SubjectProductUpdated = "product.updated"
	SubjectProductDeleted = "product.deleted"
)

// Event is a notification about a committed change. Key identifies the
// aggregate and determines delivery ordering.
type Event struct {
	Subject    string    `json:"subject"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}
