package entity

import (
	"context"
	"time"
)

// Event is an immutable, append-only record of something a visitor did.
// UserID carries the resolved CRM contact id once identity is known.
type Event struct {
	ID          int64          `json:"id"`
	AnonymousID string         `json:"anonymous_id"`
	UserID      *string        `json:"user_id,omitempty"`
	EventName   string         `json:"event_name"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Source      string         `json:"source"`
	Properties  map[string]any `json:"properties"`
}

// VisitorIdentity maps an anonymous browser id to a resolved CRM contact.
// FirstSeenAt and IdentifiedAt are set once and never overwritten.
type VisitorIdentity struct {
	ID           int64      `json:"id"`
	AnonymousID  string     `json:"anonymous_id"`
	CRMContactID *string    `json:"crm_contact_id,omitempty"`
	Email        *string    `json:"email,omitempty"`
	FirstSeenAt  time.Time  `json:"first_seen_at"`
	IdentifiedAt *time.Time `json:"identified_at,omitempty"`
}

// Event names logged by the form pipeline.
const (
	EventFormReceived         = "form_received"
	EventFormSubmitted        = "form_submitted"
	EventApplicationSubmitted = "application_submitted"
)

// EventSourceWeb marks events originating from the public site.
const EventSourceWeb = "web"

type EventRepositoryInterface interface {
	// Append inserts a single event row. The store sets occurred_at.
	Append(ctx context.Context, anonymousID string, userID *string, eventName, source string, properties map[string]any) error
}

type VisitorIdentityRepositoryInterface interface {
	// Link upserts the anonymous_id -> crm_contact_id mapping. The most
	// recent contact id wins; email and identified_at are sticky.
	Link(ctx context.Context, anonymousID, crmContactID, email string) error
}
