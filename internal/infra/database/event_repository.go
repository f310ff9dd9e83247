package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// EventRepository appends rows to the append-only events table. It is
// the system of record for every submission; rows are never updated or
// deleted by this service.
type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Append(ctx context.Context, anonymousID string, userID *string, eventName, source string, properties map[string]any) error {
	props, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("marshaling event properties: %w", err)
	}

	query := `
		INSERT INTO events (anonymous_id, user_id, event_name, occurred_at, source, properties)
		VALUES ($1, $2, $3, NOW(), $4, $5)
	`

	if _, err := r.DB.ExecContext(ctx, query, anonymousID, userID, eventName, source, props); err != nil {
		return fmt.Errorf("inserting %s event: %w", eventName, err)
	}
	return nil
}
