package eventlog

import (
	"context"
	"time"
)

// Event represents a logged event
type Event struct {
	ID          int64                  `json:"id"`
	EventType   string                 `json:"event_type"`
	CharacterID *string                `json:"character_id,omitempty"`
	Payload     map[string]interface{} `json:"payload"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// EventFilter filters events for queries
type EventFilter struct {
	CharacterID *string
	EventType   *string
	Since       *time.Time
	Until       *time.Time
	Limit       int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event
	LogEvent(ctx context.Context, eventType string, characterID *string, payload, metadata map[string]interface{}) error

	// GetEvents retrieves events newest first based on filter criteria
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
