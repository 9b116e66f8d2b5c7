package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FitQuest_Go/internal/database"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
)

// EventLogRepository stores the audit trail of bus events
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// LogEvent appends one audit row. The payload column is NOT NULL, so a nil
// payload is stored as an empty object.
func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, characterID *string, payload, metadata map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPayload, err)
	}
	metadataJSON, err := database.MarshalOptional(metadata)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO events (event_type, character_id, payload, metadata) VALUES ($1, $2, $3, $4)`,
		eventType, characterID, payloadJSON, metadataJSON)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToLogEvent, eventType, err)
	}
	return nil
}

// GetEvents reads audit rows newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	q := database.NewListQuery(database.PostgresDialect, `SELECT ` + eventColumns + ` FROM events`)
	if filter.CharacterID != nil {
		q.And("character_id", "=", *filter.CharacterID)
	}
	if filter.EventType != nil {
		q.And("event_type", "=", *filter.EventType)
	}
	query, args := q.Window(filter.Since, filter.Until).Build(filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	events := []eventlog.Event{}
	for rows.Next() {
		var (
			evt                       eventlog.Event
			payloadJSON, metadataJSON []byte
		)
		if err := rows.Scan(&evt.ID, &evt.EventType, &evt.CharacterID, &payloadJSON, &metadataJSON, &evt.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
		}
		if err := database.UnmarshalOptional(payloadJSON, &evt.Payload); err != nil {
			return nil, err
		}
		if err := database.UnmarshalOptional(metadataJSON, &evt.Metadata); err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	return events, nil
}

// CleanupOldEvents deletes rows older than retentionDays
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM events WHERE created_at < NOW() - make_interval(days => $1)`, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}
