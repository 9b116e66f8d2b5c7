package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/FitQuest_Go/internal/database"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
)

// EventLogRepository stores the audit trail of bus events
type EventLogRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *sql.DB) *EventLogRepository {
	return &EventLogRepository{db: db, now: time.Now}
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// LogEvent appends one audit row. A nil payload is stored as an empty object.
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

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (event_type, character_id, payload, metadata, created_at) VALUES (?, ?, ?, ?, ?)`,
		eventType, characterID, string(payloadJSON), nullableText(metadataJSON), toMicros(r.now()))
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToLogEvent, eventType, err)
	}
	return nil
}

// GetEvents reads audit rows newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	q := database.NewListQuery(database.SQLiteDialect, `SELECT `+eventColumns+` FROM events`)
	if filter.CharacterID != nil {
		q.And("character_id", "=", *filter.CharacterID)
	}
	if filter.EventType != nil {
		q.And("event_type", "=", *filter.EventType)
	}
	query, args := q.Window(filter.Since, filter.Until).Build(filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	events := []eventlog.Event{}
	for rows.Next() {
		var (
			evt                       eventlog.Event
			payloadJSON, metadataJSON []byte
			createdAt                 int64
		)
		if err := rows.Scan(&evt.ID, &evt.EventType, &evt.CharacterID, &payloadJSON, &metadataJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
		}
		if err := database.UnmarshalOptional(payloadJSON, &evt.Payload); err != nil {
			return nil, err
		}
		if err := database.UnmarshalOptional(metadataJSON, &evt.Metadata); err != nil {
			return nil, err
		}
		evt.CreatedAt = fromMicros(createdAt)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	return events, nil
}

// CleanupOldEvents deletes rows older than retentionDays
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := r.now().AddDate(0, 0, -retentionDays)
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, toMicros(cutoff))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return affected, nil
}
