package eventlog

import (
	"context"

	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/logger"
)

// LoggedEventTypes are the bus events kept in the audit trail
var LoggedEventTypes = []event.Type{
	event.QuestCompleted,
	event.XPGranted,
	event.LevelUp,
}

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all audited events
	Subscribe(bus event.Bus) error

	// GetEvents returns logged events
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all audited event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedEventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent flattens the typed payload and stores it
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.PayloadFields(evt)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadNotMap, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	var characterID *string
	if id, ok := payload[PayloadKeyCharacterID].(string); ok && id != "" {
		characterID = &id
	}

	metadata, _ := evt.Metadata.(map[string]interface{})

	if err := s.repo.LogEvent(ctx, string(evt.Type), characterID, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldCharacterID, characterID)
	return nil
}

// GetEvents returns logged events, applying the default limit
func (s *service) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
