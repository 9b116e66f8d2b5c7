package metrics

import (
	"context"

	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.QuestCompleted,
		event.QuestProgressed,
		event.XPGranted,
		event.LevelUp,
		event.ActivityRecorded,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.QuestCompleted:
		var p event.QuestCompletedPayloadV1
		if p, err = event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload); err == nil {
			QuestsCompleted.WithLabelValues(string(p.QuestType)).Inc()
		}

	case event.QuestProgressed:
		var p event.QuestProgressedPayloadV1
		if p, err = event.DecodePayload[event.QuestProgressedPayloadV1](evt.Payload); err == nil {
			QuestsProgressed.WithLabelValues(string(p.QuestType), string(p.ActionKind)).Inc()
		}

	case event.XPGranted:
		var p event.XPGrantedPayloadV1
		if p, err = event.DecodePayload[event.XPGrantedPayloadV1](evt.Payload); err == nil {
			XPGranted.WithLabelValues(p.Source).Add(float64(p.Amount))
		}

	case event.LevelUp:
		var p event.LevelUpPayloadV1
		if p, err = event.DecodePayload[event.LevelUpPayloadV1](evt.Payload); err == nil && p.NewLevel > p.OldLevel {
			LevelUps.Add(float64(p.NewLevel - p.OldLevel))
		}

	case event.ActivityRecorded:
		var p event.ActivityRecordedPayloadV1
		if p, err = event.DecodePayload[event.ActivityRecordedPayloadV1](evt.Payload); err == nil {
			ActivitiesRecorded.WithLabelValues(string(p.ActivityType)).Inc()
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
