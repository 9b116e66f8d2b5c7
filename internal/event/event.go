package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types published by the progress engine
const (
	QuestCompleted   Type = domain.EventTypeQuestCompleted
	QuestProgressed  Type = domain.EventTypeQuestProgressed
	XPGranted        Type = domain.EventTypeXPGranted
	LevelUp          Type = domain.EventTypeLevelUp
	ActivityRecorded Type = domain.EventTypeActivityRecorded
)

// Typed event payloads for type safety

// QuestCompletedPayloadV1 is published once per quest instance
type QuestCompletedPayloadV1 struct {
	CharacterID string           `json:"character_id"`
	QuestID     int64            `json:"quest_id"`
	QuestName   string           `json:"quest_name"`
	QuestType   domain.QuestType `json:"quest_type"`
	XPReward    int64            `json:"xp_reward"`
	Timestamp   int64            `json:"timestamp"`
}

// QuestProgressedPayloadV1 is published for every progress write
type QuestProgressedPayloadV1 struct {
	CharacterID     string            `json:"character_id"`
	QuestID         int64             `json:"quest_id"`
	QuestType       domain.QuestType  `json:"quest_type"`
	ActionKind      domain.ActionKind `json:"action_kind"`
	Delta           int64             `json:"delta"`
	CurrentProgress int64             `json:"current_progress"`
	TargetValue     int64             `json:"target_value"`
}

// XPGrantedPayloadV1 is the typed payload for XP grant events
type XPGrantedPayloadV1 struct {
	CharacterID string `json:"character_id"`
	Amount      int64  `json:"amount"`
	TotalXP     int64  `json:"total_xp"`
	Source      string `json:"source,omitempty"`
}

// LevelUpPayloadV1 is the typed payload for character level up events
type LevelUpPayloadV1 struct {
	CharacterID string `json:"character_id"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
	Source      string `json:"source,omitempty"`
}

// ActivityRecordedPayloadV1 is the typed payload for activity events
type ActivityRecordedPayloadV1 struct {
	ActivityID   string              `json:"activity_id"`
	CharacterID  string              `json:"character_id"`
	ActivityType domain.ActivityType `json:"activity_type"`
	XPGained     int64               `json:"xp_gained"`
}

// Type-safe event constructors

// NewQuestCompletedEvent creates a quest completed event
func NewQuestCompletedEvent(q *domain.Quest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestCompleted,
		Payload: QuestCompletedPayloadV1{
			CharacterID: q.CharacterID,
			QuestID:     q.ID,
			QuestName:   q.Name,
			QuestType:   q.Type,
			XPReward:    q.XPReward,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"character_id": q.CharacterID,
		},
	}
}

// NewQuestProgressedEvent creates a quest progressed event
func NewQuestProgressedEvent(q *domain.Quest, kind domain.ActionKind, delta int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestProgressed,
		Payload: QuestProgressedPayloadV1{
			CharacterID:     q.CharacterID,
			QuestID:         q.ID,
			QuestType:       q.Type,
			ActionKind:      kind,
			Delta:           delta,
			CurrentProgress: q.CurrentProgress,
			TargetValue:     q.TargetValue,
		},
		Metadata: nil,
	}
}

// NewXPGrantedEvent creates an XP granted event
func NewXPGrantedEvent(characterID string, amount, totalXP int64, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    XPGranted,
		Payload: XPGrantedPayloadV1{
			CharacterID: characterID,
			Amount:      amount,
			TotalXP:     totalXP,
			Source:      source,
		},
		Metadata: map[string]interface{}{
			"source": source,
		},
	}
}

// NewLevelUpEvent creates a character level up event
func NewLevelUpEvent(characterID string, oldLevel, newLevel int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			CharacterID: characterID,
			OldLevel:    oldLevel,
			NewLevel:    newLevel,
			Source:      source,
		},
		Metadata: map[string]interface{}{
			"source": source,
		},
	}
}

// NewActivityRecordedEvent creates an activity recorded event
func NewActivityRecordedEvent(a *domain.Activity) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActivityRecorded,
		Payload: ActivityRecordedPayloadV1{
			ActivityID:   a.ID,
			CharacterID:  a.CharacterID,
			ActivityType: a.Type,
			XPGained:     a.XPGained,
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. A *DeliveryError names
// the handlers that failed.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	if de := deliver(ctx, event, handlers); de != nil {
		return de
	}
	return nil
}

// DeliveryError reports the subscribers that returned an error for an event
type DeliveryError struct {
	Type   Type
	Failed []Handler
	Errs   []error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf(LogMsgHandlerErrorFormat, len(e.Errs), e.Type, e.Errs)
}

// Unwrap exposes the individual handler errors to errors.Is and errors.As
func (e *DeliveryError) Unwrap() []error { return e.Errs }

// deliver runs handlers synchronously in subscription order
func deliver(ctx context.Context, event Event, handlers []Handler) *DeliveryError {
	var de *DeliveryError
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			if de == nil {
				de = &DeliveryError{Type: event.Type}
			}
			de.Failed = append(de.Failed, handler)
			de.Errs = append(de.Errs, err)
		}
	}
	return de
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
