// Package memory provides an in-process implementation of the repositories,
// used for development and tests. Every read returns a copy.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// Store holds all state behind one RWMutex
type Store struct {
	mu          sync.RWMutex
	characters  map[string]domain.Character
	quests      map[int64]domain.Quest
	nextQuestID int64
	activities  []domain.Activity
	events      []eventlog.Event
	nextEventID int64
	now         func() time.Time
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		characters: make(map[string]domain.Character),
		quests:     make(map[int64]domain.Quest),
		now:        time.Now,
	}
}

func (s *Store) Characters() repository.Character { return characterRepo{s} }
func (s *Store) Quests() repository.Quest { return questRepo{s} }
func (s *Store) Activities() repository.Activity { return activityRepo{s} }

// EventLog returns the audit-trail repository
func (s *Store) EventLog() eventlog.Repository { return eventRepo{s} }

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op
func (s *Store) Close() {}

type characterRepo struct{ s *Store }

func (r characterRepo) CreateCharacter(_ context.Context, c *domain.Character) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.characters[c.ID]; exists {
		return domain.ErrInvalidInput
	}
	r.s.characters[c.ID] = *c
	return nil
}

func (r characterRepo) GetCharacter(_ context.Context, id string) (*domain.Character, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.characters[id]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

func (r characterRepo) UpdateCharacter(_ context.Context, c *domain.Character) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.characters[c.ID]; !ok {
		return domain.ErrCharacterNotFound
	}
	r.s.characters[c.ID] = *c
	return nil
}

type questRepo struct{ s *Store }

func (r questRepo) CreateQuest(_ context.Context, q *domain.Quest) (*domain.Quest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.characters[q.CharacterID]; !ok {
		return nil, domain.ErrCharacterNotFound
	}
	r.s.nextQuestID++
	created := *q
	created.ID = r.s.nextQuestID
	created.CompletedAt = copyTime(q.CompletedAt)
	r.s.quests[created.ID] = created

	out := created
	out.CompletedAt = copyTime(created.CompletedAt)
	return &out, nil
}

func (r questRepo) GetQuest(_ context.Context, id int64) (*domain.Quest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.quests[id]
	if !ok {
		return nil, domain.ErrQuestNotFound
	}
	q.CompletedAt = copyTime(q.CompletedAt)
	return &q, nil
}

func (r questRepo) GetActiveQuests(_ context.Context, characterID string) ([]domain.Quest, error) {
	return r.list(characterID, true), nil
}

func (r questRepo) GetQuestsByCharacter(_ context.Context, characterID string) ([]domain.Quest, error) {
	return r.list(characterID, false), nil
}

func (r questRepo) list(characterID string, activeOnly bool) []domain.Quest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Quest{}
	for _, q := range r.s.quests {
		if q.CharacterID != characterID || (activeOnly && q.IsCompleted) {
			continue
		}
		q.CompletedAt = copyTime(q.CompletedAt)
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r questRepo) UpdateQuestProgress(_ context.Context, id int64, progress int64, completed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quests[id]
	if !ok {
		return domain.ErrQuestNotFound
	}
	if q.IsCompleted {
		return domain.ErrQuestAlreadyCompleted
	}
	q.CurrentProgress = progress
	q.IsCompleted = completed
	if completed {
		now := r.s.now()
		q.CompletedAt = &now
	}
	r.s.quests[id] = q
	return nil
}

type activityRepo struct{ s *Store }

func (r activityRepo) InsertActivity(_ context.Context, a *domain.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *a
	stored.Metadata = copyMap(a.Metadata)
	r.s.activities = append(r.s.activities, stored)
	return nil
}

func (r activityRepo) GetActivities(_ context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Activity{}
	// newest first; later inserts win ties
	for i := len(r.s.activities) - 1; i >= 0; i-- {
		a := r.s.activities[i]
		if a.CharacterID != f.CharacterID {
			continue
		}
		if f.Type != nil && a.Type != *f.Type {
			continue
		}
		if f.Since != nil && a.CreatedAt.Before(*f.Since) {
			continue
		}
		if f.Until != nil && !a.CreatedAt.Before(*f.Until) {
			continue
		}
		a.Metadata = copyMap(a.Metadata)
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r activityRepo) CleanupOldActivities(_ context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.activities[:0]
	var removed int64
	for _, a := range r.s.activities {
		if a.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.s.activities = kept
	return removed, nil
}

type eventRepo struct{ s *Store }

func (r eventRepo) LogEvent(_ context.Context, eventType string, characterID *string, payload, metadata map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextEventID++
	if payload == nil {
		payload = map[string]interface{}{}
	}
	var cid *string
	if characterID != nil {
		v := *characterID
		cid = &v
	}
	r.s.events = append(r.s.events, eventlog.Event{
		ID:          r.s.nextEventID,
		EventType:   eventType,
		CharacterID: cid,
		Payload:     copyMap(payload),
		Metadata:    copyMap(metadata),
		CreatedAt:   r.s.now(),
	})
	return nil
}

func (r eventRepo) GetEvents(_ context.Context, f eventlog.EventFilter) ([]eventlog.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []eventlog.Event{}
	for i := len(r.s.events) - 1; i >= 0; i-- {
		e := r.s.events[i]
		if f.CharacterID != nil && (e.CharacterID == nil || *e.CharacterID != *f.CharacterID) {
			continue
		}
		if f.EventType != nil && e.EventType != *f.EventType {
			continue
		}
		if f.Since != nil && e.CreatedAt.Before(*f.Since) {
			continue
		}
		if f.Until != nil && !e.CreatedAt.Before(*f.Until) {
			continue
		}
		e.Payload = copyMap(e.Payload)
		e.Metadata = copyMap(e.Metadata)
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r eventRepo) CleanupOldEvents(_ context.Context, retentionDays int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cutoff := r.s.now().AddDate(0, 0, -retentionDays)
	kept := r.s.events[:0]
	var removed int64
	for _, e := range r.s.events {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.s.events = kept
	return removed, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// copyMap makes a shallow copy; metadata values are scalars
func copyMap[M ~map[string]interface{}](m M) M {
	if m == nil {
		return nil
	}
	out := make(M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
