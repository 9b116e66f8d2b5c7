package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/logger"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// Service is the append-only activity log and its aggregates.
// Recording an activity never feeds back into quest progress.
type Service interface {
	Record(ctx context.Context, characterID string, activityType domain.ActivityType, description string, xpGained int64, metadata domain.ActivityMetadata) (*domain.Activity, error)
	ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error)
	DailyTotals(ctx context.Context, characterID string, asOf time.Time) (*domain.ActivityTotals, error)
	WeeklyTotals(ctx context.Context, characterID string, asOf time.Time) (*domain.ActivityTotals, error)
	CleanupOldActivities(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.Activity
	bus  event.Bus
	loc  *time.Location
	now  func() time.Time
}

// NewService creates an activity log. Calendar days for totals are taken in loc.
// bus may be nil.
func NewService(repo repository.Activity, bus event.Bus, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{
		repo: repo,
		bus:  bus,
		loc:  loc,
		now:  time.Now,
	}
}

// Record appends an activity with a fresh id and timestamp
func (s *service) Record(ctx context.Context, characterID string, activityType domain.ActivityType, description string, xpGained int64, metadata domain.ActivityMetadata) (*domain.Activity, error) {
	if xpGained < 0 {
		return nil, fmt.Errorf("%w: xp gained must be non-negative", domain.ErrInvalidInput)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = DefaultDescription(activityType)
	}

	a := &domain.Activity{
		ID:          uuid.New().String(),
		CharacterID: characterID,
		Type:        activityType,
		Description: description,
		XPGained:    xpGained,
		Metadata:    metadata,
		CreatedAt:   s.now(),
	}

	if err := s.repo.InsertActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to record %s activity: %w", activityType, err)
	}

	log := logger.FromContext(ctx)
	log.Debug(LogMsgActivityRecorded, "activity_id", a.ID, "character_id", characterID, "type", activityType, "xp", xpGained)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewActivityRecordedEvent(a)); err != nil {
			log.Warn(LogMsgPublishFailed, "activity_id", a.ID, "error", err)
		}
	}
	return a, nil
}

// ListActivities returns activities newest first, bounded by MaxListLimit
func (s *service) ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}

	activities, err := s.repo.GetActivities(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// DailyTotals aggregates the calendar day containing asOf
func (s *service) DailyTotals(ctx context.Context, characterID string, asOf time.Time) (*domain.ActivityTotals, error) {
	start := startOfDay(asOf.In(s.loc))
	return s.totals(ctx, characterID, start, start.AddDate(0, 0, 1))
}

// WeeklyTotals aggregates the ISO week (Monday to Sunday) containing asOf
func (s *service) WeeklyTotals(ctx context.Context, characterID string, asOf time.Time) (*domain.ActivityTotals, error) {
	day := startOfDay(asOf.In(s.loc))
	sinceMonday := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -sinceMonday)
	return s.totals(ctx, characterID, start, start.AddDate(0, 0, 7))
}

func (s *service) totals(ctx context.Context, characterID string, start, end time.Time) (*domain.ActivityTotals, error) {
	activities, err := s.repo.GetActivities(ctx, domain.ActivityFilter{
		CharacterID: characterID,
		Since:       &start,
		Until:       &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	totals := Aggregate(activities)
	totals.CharacterID = characterID
	totals.PeriodStart = start
	totals.PeriodEnd = end
	return &totals, nil
}

// Aggregate sums a set of activities. Calories burned only count where the
// metadata carries them.
func Aggregate(activities []domain.Activity) domain.ActivityTotals {
	var t domain.ActivityTotals
	for _, a := range activities {
		t.ActivityCount++
		t.XPGained += a.XPGained
		if burned, ok := a.Metadata.Int64(domain.MetaKeyCaloriesBurned); ok {
			t.CaloriesBurned += burned
		}
		switch a.Type {
		case domain.ActivityTypeWorkout:
			t.WorkoutsCompleted++
		case domain.ActivityTypeQuest:
			t.QuestsCompleted++
		}
	}
	return t
}

// CleanupOldActivities deletes activities older than retentionDays.
// A non-positive retention keeps everything.
func (s *service) CleanupOldActivities(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		logger.FromContext(ctx).Debug(LogMsgCleanupDisabled)
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	return s.repo.CleanupOldActivities(ctx, cutoff)
}

// DefaultDescription is used when an activity is recorded without one
func DefaultDescription(activityType domain.ActivityType) string {
	return Title(string(activityType)) + " activity"
}

// Title capitalises each word of s for display
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
