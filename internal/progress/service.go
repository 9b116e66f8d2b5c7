// Package progress is the single entry point that turns logged actions into
// quest progress, quest rewards and XP. It owns the per-character lock.
package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/osse101/FitQuest_Go/internal/activity"
	"github.com/osse101/FitQuest_Go/internal/character"
	"github.com/osse101/FitQuest_Go/internal/concurrency"
	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/logger"
	"github.com/osse101/FitQuest_Go/internal/metrics"
	"github.com/osse101/FitQuest_Go/internal/quest"
)

// Service coordinates quests, the character ledger and the activity log
type Service interface {
	ApplyAction(ctx context.Context, characterID string, kind domain.ActionKind, value int64, meta domain.ActionMetadata) ([]domain.QuestUpdateResult, error)
	GrantXP(ctx context.Context, characterID string, amount int64, description string) (*domain.XPGrantResult, error)
	GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error)
	GetQuests(ctx context.Context, characterID string) ([]domain.Quest, error)
	IssueQuests(ctx context.Context, characterID string, daily bool) ([]domain.Quest, error)

	// Tracker entry points
	LogMeal(ctx context.Context, characterID string, meal MealLog) (*LogResult, error)
	LogWorkout(ctx context.Context, characterID string, workout WorkoutLog) (*LogResult, error)
	LogHydration(ctx context.Context, characterID string, glasses int64) (*LogResult, error)
}

// XPRates is the base XP granted by each tracker entry point
type XPRates struct {
	Meal          int64
	Workout       int64
	WaterPerGlass int64
}

// MealLog is a logged meal
type MealLog struct {
	Description string `json:"description"`
	Calories    *int64 `json:"calories,omitempty" validate:"omitempty,min=0"`
	Protein     *int64 `json:"protein,omitempty" validate:"omitempty,min=0"`
}

// WorkoutLog is a logged workout
type WorkoutLog struct {
	Description    string `json:"description"`
	WorkoutType    string `json:"workout_type"`
	Duration       *int64 `json:"duration,omitempty" validate:"omitempty,min=0"`
	CaloriesBurned *int64 `json:"calories_burned,omitempty" validate:"omitempty,min=0"`
}

// LogResult is the outcome of a tracker call
type LogResult struct {
	Activity     *domain.Activity           `json:"activity"`
	XP           *domain.XPGrantResult      `json:"xp"`
	QuestUpdates []domain.QuestUpdateResult `json:"quest_updates"`
}

type service struct {
	locks      *concurrency.LockManager
	characters character.Service
	quests     quest.Service
	activities activity.Service
	bus        event.Bus
	rates      XPRates
}

// NewService creates the progress coordinator. bus may be nil.
func NewService(characters character.Service, quests quest.Service, activities activity.Service, bus event.Bus, rates XPRates) Service {
	return &service{
		locks:      concurrency.NewLockManager(),
		characters: characters,
		quests:     quests,
		activities: activities,
		bus:        bus,
		rates:      rates,
	}
}

// ApplyAction advances every matching active quest of the character
func (s *service) ApplyAction(ctx context.Context, characterID string, kind domain.ActionKind, value int64, meta domain.ActionMetadata) ([]domain.QuestUpdateResult, error) {
	if value < 0 {
		return nil, fmt.Errorf("%w: action value must be non-negative", domain.ErrInvalidInput)
	}

	var results []domain.QuestUpdateResult
	err := s.locks.WithLock(characterID, func() error {
		if _, err := s.characters.GetCharacter(ctx, characterID); err != nil {
			return err
		}
		var err error
		results, err = s.applyAction(ctx, characterID, kind, value, meta)
		return err
	})
	return results, err
}

// applyAction runs with the character lock held
func (s *service) applyAction(ctx context.Context, characterID string, kind domain.ActionKind, value int64, meta domain.ActionMetadata) ([]domain.QuestUpdateResult, error) {
	log := logger.ForCharacter(ctx, characterID)
	metrics.ActionsApplied.WithLabelValues(string(kind)).Inc()

	active, err := s.quests.GetActiveQuests(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active quests: %w", err)
	}

	results := []domain.QuestUpdateResult{}
	var failures []error

	for i := range active {
		q := active[i]
		if q.IsCompleted {
			continue
		}

		delta := quest.ProgressDelta(q, kind, value, meta)
		if delta <= 0 {
			continue
		}

		newProgress := q.TargetValue
		if delta < q.TargetValue-q.CurrentProgress {
			newProgress = q.CurrentProgress + delta
		}
		if newProgress <= q.CurrentProgress {
			continue
		}
		completed := newProgress >= q.TargetValue

		updated, err := s.quests.UpdateQuestProgress(ctx, q.ID, newProgress, completed)
		if err != nil {
			log.Warn(LogMsgQuestUpdateFailed, "quest_id", q.ID, "error", err)
			failures = append(failures, fmt.Errorf("quest %d: %w", q.ID, err))
			continue
		}

		log.Debug(LogMsgQuestProgressed, "quest_id", q.ID, "progress", updated.CurrentProgress, "target", updated.TargetValue)
		s.publish(ctx, event.NewQuestProgressedEvent(updated, kind, updated.CurrentProgress-q.CurrentProgress))

		result := domain.QuestUpdateResult{
			QuestID:         updated.ID,
			QuestName:       updated.Name,
			CurrentProgress: updated.CurrentProgress,
			TargetValue:     updated.TargetValue,
			Completed:       updated.IsCompleted,
		}

		if updated.IsCompleted {
			if err := s.rewardQuest(ctx, updated, &result); err != nil {
				failures = append(failures, fmt.Errorf("quest %d reward: %w", q.ID, err))
			}
		}

		results = append(results, result)
	}

	log.Info(LogMsgActionApplied, "kind", kind, "value", value, "updated", len(results))

	if len(failures) > 0 {
		return results, fmt.Errorf("%w: %w", domain.ErrPartialFailure, errors.Join(failures...))
	}
	return results, nil
}

// rewardQuest runs once, on the transition to completed
func (s *service) rewardQuest(ctx context.Context, q *domain.Quest, result *domain.QuestUpdateResult) error {
	log := logger.ForCharacter(ctx, q.CharacterID)
	log.Info(LogMsgQuestCompleted, "quest_id", q.ID, "xp_reward", q.XPReward)
	s.publish(ctx, event.NewQuestCompletedEvent(q))

	grant, err := s.grantXP(ctx, q.CharacterID, q.XPReward, SourceQuest)
	if err != nil {
		log.Error(LogMsgQuestRewardFailed, "quest_id", q.ID, "error", err)
		return err
	}
	awarded := grant.XPGained
	result.XPAwarded = &awarded
	result.LeveledUp = grant.LeveledUp

	description := fmt.Sprintf("Completed quest: %s", q.Name)
	meta := domain.ActivityMetadata{
		domain.MetaKeyQuestID:   q.ID,
		domain.MetaKeyQuestName: q.Name,
	}
	if _, err := s.activities.Record(ctx, q.CharacterID, domain.ActivityTypeQuest, description, q.XPReward, meta); err != nil {
		log.Error(LogMsgQuestActivityFailed, "quest_id", q.ID, "error", err)
		return err
	}
	return nil
}

// GrantXP grants XP outside of quests and records an xp activity
func (s *service) GrantXP(ctx context.Context, characterID string, amount int64, description string) (*domain.XPGrantResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: xp amount must be non-negative", domain.ErrInvalidInput)
	}

	var result *domain.XPGrantResult
	err := s.locks.WithLock(characterID, func() error {
		var err error
		result, err = s.grantXP(ctx, characterID, amount, SourceManual)
		if err != nil {
			return err
		}
		description = strings.TrimSpace(description)
		if description == "" {
			description = fmt.Sprintf("Gained %d XP", amount)
		}
		_, err = s.activities.Record(ctx, characterID, domain.ActivityTypeXP, description, amount,
			domain.ActivityMetadata{domain.MetaKeySource: SourceManual})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// grantXP settles a grant on the ledger and publishes the outcome
func (s *service) grantXP(ctx context.Context, characterID string, amount int64, source string) (*domain.XPGrantResult, error) {
	result, err := s.characters.GrantXP(ctx, characterID, amount)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewXPGrantedEvent(characterID, amount, result.Character.TotalXP, source))
	if result.LeveledUp {
		s.publish(ctx, event.NewLevelUpEvent(characterID, result.PreviousLevel, result.Character.Level, source))
	}
	return result, nil
}

// GetActiveQuests returns the character's incomplete quests ordered by id
func (s *service) GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	if _, err := s.characters.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.quests.GetActiveQuests(ctx, characterID)
}

// GetQuests returns every quest of the character, completed ones included
func (s *service) GetQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	if _, err := s.characters.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.quests.GetQuests(ctx, characterID)
}

// IssueQuests issues pool quests for the character. It holds the character
// lock so the active-name check and the creates see no concurrent issue.
func (s *service) IssueQuests(ctx context.Context, characterID string, daily bool) ([]domain.Quest, error) {
	var issued []domain.Quest
	err := s.locks.WithLock(characterID, func() error {
		if _, err := s.characters.GetCharacter(ctx, characterID); err != nil {
			return err
		}
		var err error
		issued, err = s.quests.IssueFromPool(ctx, characterID, daily)
		return err
	})
	return issued, err
}

// LogMeal grants meal XP, records a nutrition activity and applies log_meal
func (s *service) LogMeal(ctx context.Context, characterID string, meal MealLog) (*LogResult, error) {
	if isNegative(meal.Calories) || isNegative(meal.Protein) {
		return nil, fmt.Errorf("%w: meal values must be non-negative", domain.ErrInvalidInput)
	}

	meta := domain.ActivityMetadata{}
	if meal.Calories != nil {
		meta[domain.MetaKeyCalories] = *meal.Calories
	}
	if meal.Protein != nil {
		meta[domain.MetaKeyProtein] = *meal.Protein
	}

	return s.track(ctx, trackedLog{
		characterID:  characterID,
		activityType: domain.ActivityTypeNutrition,
		description:  meal.Description,
		source:       SourceMeal,
		xp:           s.rates.Meal,
		metadata:     meta,
		kind:         domain.ActionLogMeal,
		value:        1,
		action:       domain.ActionMetadata{Calories: meal.Calories, Protein: meal.Protein},
	})
}

// LogWorkout grants workout XP, records a workout activity and applies log_workout
func (s *service) LogWorkout(ctx context.Context, characterID string, workout WorkoutLog) (*LogResult, error) {
	if isNegative(workout.Duration) || isNegative(workout.CaloriesBurned) {
		return nil, fmt.Errorf("%w: workout values must be non-negative", domain.ErrInvalidInput)
	}

	meta := domain.ActivityMetadata{}
	value := int64(1)
	if workout.Duration != nil {
		meta[domain.MetaKeyDuration] = *workout.Duration
		value = *workout.Duration
	}
	if workout.CaloriesBurned != nil {
		meta[domain.MetaKeyCaloriesBurned] = *workout.CaloriesBurned
	}
	if workout.WorkoutType != "" {
		meta[domain.MetaKeyWorkoutType] = workout.WorkoutType
	}

	description := workout.Description
	if strings.TrimSpace(description) == "" && workout.WorkoutType != "" {
		description = activity.Title(workout.WorkoutType) + " workout"
	}

	return s.track(ctx, trackedLog{
		characterID:  characterID,
		activityType: domain.ActivityTypeWorkout,
		description:  description,
		source:       SourceWorkout,
		xp:           s.rates.Workout,
		metadata:     meta,
		kind:         domain.ActionLogWorkout,
		value:        value,
		action: domain.ActionMetadata{
			Duration:       workout.Duration,
			CaloriesBurned: workout.CaloriesBurned,
			WorkoutType:    workout.WorkoutType,
		},
	})
}

// LogHydration grants XP per glass, records a hydration activity and applies log_water
func (s *service) LogHydration(ctx context.Context, characterID string, glasses int64) (*LogResult, error) {
	if glasses <= 0 {
		return nil, fmt.Errorf("%w: glasses must be positive", domain.ErrInvalidInput)
	}
	if s.rates.WaterPerGlass > 0 && glasses > math.MaxInt64/s.rates.WaterPerGlass {
		return nil, fmt.Errorf("%w: too many glasses", domain.ErrInvalidInput)
	}

	return s.track(ctx, trackedLog{
		characterID:  characterID,
		activityType: domain.ActivityTypeHydration,
		description:  fmt.Sprintf("Drank %d glass(es) of water", glasses),
		source:       SourceHydration,
		xp:           glasses * s.rates.WaterPerGlass,
		metadata:     domain.ActivityMetadata{domain.MetaKeyGlasses: glasses},
		kind:         domain.ActionLogWater,
		value:        glasses,
	})
}

type trackedLog struct {
	characterID  string
	activityType domain.ActivityType
	description  string
	source       string
	xp           int64
	metadata     domain.ActivityMetadata
	kind         domain.ActionKind
	value        int64
	action       domain.ActionMetadata
}

// track is shared by the tracker entry points. The character lock is held
// across the XP grant, the activity and the quest update.
func (s *service) track(ctx context.Context, l trackedLog) (*LogResult, error) {
	var result LogResult
	err := s.locks.WithLock(l.characterID, func() error {
		grant, err := s.grantXP(ctx, l.characterID, l.xp, l.source)
		if err != nil {
			return err
		}
		result.XP = grant

		result.Activity, err = s.activities.Record(ctx, l.characterID, l.activityType, l.description, l.xp, l.metadata)
		if err != nil {
			return err
		}

		result.QuestUpdates, err = s.applyAction(ctx, l.characterID, l.kind, l.value, l.action)
		return err
	})
	if err != nil && !errors.Is(err, domain.ErrPartialFailure) {
		return nil, err
	}
	return &result, err
}

func isNegative(v *int64) bool {
	return v != nil && *v < 0
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
