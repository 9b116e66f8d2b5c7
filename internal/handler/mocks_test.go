package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
	"github.com/osse101/FitQuest_Go/internal/progress"
)

// MockProgressService mocks progress.Service
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) ApplyAction(ctx context.Context, characterID string, kind domain.ActionKind, value int64, meta domain.ActionMetadata) ([]domain.QuestUpdateResult, error) {
	args := m.Called(ctx, characterID, kind, value, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestUpdateResult), args.Error(1)
}

func (m *MockProgressService) GrantXP(ctx context.Context, characterID string, amount int64, description string) (*domain.XPGrantResult, error) {
	args := m.Called(ctx, characterID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.XPGrantResult), args.Error(1)
}

func (m *MockProgressService) GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockProgressService) GetQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockProgressService) IssueQuests(ctx context.Context, characterID string, daily bool) ([]domain.Quest, error) {
	args := m.Called(ctx, characterID, daily)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockProgressService) LogMeal(ctx context.Context, characterID string, meal progress.MealLog) (*progress.LogResult, error) {
	args := m.Called(ctx, characterID, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.LogResult), args.Error(1)
}

func (m *MockProgressService) LogWorkout(ctx context.Context, characterID string, workout progress.WorkoutLog) (*progress.LogResult, error) {
	args := m.Called(ctx, characterID, workout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.LogResult), args.Error(1)
}

func (m *MockProgressService) LogHydration(ctx context.Context, characterID string, glasses int64) (*progress.LogResult, error) {
	args := m.Called(ctx, characterID, glasses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.LogResult), args.Error(1)
}

// MockCharacterService mocks character.Service
type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) CreateCharacter(ctx context.Context, name string) (*domain.Character, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) GrantXP(ctx context.Context, id string, amount int64) (*domain.XPGrantResult, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.XPGrantResult), args.Error(1)
}

// MockQuestService mocks quest.Service
type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) CreateQuest(ctx context.Context, q *domain.Quest) (*domain.Quest, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockQuestService) GetQuest(ctx context.Context, questID int64) (*domain.Quest, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockQuestService) GetQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockQuestService) GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockQuestService) UpdateQuestProgress(ctx context.Context, questID int64, newProgress int64, completed bool) (*domain.Quest, error) {
	args := m.Called(ctx, questID, newProgress, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockQuestService) QuestPool() []domain.QuestTemplate {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.QuestTemplate)
}

func (m *MockQuestService) IssueFromPool(ctx context.Context, characterID string, daily bool) ([]domain.Quest, error) {
	args := m.Called(ctx, characterID, daily)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

// MockActivityService mocks activity.Service
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Record(ctx context.Context, characterID string, activityType domain.ActivityType, description string, xpGained int64, metadata domain.ActivityMetadata) (*domain.Activity, error) {
	args := m.Called(ctx, characterID, activityType, description, xpGained, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityService) ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityService) DailyTotals(ctx context.Context, characterID string, asOf time.Time) (*domain.ActivityTotals, error) {
	args := m.Called(ctx, characterID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityTotals), args.Error(1)
}

func (m *MockActivityService) WeeklyTotals(ctx context.Context, characterID string, asOf time.Time) (*domain.ActivityTotals, error) {
	args := m.Called(ctx, characterID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityTotals), args.Error(1)
}

func (m *MockActivityService) CleanupOldActivities(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventLogService mocks eventlog.Service
type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockEventLogService) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Event), args.Error(1)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
