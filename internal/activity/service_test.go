package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/event"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertActivity(ctx context.Context, a *domain.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockRepository) CleanupOldActivities(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

var fixedNow = time.Date(2024, time.March, 14, 15, 30, 0, 0, time.UTC) // a Thursday

func newTestService(repo *MockRepository, bus event.Bus) *service {
	svc := NewService(repo, bus, time.UTC).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestRecord(t *testing.T) {
	repo := new(MockRepository)
	bus := event.NewMemoryBus()
	svc := newTestService(repo, bus)

	var published []event.Event
	bus.Subscribe(event.ActivityRecorded, func(_ context.Context, evt event.Event) error {
		published = append(published, evt)
		return nil
	})

	repo.On("InsertActivity", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
		return a.ID != "" && a.CharacterID == "c1" && a.CreatedAt.Equal(fixedNow)
	})).Return(nil)

	meta := domain.ActivityMetadata{domain.MetaKeyGlasses: 2}
	a, err := svc.Record(context.Background(), "c1", domain.ActivityTypeHydration, "", 10, meta)

	require.NoError(t, err)
	assert.Equal(t, "Hydration activity", a.Description)
	assert.Equal(t, int64(10), a.XPGained)
	assert.Equal(t, meta, a.Metadata)
	require.Len(t, published, 1)
	repo.AssertExpectations(t)
}

func TestRecord_KeepsDescriptionAndRejectsNegativeXP(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	repo.On("InsertActivity", mock.Anything, mock.Anything).Return(nil)

	a, err := svc.Record(context.Background(), "c1", domain.ActivityTypeQuest, "  Completed quest: Stay Hydrated ", 50, nil)
	require.NoError(t, err)
	assert.Equal(t, "Completed quest: Stay Hydrated", a.Description)

	_, err = svc.Record(context.Background(), "c1", domain.ActivityTypeXP, "bonus", -1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNumberOfCalls(t, "InsertActivity", 1)
}

func TestRecord_StoreFailure(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	repo.On("InsertActivity", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := svc.Record(context.Background(), "c1", domain.ActivityTypeWorkout, "run", 25, nil)
	assert.ErrorContains(t, err, "connection reset")
}

func TestDailyTotals(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	wantStart := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	wantEnd := wantStart.AddDate(0, 0, 1)

	repo.On("GetActivities", mock.Anything, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.CharacterID == "c1" && f.Since.Equal(wantStart) && f.Until.Equal(wantEnd) && f.Limit == 0
	})).Return([]domain.Activity{
		{Type: domain.ActivityTypeWorkout, XPGained: 25, Metadata: domain.ActivityMetadata{domain.MetaKeyCaloriesBurned: float64(300)}},
		{Type: domain.ActivityTypeWorkout, XPGained: 25},
		{Type: domain.ActivityTypeNutrition, XPGained: 10, Metadata: domain.ActivityMetadata{domain.MetaKeyCalories: 600}},
		{Type: domain.ActivityTypeQuest, XPGained: 50, Metadata: domain.ActivityMetadata{domain.MetaKeyQuestID: 3}},
	}, nil)

	totals, err := svc.DailyTotals(context.Background(), "c1", fixedNow)

	require.NoError(t, err)
	assert.Equal(t, int64(110), totals.XPGained)
	assert.Equal(t, int64(300), totals.CaloriesBurned)
	assert.Equal(t, 2, totals.WorkoutsCompleted)
	assert.Equal(t, 1, totals.QuestsCompleted)
	assert.Equal(t, 4, totals.ActivityCount)
	assert.Equal(t, wantStart, totals.PeriodStart)
	assert.Equal(t, wantEnd, totals.PeriodEnd)
}

func TestDailyTotals_UsesConfiguredTimezone(t *testing.T) {
	repo := new(MockRepository)
	loc := time.FixedZone("UTC+7", 7*60*60)
	svc := NewService(repo, nil, loc)

	// 20:00 UTC on the 14th is already the 15th in UTC+7
	asOf := time.Date(2024, time.March, 14, 20, 0, 0, 0, time.UTC)
	wantStart := time.Date(2024, time.March, 15, 0, 0, 0, 0, loc)

	repo.On("GetActivities", mock.Anything, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.Since.Equal(wantStart)
	})).Return([]domain.Activity{}, nil)

	totals, err := svc.DailyTotals(context.Background(), "c1", asOf)

	require.NoError(t, err)
	assert.Zero(t, totals.XPGained)
	repo.AssertExpectations(t)
}

func TestWeeklyTotals_StartsMonday(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	monday := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	nextMonday := monday.AddDate(0, 0, 7)

	repo.On("GetActivities", mock.Anything, mock.MatchedBy(func(f domain.ActivityFilter) bool {
		return f.Since.Equal(monday) && f.Until.Equal(nextMonday)
	})).Return([]domain.Activity{{Type: domain.ActivityTypeXP, XPGained: 7}}, nil)

	for _, asOf := range []time.Time{fixedNow, monday, time.Date(2024, time.March, 17, 23, 59, 0, 0, time.UTC)} {
		totals, err := svc.WeeklyTotals(context.Background(), "c1", asOf)
		require.NoError(t, err)
		assert.Equal(t, int64(7), totals.XPGained, "asOf %s", asOf)
	}
}

func TestListActivities_Limits(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	repo.On("GetActivities", mock.Anything, mock.MatchedBy(func(f domain.ActivityFilter) bool { return f.Limit == DefaultListLimit })).Return([]domain.Activity{}, nil).Once()
	repo.On("GetActivities", mock.Anything, mock.MatchedBy(func(f domain.ActivityFilter) bool { return f.Limit == MaxListLimit })).Return([]domain.Activity{}, nil).Once()

	_, err := svc.ListActivities(context.Background(), domain.ActivityFilter{CharacterID: "c1"})
	require.NoError(t, err)
	_, err = svc.ListActivities(context.Background(), domain.ActivityFilter{CharacterID: "c1", Limit: 10000})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCleanupOldActivities(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	cutoff := fixedNow.AddDate(0, 0, -30)
	repo.On("CleanupOldActivities", mock.Anything, cutoff).Return(int64(12), nil)

	count, err := svc.CleanupOldActivities(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)

	count, err = svc.CleanupOldActivities(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, count)
	repo.AssertNumberOfCalls(t, "CleanupOldActivities", 1)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Strength Training", Title("strength_training"))
	assert.Equal(t, "Nutrition activity", DefaultDescription(domain.ActivityTypeNutrition))
}
