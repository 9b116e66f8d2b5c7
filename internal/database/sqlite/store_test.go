package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "fitquest.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func newTestCharacter(t *testing.T, store *Store) *domain.Character {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &domain.Character{
		ID:          uuid.NewString(),
		Name:        "Tester",
		Level:       1,
		NextLevelXP: 100,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, store.Characters().CreateCharacter(context.Background(), c))
	return c
}

func newTestQuest(characterID string, qt domain.QuestType, target int64) *domain.Quest {
	return &domain.Quest{
		CharacterID: characterID,
		Name:        "Quest " + string(qt),
		Type:        qt,
		TargetValue: target,
		XPReward:    50,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPathRequired)
}

func TestOpen_MissingDirectory(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "fitquest.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToPing)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "fitquest.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "second run must be a no-op")

	for _, table := range []string{"characters", "quests", "activities", "events"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fitquest.db")

	first, err := OpenStore(ctx, path)
	require.NoError(t, err)
	c := newTestCharacter(t, first)
	first.Close()

	second, err := OpenStore(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, second.Ping(ctx))
	got, err := second.Characters().GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
	assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
}

func TestCharacterRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := newTestCharacter(t, store)

	err := store.Characters().CreateCharacter(ctx, c)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "duplicate id")

	got, err := store.Characters().GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.NextLevelXP)

	got.Level = 2
	got.CurrentXP = 20
	got.TotalXP = 120
	got.NextLevelXP = 150
	require.NoError(t, store.Characters().UpdateCharacter(ctx, got))

	reloaded, err := store.Characters().GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Level)
	assert.Equal(t, int64(20), reloaded.CurrentXP)
	assert.Equal(t, int64(120), reloaded.TotalXP)

	_, err = store.Characters().GetCharacter(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	err = store.Characters().UpdateCharacter(ctx, &domain.Character{ID: "missing", Level: 1, NextLevelXP: 100})
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestQuestRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	c := newTestCharacter(t, store)

	t.Run("create assigns ids in order", func(t *testing.T) {
		first, err := store.Quests().CreateQuest(ctx, newTestQuest(c.ID, domain.QuestTypeHydration, 8))
		require.NoError(t, err)
		second, err := store.Quests().CreateQuest(ctx, newTestQuest(c.ID, domain.QuestTypeCardio, 30))
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, domain.QuestTypeCardio, second.Type)
		assert.Nil(t, second.CompletedAt)

		active, err := store.Quests().GetActiveQuests(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, first.ID, active[0].ID)
	})

	t.Run("create for missing character", func(t *testing.T) {
		_, err := store.Quests().CreateQuest(ctx, newTestQuest("missing", domain.QuestTypeCardio, 10))
		assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
	})

	t.Run("completion is terminal", func(t *testing.T) {
		completedAt := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
		store.quests.now = func() time.Time { return completedAt }

		q, err := store.Quests().CreateQuest(ctx, newTestQuest(c.ID, domain.QuestTypeStrength, 3))
		require.NoError(t, err)

		require.NoError(t, store.Quests().UpdateQuestProgress(ctx, q.ID, 2, false))
		partial, err := store.Quests().GetQuest(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), partial.CurrentProgress)
		assert.False(t, partial.IsCompleted)

		require.NoError(t, store.Quests().UpdateQuestProgress(ctx, q.ID, 3, true))

		done, err := store.Quests().GetQuest(ctx, q.ID)
		require.NoError(t, err)
		assert.True(t, done.IsCompleted)
		require.NotNil(t, done.CompletedAt)
		assert.True(t, completedAt.Equal(*done.CompletedAt))

		err = store.Quests().UpdateQuestProgress(ctx, q.ID, 1, false)
		assert.ErrorIs(t, err, domain.ErrQuestAlreadyCompleted)

		all, err := store.Quests().GetQuestsByCharacter(ctx, c.ID)
		require.NoError(t, err)
		active, err := store.Quests().GetActiveQuests(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, active, len(all)-1)
	})

	t.Run("progress above target is rejected", func(t *testing.T) {
		q, err := store.Quests().CreateQuest(ctx, newTestQuest(c.ID, domain.QuestTypeNutrition, 2))
		require.NoError(t, err)
		assert.Error(t, store.Quests().UpdateQuestProgress(ctx, q.ID, 5, false))
	})

	t.Run("unknown quest", func(t *testing.T) {
		_, err := store.Quests().GetQuest(ctx, 987654321)
		assert.ErrorIs(t, err, domain.ErrQuestNotFound)

		err = store.Quests().UpdateQuestProgress(ctx, 987654321, 1, false)
		assert.ErrorIs(t, err, domain.ErrQuestNotFound)
	})

	t.Run("concurrent completion writes once", func(t *testing.T) {
		q, err := store.Quests().CreateQuest(ctx, newTestQuest(c.ID, domain.QuestTypeCommunity, 1))
		require.NoError(t, err)

		var wg sync.WaitGroup
		var mu sync.Mutex
		successes := 0
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := store.Quests().UpdateQuestProgress(ctx, q.ID, 1, true); err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, successes)
	})
}

func TestActivityRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	charID := uuid.NewString()

	base := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	for i, typ := range []domain.ActivityType{domain.ActivityTypeWorkout, domain.ActivityTypeNutrition, domain.ActivityTypeWorkout} {
		a := &domain.Activity{
			ID:          uuid.NewString(),
			CharacterID: charID,
			Type:        typ,
			Description: "entry",
			XPGained:    10,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		if i > 0 {
			a.Metadata = domain.ActivityMetadata{domain.MetaKeyCaloriesBurned: 120}
		}
		require.NoError(t, store.Activities().InsertActivity(ctx, a))
	}

	all, err := store.Activities().GetActivities(ctx, domain.ActivityFilter{CharacterID: charID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt), "newest first")
	burned, ok := all[0].Metadata.Int64(domain.MetaKeyCaloriesBurned)
	assert.True(t, ok)
	assert.Equal(t, int64(120), burned)
	assert.Nil(t, all[2].Metadata, "absent metadata stays NULL")

	workout := domain.ActivityTypeWorkout
	until := base.Add(2 * time.Hour)
	filtered, err := store.Activities().GetActivities(ctx, domain.ActivityFilter{
		CharacterID: charID,
		Type:        &workout,
		Since:       &base,
		Until:       &until,
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1, "until is exclusive")
	assert.True(t, base.Equal(filtered[0].CreatedAt))

	limited, err := store.Activities().GetActivities(ctx, domain.ActivityFilter{CharacterID: charID, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	other, err := store.Activities().GetActivities(ctx, domain.ActivityFilter{CharacterID: "someone-else"})
	require.NoError(t, err)
	assert.Empty(t, other)

	removed, err := store.Activities().CleanupOldActivities(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestEventLogRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	charID := uuid.NewString()

	clock := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	store.events.now = func() time.Time { return clock }

	require.NoError(t, store.EventLog().LogEvent(ctx, domain.EventTypeQuestCompleted, &charID,
		map[string]interface{}{"quest_id": 7}, map[string]interface{}{"source": "test"}))

	clock = clock.AddDate(0, 0, 40)
	require.NoError(t, store.EventLog().LogEvent(ctx, domain.EventTypeLevelUp, &charID,
		map[string]interface{}{"new_level": 2}, nil))
	require.NoError(t, store.EventLog().LogEvent(ctx, domain.EventTypeXPGranted, nil, nil, nil))

	events, err := store.EventLog().GetEvents(ctx, eventlog.EventFilter{CharacterID: &charID})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeLevelUp, events[0].EventType, "newest first")
	assert.Equal(t, "test", events[1].Metadata["source"])

	eventType := domain.EventTypeLevelUp
	levelUps, err := store.EventLog().GetEvents(ctx, eventlog.EventFilter{CharacterID: &charID, EventType: &eventType})
	require.NoError(t, err)
	require.Len(t, levelUps, 1)
	assert.Equal(t, float64(2), levelUps[0].Payload["new_level"])
	assert.Nil(t, levelUps[0].Metadata)

	orphanType := domain.EventTypeXPGranted
	orphans, err := store.EventLog().GetEvents(ctx, eventlog.EventFilter{EventType: &orphanType})
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Nil(t, orphans[0].CharacterID)
	assert.Empty(t, orphans[0].Payload)

	removed, err := store.EventLog().CleanupOldEvents(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := store.EventLog().GetEvents(ctx, eventlog.EventFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
