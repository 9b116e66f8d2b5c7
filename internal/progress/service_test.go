package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FitQuest_Go/internal/activity"
	"github.com/osse101/FitQuest_Go/internal/character"
	"github.com/osse101/FitQuest_Go/internal/database/memory"
	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/quest"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// eventRecorder captures every event published on the bus
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) handle(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) count(t event.Type) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// failingQuestRepo fails progress writes for the listed quest ids
type failingQuestRepo struct {
	repository.Quest
	failIDs map[int64]bool
}

func (r *failingQuestRepo) UpdateQuestProgress(ctx context.Context, id int64, progress int64, completed bool) error {
	if r.failIDs[id] {
		return errors.New("disk on fire")
	}
	return r.Quest.UpdateQuestProgress(ctx, id, progress, completed)
}

var testPool = []domain.QuestTemplate{
	{QuestKey: "daily_water", Name: "Drink 8 glasses", Type: domain.QuestTypeHydration, TargetValue: 8, XPReward: 50, Daily: true},
	{QuestKey: "daily_steps", Name: "Cardio 30", Type: domain.QuestTypeCardio, TargetValue: 30, XPReward: 40, Daily: true},
	{QuestKey: "lift_week", Name: "Lift 5 times", Type: domain.QuestTypeStrength, TargetValue: 5, XPReward: 120},
}

type fixture struct {
	svc        Service
	store      *memory.Store
	characters character.Service
	quests     quest.Service
	activities activity.Service
	questRepo  *failingQuestRepo
	recorder   *eventRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	bus := event.NewMemoryBus()
	rec := &eventRecorder{}
	for _, typ := range []event.Type{event.QuestCompleted, event.QuestProgressed, event.XPGranted, event.LevelUp, event.ActivityRecorded} {
		bus.Subscribe(typ, rec.handle)
	}

	questRepo := &failingQuestRepo{Quest: store.Quests(), failIDs: map[int64]bool{}}
	chars := character.NewService(store.Characters(), 100, time.Minute)
	quests := quest.NewService(questRepo, testPool)
	acts := activity.NewService(store.Activities(), bus, time.UTC)

	return &fixture{
		svc:        NewService(chars, quests, acts, bus, XPRates{Meal: 10, Workout: 25, WaterPerGlass: 5}),
		store:      store,
		characters: chars,
		quests:     quests,
		activities: acts,
		questRepo:  questRepo,
		recorder:   rec,
	}
}

func (f *fixture) character(t *testing.T) *domain.Character {
	t.Helper()
	c, err := f.characters.CreateCharacter(context.Background(), "Hero")
	require.NoError(t, err)
	return c
}

func (f *fixture) quest(t *testing.T, characterID string, qt domain.QuestType, target, reward int64) *domain.Quest {
	t.Helper()
	q, err := f.quests.CreateQuest(context.Background(), &domain.Quest{
		CharacterID: characterID,
		Name:        string(qt) + " quest",
		Type:        qt,
		TargetValue: target,
		XPReward:    reward,
	})
	require.NoError(t, err)
	return q
}

func (f *fixture) activitiesOf(t *testing.T, characterID string, typ domain.ActivityType) []domain.Activity {
	t.Helper()
	list, err := f.store.Activities().GetActivities(context.Background(), domain.ActivityFilter{CharacterID: characterID, Type: &typ})
	require.NoError(t, err)
	return list
}

func TestApplyAction_HydrationCompletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	q := f.quest(t, c.ID, domain.QuestTypeHydration, 8, 50)

	results, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionLogWater, 3, domain.ActionMetadata{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(3), results[0].CurrentProgress)
	assert.False(t, results[0].Completed)
	assert.Nil(t, results[0].XPAwarded)

	results, err = f.svc.ApplyAction(ctx, c.ID, domain.ActionLogWater, 5, domain.ActionMetadata{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, q.ID, results[0].QuestID)
	assert.Equal(t, int64(8), results[0].CurrentProgress)
	assert.True(t, results[0].Completed)
	require.NotNil(t, results[0].XPAwarded)
	assert.Equal(t, int64(50), *results[0].XPAwarded)

	char, err := f.characters.GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), char.TotalXP)

	questActs := f.activitiesOf(t, c.ID, domain.ActivityTypeQuest)
	require.Len(t, questActs, 1)
	assert.Equal(t, int64(50), questActs[0].XPGained)
	id, ok := questActs[0].Metadata.Int64(domain.MetaKeyQuestID)
	assert.True(t, ok)
	assert.Equal(t, q.ID, id)
	assert.Equal(t, q.Name, questActs[0].Metadata[domain.MetaKeyQuestName])

	assert.Equal(t, 1, f.recorder.count(event.QuestCompleted))
	assert.Equal(t, 2, f.recorder.count(event.QuestProgressed))
}

func TestApplyAction_CardioSaturatesAtTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	f.quest(t, c.ID, domain.QuestTypeCardio, 30, 40)

	_, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionWorkoutDuration, 20, domain.ActionMetadata{})
	require.NoError(t, err)

	results, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionCompleteCardio, 15, domain.ActionMetadata{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(30), results[0].CurrentProgress)
	assert.True(t, results[0].Completed)
}

func TestApplyAction_RewardRollsOverLevels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)

	_, err := f.svc.GrantXP(ctx, c.ID, 90, "warm up")
	require.NoError(t, err)
	f.quest(t, c.ID, domain.QuestTypeCommunity, 1, 250)

	results, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionAddRecipe, 0, domain.ActionMetadata{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].LeveledUp)

	char, err := f.characters.GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, char.Level)
	assert.Equal(t, int64(90), char.CurrentXP)
	assert.Equal(t, int64(225), char.NextLevelXP)
	assert.Equal(t, int64(340), char.TotalXP)
	assert.Equal(t, 1, f.recorder.count(event.LevelUp))
}

func TestApplyAction_NoMatchIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	q := f.quest(t, c.ID, domain.QuestTypeStrength, 3, 30)

	results, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionLogWorkout, 1, domain.ActionMetadata{WorkoutType: "yoga"})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = f.svc.ApplyAction(ctx, c.ID, domain.ActionKind("jump_rope"), 10, domain.ActionMetadata{})
	require.NoError(t, err)
	assert.Empty(t, results)

	unchanged, err := f.quests.GetQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.Zero(t, unchanged.CurrentProgress)

	char, err := f.characters.GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, char.TotalXP)
	assert.Empty(t, f.activitiesOf(t, c.ID, domain.ActivityTypeQuest))
}

func TestApplyAction_CompletionRewardsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	f.quest(t, c.ID, domain.QuestTypeHydration, 2, 20)

	_, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionLogWater, 5, domain.ActionMetadata{})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		results, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionLogWater, 5, domain.ActionMetadata{})
		require.NoError(t, err)
		assert.Empty(t, results, "completed quests are never touched again")
	}

	char, err := f.characters.GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), char.TotalXP)
	assert.Equal(t, 1, f.recorder.count(event.QuestCompleted))
}

func TestApplyAction_UnknownCharacterWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	q := f.quest(t, c.ID, domain.QuestTypeHydration, 8, 50)

	_, err := f.svc.ApplyAction(ctx, "ghost", domain.ActionLogWater, 3, domain.ActionMetadata{})
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	unchanged, err := f.quests.GetQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.Zero(t, unchanged.CurrentProgress)
	assert.Empty(t, f.recorder.events)
}

func TestApplyAction_NegativeValueRejected(t *testing.T) {
	f := newFixture(t)
	c := f.character(t)

	_, err := f.svc.ApplyAction(context.Background(), c.ID, domain.ActionLogWater, -1, domain.ActionMetadata{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyAction_PartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	broken := f.quest(t, c.ID, domain.QuestTypeCardio, 30, 10)
	healthy := f.quest(t, c.ID, domain.QuestTypeCardio, 60, 10)
	f.questRepo.failIDs[broken.ID] = true

	results, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionWorkoutDuration, 10, domain.ActionMetadata{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPartialFailure)
	require.Len(t, results, 1)
	assert.Equal(t, healthy.ID, results[0].QuestID)
	assert.Equal(t, int64(10), results[0].CurrentProgress)
}

func TestApplyAction_XPConservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	f.quest(t, c.ID, domain.QuestTypeHydration, 4, 35)
	f.quest(t, c.ID, domain.QuestTypeCardio, 30, 60)
	f.quest(t, c.ID, domain.QuestTypeNutrition, 2, 15)

	_, err := f.svc.GrantXP(ctx, c.ID, 12, "")
	require.NoError(t, err)
	_, err = f.svc.LogHydration(ctx, c.ID, 4)
	require.NoError(t, err)
	_, err = f.svc.LogWorkout(ctx, c.ID, WorkoutLog{WorkoutType: "running", Duration: domain.Int64Ptr(45)})
	require.NoError(t, err)
	_, err = f.svc.LogMeal(ctx, c.ID, MealLog{Description: "oats", Calories: domain.Int64Ptr(400)})
	require.NoError(t, err)

	all, err := f.store.Activities().GetActivities(ctx, domain.ActivityFilter{CharacterID: c.ID})
	require.NoError(t, err)
	var sum int64
	for _, a := range all {
		sum += a.XPGained
	}

	char, err := f.characters.GetCharacter(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, sum, char.TotalXP, "every granted point has a matching activity")
	// 12 manual, 20 water, 35 hydration quest, 25 workout, 60 cardio quest, 10 meal, 15 nutrition quest
	assert.Equal(t, int64(177), char.TotalXP)
}

func TestTracker_LogWorkoutAdvancesStrength(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	f.quest(t, c.ID, domain.QuestTypeStrength, 60, 30)

	res, err := f.svc.LogWorkout(ctx, c.ID, WorkoutLog{WorkoutType: "weightlifting", Duration: domain.Int64Ptr(40), CaloriesBurned: domain.Int64Ptr(300)})
	require.NoError(t, err)
	assert.Equal(t, int64(25), res.XP.XPGained)
	assert.Equal(t, domain.ActivityTypeWorkout, res.Activity.Type)
	assert.Equal(t, "Weightlifting workout", res.Activity.Description)
	require.Len(t, res.QuestUpdates, 1)
	assert.Equal(t, int64(40), res.QuestUpdates[0].CurrentProgress)

	_, err = f.svc.LogWorkout(ctx, c.ID, WorkoutLog{Duration: domain.Int64Ptr(-5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTracker_LogMealUsesQuestMetric(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	protein, err := f.quests.CreateQuest(ctx, &domain.Quest{
		CharacterID: c.ID, Name: "Protein", Description: "Eat 100g of protein",
		Type: domain.QuestTypeNutrition, TargetValue: 100, XPReward: 40,
	})
	require.NoError(t, err)
	require.Equal(t, domain.QuestMetricProteinGrams, protein.Metric)

	res, err := f.svc.LogMeal(ctx, c.ID, MealLog{Description: "chicken", Calories: domain.Int64Ptr(500), Protein: domain.Int64Ptr(35)})
	require.NoError(t, err)
	require.Len(t, res.QuestUpdates, 1)
	assert.Equal(t, int64(35), res.QuestUpdates[0].CurrentProgress)
	assert.Equal(t, int64(10), res.Activity.XPGained)
}

func TestTracker_LogHydrationValidates(t *testing.T) {
	f := newFixture(t)
	c := f.character(t)

	_, err := f.svc.LogHydration(context.Background(), c.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.LogHydration(context.Background(), "ghost", 2)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestGetActiveQuests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	first := f.quest(t, c.ID, domain.QuestTypeHydration, 1, 5)
	second := f.quest(t, c.ID, domain.QuestTypeCardio, 10, 5)

	_, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionLogWater, 1, domain.ActionMetadata{})
	require.NoError(t, err)

	active, err := f.svc.GetActiveQuests(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
	assert.NotEqual(t, first.ID, active[0].ID)

	_, err = f.svc.GetActiveQuests(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestApplyAction_ConcurrentCallsSerializePerCharacter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	other := f.character(t)
	f.quest(t, c.ID, domain.QuestTypeHydration, 50, 70)
	f.quest(t, other.ID, domain.QuestTypeHydration, 50, 70)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionLogWater, 1, domain.ActionMetadata{})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := f.svc.ApplyAction(ctx, other.ID, domain.ActionLogWater, 1, domain.ActionMetadata{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	for _, id := range []string{c.ID, other.ID} {
		quests, err := f.quests.GetQuests(ctx, id)
		require.NoError(t, err)
		require.Len(t, quests, 1)
		assert.True(t, quests[0].IsCompleted)
		assert.Equal(t, int64(50), quests[0].CurrentProgress)

		char, err := f.characters.GetCharacter(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(70), char.TotalXP, "reward granted exactly once")
	}
	assert.Equal(t, 2, f.recorder.count(event.QuestCompleted))
}

func TestGetQuests_IncludesCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)
	f.quest(t, c.ID, domain.QuestTypeHydration, 1, 5)
	f.quest(t, c.ID, domain.QuestTypeCardio, 10, 5)

	_, err := f.svc.ApplyAction(ctx, c.ID, domain.ActionLogWater, 1, domain.ActionMetadata{})
	require.NoError(t, err)

	all, err := f.svc.GetQuests(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsCompleted)

	_, err = f.svc.GetQuests(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestIssueQuests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)

	issued, err := f.svc.IssueQuests(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Len(t, issued, 2)

	again, err := f.svc.IssueQuests(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Empty(t, again, "active daily quests are not issued twice")

	_, err = f.svc.IssueQuests(ctx, "ghost", true)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
	all, err := f.store.Quests().GetQuestsByCharacter(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIssueQuests_ConcurrentCallsIssueEachTemplateOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.character(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.IssueQuests(ctx, c.ID, true)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	active, err := f.svc.GetActiveQuests(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	names := map[string]bool{}
	for _, q := range active {
		names[q.Name] = true
	}
	assert.True(t, names["Drink 8 glasses"])
	assert.True(t, names["Cardio 30"])
}
