package quest

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

var allQuestTypes = []domain.QuestType{
	domain.QuestTypeCardio,
	domain.QuestTypeNutrition,
	domain.QuestTypeHydration,
	domain.QuestTypeStrength,
	domain.QuestTypeCommunity,
}

func optionalInt64(lo, hi int64) *rapid.Generator[*int64] {
	return rapid.Custom(func(t *rapid.T) *int64 {
		if !rapid.Bool().Draw(t, "present") {
			return nil
		}
		v := rapid.Int64Range(lo, hi).Draw(t, "value")
		return &v
	})
}

func actionMetadata() *rapid.Generator[domain.ActionMetadata] {
	return rapid.Custom(func(t *rapid.T) domain.ActionMetadata {
		return domain.ActionMetadata{
			Calories:       optionalInt64(-500, 3000).Draw(t, "calories"),
			Protein:        optionalInt64(-50, 300).Draw(t, "protein"),
			Duration:       optionalInt64(-60, 600).Draw(t, "duration"),
			CaloriesBurned: optionalInt64(0, 2000).Draw(t, "calories_burned"),
			WorkoutType:    rapid.SampledFrom([]string{"", "cardio", "Strength", " weightlifting ", "yoga"}).Draw(t, "workout_type"),
		}
	})
}

func TestProgressDelta_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := domain.Quest{
			Type:        rapid.SampledFrom(allQuestTypes).Draw(t, "type"),
			Metric:      rapid.SampledFrom([]domain.QuestMetric{"", domain.QuestMetricProteinGrams, domain.QuestMetricCaloriesScaled, domain.QuestMetricEntryCount}).Draw(t, "metric"),
			Description: rapid.SampledFrom([]string{"", "Eat 120g protein", "Log meals"}).Draw(t, "description"),
			TargetValue: rapid.Int64Range(1, 100).Draw(t, "target"),
		}
		kind := rapid.SampledFrom(domain.AllActionKinds).Draw(t, "kind")
		value := rapid.Int64Range(-100, 1000).Draw(t, "value")
		meta := actionMetadata().Draw(t, "meta")

		delta := ProgressDelta(q, kind, value, meta)

		if delta < 0 {
			t.Fatalf("negative delta %d", delta)
		}
		if again := ProgressDelta(q, kind, value, meta); again != delta {
			t.Fatalf("delta changed between calls: %d then %d", delta, again)
		}
		if !MatchesQuestType(q.Type, kind, meta) && delta != 0 {
			t.Fatalf("%s advanced a %s quest by %d", kind, q.Type, delta)
		}
	})
}
