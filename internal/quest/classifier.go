package quest

import (
	"strings"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// MatchesQuestType reports whether an action of the given kind can advance
// a quest of questType. Strength quests only accept strength-like workouts.
func MatchesQuestType(questType domain.QuestType, kind domain.ActionKind, meta domain.ActionMetadata) bool {
	switch questType {
	case domain.QuestTypeHydration:
		return kind == domain.ActionLogWater
	case domain.QuestTypeCardio:
		return kind == domain.ActionCompleteCardio ||
			kind == domain.ActionWorkoutDuration ||
			kind == domain.ActionLogWorkout
	case domain.QuestTypeNutrition:
		return kind == domain.ActionLogMeal ||
			kind == domain.ActionHitProteinTarget ||
			kind == domain.ActionHitCalorieTarget
	case domain.QuestTypeStrength:
		return kind == domain.ActionLogWorkout && IsStrengthWorkout(meta.WorkoutType)
	case domain.QuestTypeCommunity:
		return kind == domain.ActionAddRecipe
	}
	return false
}

// IsStrengthWorkout reports whether workoutType counts towards strength quests
func IsStrengthWorkout(workoutType string) bool {
	switch strings.ToLower(strings.TrimSpace(workoutType)) {
	case domain.WorkoutTypeStrength, domain.WorkoutTypeResistance, domain.WorkoutTypeWeightlifting:
		return true
	}
	return false
}

// ProgressDelta computes how far an action advances quest. It never returns
// a negative number and never clamps to the target; that is the caller's job.
func ProgressDelta(quest domain.Quest, kind domain.ActionKind, value int64, meta domain.ActionMetadata) int64 {
	if !MatchesQuestType(quest.Type, kind, meta) {
		return 0
	}

	var delta int64
	switch quest.Type {
	case domain.QuestTypeHydration:
		delta = value

	case domain.QuestTypeCardio:
		if kind == domain.ActionLogWorkout {
			delta = durationOrOne(meta)
		} else {
			delta = value
		}

	case domain.QuestTypeNutrition:
		if kind == domain.ActionLogMeal {
			delta = mealDelta(EffectiveMetric(quest), meta)
		} else {
			delta = value
		}

	case domain.QuestTypeStrength:
		delta = durationOrOne(meta)

	case domain.QuestTypeCommunity:
		delta = value
		if delta == 0 {
			delta = 1
		}
	}

	if delta < 0 {
		return 0
	}
	return delta
}

// EffectiveMetric returns the quest's nutrition metric, inferring one for
// quests stored before the metric was recorded
func EffectiveMetric(quest domain.Quest) domain.QuestMetric {
	if quest.Metric != "" {
		return quest.Metric
	}
	return InferMetric(quest.Description)
}

// InferMetric picks the nutrition metric implied by a quest description
func InferMetric(description string) domain.QuestMetric {
	if strings.Contains(strings.ToLower(description), "protein") {
		return domain.QuestMetricProteinGrams
	}
	return domain.QuestMetricCaloriesScaled
}

func mealDelta(metric domain.QuestMetric, meta domain.ActionMetadata) int64 {
	switch metric {
	case domain.QuestMetricEntryCount:
		return 1
	case domain.QuestMetricProteinGrams:
		if meta.Protein != nil {
			return *meta.Protein
		}
	}
	if meta.Calories != nil {
		return *meta.Calories / CaloriesPerProgressPoint
	}
	return 1
}

func durationOrOne(meta domain.ActionMetadata) int64 {
	if meta.Duration != nil {
		return *meta.Duration
	}
	return 1
}
