package domain

// ActionKind names a logged action that may advance quests
type ActionKind string

// Action kind constants
const (
	ActionLogMeal          ActionKind = "log_meal"
	ActionLogWorkout       ActionKind = "log_workout"
	ActionLogWater         ActionKind = "log_water"
	ActionWorkoutDuration  ActionKind = "workout_duration"
	ActionCompleteCardio   ActionKind = "complete_cardio"
	ActionHitProteinTarget ActionKind = "hit_protein_target"
	ActionHitCalorieTarget ActionKind = "hit_calorie_target"
	ActionAddRecipe        ActionKind = "add_recipe"
)

// AllActionKinds lists every action kind the classifier knows about
var AllActionKinds = []ActionKind{
	ActionLogMeal,
	ActionLogWorkout,
	ActionLogWater,
	ActionWorkoutDuration,
	ActionCompleteCardio,
	ActionHitProteinTarget,
	ActionHitCalorieTarget,
	ActionAddRecipe,
}

// Workout types that count towards strength quests
const (
	WorkoutTypeStrength      = "strength"
	WorkoutTypeResistance    = "resistance"
	WorkoutTypeWeightlifting = "weightlifting"
)

// ActionMetadata carries the optional structured details of an action.
// Nil pointers mean "not provided", which is distinct from zero.
type ActionMetadata struct {
	Calories       *int64 `json:"calories,omitempty"`
	Protein        *int64 `json:"protein,omitempty"`
	Duration       *int64 `json:"duration,omitempty"`
	CaloriesBurned *int64 `json:"calories_burned,omitempty"`
	WorkoutType    string `json:"workout_type,omitempty"`
}

// Action is a single classified input to the quest coordinator
type Action struct {
	CharacterID string         `json:"character_id"`
	Kind        ActionKind     `json:"kind"`
	Value       int64          `json:"value"`
	Metadata    ActionMetadata `json:"metadata"`
}

// ValidActionKind reports whether k is a known action kind
func ValidActionKind(k ActionKind) bool {
	for _, known := range AllActionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 {
	return &v
}
