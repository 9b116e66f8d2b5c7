package domain

import "time"

// ActivityType classifies an XP-bearing activity record
type ActivityType string

// Activity type constants
const (
	ActivityTypeNutrition ActivityType = "nutrition"
	ActivityTypeWorkout   ActivityType = "workout"
	ActivityTypeHydration ActivityType = "hydration"
	ActivityTypeQuest     ActivityType = "quest"
	ActivityTypeXP        ActivityType = "xp"
)

// Activity metadata keys
const (
	MetaKeyQuestID        = "questId"
	MetaKeyQuestName      = "questName"
	MetaKeyCaloriesBurned = "caloriesBurned"
	MetaKeyCalories       = "calories"
	MetaKeyProtein        = "protein"
	MetaKeyDuration       = "duration"
	MetaKeyWorkoutType    = "workoutType"
	MetaKeyGlasses        = "glasses"
	MetaKeySource         = "source"
)

// ActivityMetadata is the free-form JSON metadata stored with an activity
type ActivityMetadata map[string]interface{}

// Int64 reads a numeric metadata value. JSON round trips turn numbers into
// float64, so every numeric kind is accepted.
func (m ActivityMetadata) Int64(key string) (int64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// Activity is an append-only audit record of an XP-bearing event
type Activity struct {
	ID          string           `json:"id"`
	CharacterID string           `json:"character_id"`
	Type        ActivityType     `json:"type"`
	Description string           `json:"description"`
	XPGained    int64            `json:"xp_gained"`
	Metadata    ActivityMetadata `json:"metadata,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ActivityFilter filters activities for queries. Since is inclusive and
// Until exclusive; Limit <= 0 means no limit.
type ActivityFilter struct {
	CharacterID string
	Type        *ActivityType
	Since       *time.Time
	Until       *time.Time
	Limit       int
}

// ActivityTotals aggregates activities over a period
type ActivityTotals struct {
	CharacterID       string    `json:"character_id"`
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
	XPGained          int64     `json:"xp_gained"`
	CaloriesBurned    int64     `json:"calories_burned"`
	WorkoutsCompleted int       `json:"workouts_completed"`
	QuestsCompleted   int       `json:"quests_completed"`
	ActivityCount     int       `json:"activity_count"`
}
