package domain

import "time"

// QuestType classifies which logged actions can advance a quest
type QuestType string

// Quest type constants
const (
	QuestTypeCardio    QuestType = "cardio"
	QuestTypeNutrition QuestType = "nutrition"
	QuestTypeHydration QuestType = "hydration"
	QuestTypeStrength  QuestType = "strength"
	QuestTypeCommunity QuestType = "community"
)

// QuestMetric selects how a nutrition quest scores a logged meal.
// It is decided when the quest is created.
type QuestMetric string

const (
	QuestMetricProteinGrams   QuestMetric = "protein_grams"
	QuestMetricCaloriesScaled QuestMetric = "calories_scaled"
	QuestMetricEntryCount     QuestMetric = "entry_count"
)

// Quest is a goal-tracked challenge owned by a character.
// IsCompleted is terminal: once set, progress is never touched again.
type Quest struct {
	ID              int64       `json:"id"`
	CharacterID     string      `json:"character_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Type            QuestType   `json:"type"`
	Metric          QuestMetric `json:"metric,omitempty"`
	TargetValue     int64       `json:"target_value"`
	CurrentProgress int64       `json:"current_progress"`
	XPReward        int64       `json:"xp_reward"`
	IsCompleted     bool        `json:"is_completed"`
	IsDaily         bool        `json:"is_daily"`
	CreatedAt       time.Time   `json:"created_at"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
}

// QuestUpdateResult describes one quest changed by an action
type QuestUpdateResult struct {
	QuestID         int64  `json:"quest_id"`
	QuestName       string `json:"quest_name"`
	CurrentProgress int64  `json:"current_progress"`
	TargetValue     int64  `json:"target_value"`
	Completed       bool   `json:"completed"`
	XPAwarded       *int64 `json:"xp_awarded,omitempty"`
	LeveledUp       bool   `json:"leveled_up,omitempty"`
}

// QuestTemplate represents a quest template from config
type QuestTemplate struct {
	QuestKey    string      `json:"quest_key"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        QuestType   `json:"type"`
	Metric      QuestMetric `json:"metric,omitempty"`
	TargetValue int64       `json:"target_value"`
	XPReward    int64       `json:"xp_reward"`
	Daily       bool        `json:"daily"`
}

// QuestPoolConfig represents the quest pool configuration
type QuestPoolConfig struct {
	Version   string          `json:"version"`
	QuestPool []QuestTemplate `json:"quest_pool"`
}

// ValidQuestType reports whether t is one of the known quest types
func ValidQuestType(t QuestType) bool {
	switch t {
	case QuestTypeCardio, QuestTypeNutrition, QuestTypeHydration, QuestTypeStrength, QuestTypeCommunity:
		return true
	}
	return false
}

// ValidQuestMetric reports whether m is a known metric (empty is allowed)
func ValidQuestMetric(m QuestMetric) bool {
	switch m {
	case "", QuestMetricProteinGrams, QuestMetricCaloriesScaled, QuestMetricEntryCount:
		return true
	}
	return false
}
