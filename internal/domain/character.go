package domain

import "time"

// Character is the XP-bearing entity a user levels up by logging activity.
type Character struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	CurrentXP   int64     `json:"current_xp"`
	NextLevelXP int64     `json:"next_level_xp"`
	TotalXP     int64     `json:"total_xp"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// XPGrantResult is returned by the character ledger after XP settles
type XPGrantResult struct {
	Character     *Character `json:"character"`
	XPGained      int64      `json:"xp_gained"`
	LeveledUp     bool       `json:"leveled_up"`
	PreviousLevel int        `json:"previous_level"`
	LevelsGained  int        `json:"levels_gained"`
}
