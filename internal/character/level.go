package character

import (
	"math"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// NextLevelXP returns the XP needed to clear the given level.
// Levels below StartingLevel are treated as StartingLevel.
func NextLevelXP(level int) int64 {
	if level < StartingLevel {
		level = StartingLevel
	}
	xp := math.Floor(BaseLevelXP * math.Pow(LevelGrowth, float64(level-StartingLevel)))
	if xp >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(xp)
}

// applyXP adds amount to c and resolves every level rollover it causes.
// It returns the number of levels gained.
func applyXP(c *domain.Character, amount int64) int {
	c.CurrentXP += amount
	c.TotalXP += amount

	if c.NextLevelXP <= 0 {
		c.NextLevelXP = NextLevelXP(c.Level)
	}

	gained := 0
	for c.CurrentXP >= c.NextLevelXP {
		c.CurrentXP -= c.NextLevelXP
		c.Level++
		c.NextLevelXP = NextLevelXP(c.Level)
		gained++
	}
	return gained
}
