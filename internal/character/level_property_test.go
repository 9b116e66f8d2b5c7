package character

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// xpSpent is the XP consumed by clearing every level below level
func xpSpent(level int) int64 {
	var total int64
	for l := StartingLevel; l < level; l++ {
		total += NextLevelXP(l)
	}
	return total
}

func TestApplyXP_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := &domain.Character{Level: StartingLevel, NextLevelXP: NextLevelXP(StartingLevel)}
		grants := rapid.SliceOfN(rapid.Int64Range(0, 5000), 0, 40).Draw(t, "grants")

		var granted int64
		for _, amount := range grants {
			before := c.Level
			gained := applyXP(c, amount)
			granted += amount

			if c.Level != before+gained {
				t.Fatalf("level %d after gaining %d from %d", c.Level, gained, before)
			}
			if c.CurrentXP < 0 || c.CurrentXP >= c.NextLevelXP {
				t.Fatalf("current xp %d outside [0, %d)", c.CurrentXP, c.NextLevelXP)
			}
			if c.NextLevelXP != NextLevelXP(c.Level) {
				t.Fatalf("next level xp %d, want %d", c.NextLevelXP, NextLevelXP(c.Level))
			}
		}

		if c.TotalXP != granted {
			t.Fatalf("total xp %d, granted %d", c.TotalXP, granted)
		}
		if spent := xpSpent(c.Level); spent+c.CurrentXP != c.TotalXP {
			t.Fatalf("levels consumed %d + current %d != total %d", spent, c.CurrentXP, c.TotalXP)
		}
	})
}

// Splitting a grant never changes where the character lands
func TestApplyXP_SplitGrantsAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := rapid.Int64Range(0, 20000).Draw(t, "amount")
		split := rapid.Int64Range(0, amount).Draw(t, "split")

		whole := &domain.Character{Level: StartingLevel}
		applyXP(whole, amount)

		parts := &domain.Character{Level: StartingLevel}
		applyXP(parts, split)
		applyXP(parts, amount-split)

		if *whole != *parts {
			t.Fatalf("whole %+v, split %+v", *whole, *parts)
		}
	})
}
