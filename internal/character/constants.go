package character

// Level curve: XP to clear level N is floor(BaseLevelXP * LevelGrowth^(N-1))
const (
	BaseLevelXP   = 100
	LevelGrowth   = 1.5
	StartingLevel = 1
)

// Cache defaults used when NewService gets non-positive settings
const (
	DefaultCacheSize = 1024
)

// Log messages
const (
	LogMsgCharacterCreated = "Character created"
	LogMsgXPGranted        = "XP granted"
	LogMsgLevelUp          = "Character leveled up"
)
