package config

const (
	// Configuration file paths
	ConfigPathQuestPool = "configs/quests/quest_pool.json"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Defaults
const (
	DefaultPort                  = 8080
	DefaultDBMaxConns            = 10
	DefaultCacheSize             = 1024
	DefaultActivityRetentionDays = 365
	DefaultEventRetentionDays    = 90
	DefaultWorkerCount           = 2
	DefaultEventMaxRetries       = 3
	DefaultDeadLetterPath        = "deadletter.jsonl"
	DefaultSQLitePath            = "fitquest.db"
	DefaultMealXP                = 10
	DefaultWorkoutXP             = 25
	DefaultWaterXPPerGlass       = 5
)
