package sqlite

// DriverName is the database/sql name registered by modernc.org/sqlite
const DriverName = "sqlite"

// dsnPragmas are applied to every connection the pool opens
const dsnPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// MigrationsDir is the embedded directory holding goose SQL files
const MigrationsDir = "migrations"

const (
	ErrMsgPathRequired     = "sqlite path is required"
	ErrMsgFailedToOpen     = "failed to open sqlite database"
	ErrMsgFailedToPing     = "failed to ping sqlite database"
	ErrMsgFailedToMigrate  = "failed to apply sqlite migrations"
	ErrMsgFailedToBeginTx  = "failed to begin transaction"
	ErrMsgFailedToCommitTx = "failed to commit transaction"
)

const (
	ErrMsgFailedToCreateCharacter = "failed to create character"
	ErrMsgFailedToGetCharacter    = "failed to get character"
	ErrMsgFailedToUpdateCharacter = "failed to update character"
)

const (
	ErrMsgFailedToCreateQuest         = "failed to create quest"
	ErrMsgFailedToGetQuest            = "failed to get quest"
	ErrMsgFailedToListQuests          = "failed to list quests"
	ErrMsgFailedToUpdateQuestProgress = "failed to update quest progress"
)

const (
	ErrMsgFailedToInsertActivity   = "failed to insert activity"
	ErrMsgFailedToQueryActivities  = "failed to query activities"
	ErrMsgFailedToCleanupActivites = "failed to cleanup activities"
)

const (
	ErrMsgFailedToLogEvent       = "failed to log event"
	ErrMsgFailedToMarshalPayload = "failed to marshal event payload"
	ErrMsgFailedToQueryEvents    = "failed to query events"
	ErrMsgFailedToCleanupEvents  = "failed to cleanup events"
)

const (
	LogMsgOpened         = "Opened sqlite database"
	LogMsgMigrations     = "SQLite migrations applied"
	LogMsgRollbackFailed = "Failed to rollback transaction"
	LogMsgCloseFailed    = "Failed to close sqlite database"
)

const (
	questColumns = `id, character_id, name, description, quest_type, metric, target_value,
		current_progress, xp_reward, is_completed, is_daily, created_at, completed_at`
	activityColumns  = `id, character_id, type, description, xp_gained, metadata, created_at`
	characterColumns = `id, name, level, current_xp, next_level_xp, total_xp, created_at, updated_at`
	eventColumns     = `id, event_type, character_id, payload, metadata, created_at`
)
