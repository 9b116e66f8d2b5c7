package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeForeignKeyViolation is raised when a quest references a missing character
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Character Operations
const (
	ErrMsgFailedToCreateCharacter = "failed to create character"
	ErrMsgFailedToGetCharacter    = "failed to get character"
	ErrMsgFailedToUpdateCharacter = "failed to update character"
)

// Error Messages - Quest Operations
const (
	ErrMsgFailedToCreateQuest         = "failed to create quest"
	ErrMsgFailedToGetQuest            = "failed to get quest"
	ErrMsgFailedToListQuests          = "failed to list quests"
	ErrMsgFailedToLockQuest           = "failed to lock quest"
	ErrMsgFailedToUpdateQuestProgress = "failed to update quest progress"
)

// Error Messages - Activity Operations
const (
	ErrMsgFailedToInsertActivity   = "failed to insert activity"
	ErrMsgFailedToQueryActivities  = "failed to query activities"
	ErrMsgFailedToCleanupActivites = "failed to cleanup activities"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToLogEvent       = "failed to log event"
	ErrMsgFailedToMarshalPayload = "failed to marshal event payload"
	ErrMsgFailedToQueryEvents    = "failed to query events"
	ErrMsgFailedToCleanupEvents  = "failed to cleanup events"
)

// Column lists shared by the quest queries
const (
	questColumns = `id, character_id, name, description, quest_type, metric, target_value,
		current_progress, xp_reward, is_completed, is_daily, created_at, completed_at`
	activityColumns  = `id, character_id, type, description, xp_gained, metadata, created_at`
	characterColumns = `id, name, level, current_xp, next_level_xp, total_xp, created_at, updated_at`
	eventColumns     = `id, event_type, character_id, payload, metadata, created_at`
)
