package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingCharacterID = "Missing character id"
	ErrMsgInvalidQuestID     = "Invalid quest id"
	ErrMsgInvalidDate        = "Invalid date, expected YYYY-MM-DD"
	ErrMsgInvalidLimit       = "Invalid limit parameter"
	ErrMsgInvalidType        = "Invalid type parameter"
	ErrMsgInvalidTimeRange   = "Invalid since/until parameter, expected RFC3339"
)

// Success and warning messages for API responses
const (
	MsgQuestsIssued      = "Quests issued"
	MsgPartialFailure    = "Some quests could not be updated"
	MsgNoQuestsAvailable = "No quests available to issue"
)

// Operation names used in logs
const (
	OpCreateCharacter = "Create character"
	OpGetCharacter    = "Get character"
	OpGrantXP         = "Grant XP"
	OpApplyAction     = "Apply action"
	OpLogMeal         = "Log meal"
	OpLogWorkout      = "Log workout"
	OpLogHydration    = "Log hydration"
	OpGetQuest        = "Get quest"
	OpGetQuests       = "Get quests"
	OpGetActiveQuests = "Get active quests"
	OpCreateQuest     = "Create quest"
	OpIssueQuests     = "Issue quests"
	OpListActivities  = "List activities"
	OpDailyStats      = "Daily stats"
	OpWeeklyStats     = "Weekly stats"
	OpListEvents      = "List events"
)

// Date format accepted by the stats endpoints
const DateLayout = "2006-01-02"
