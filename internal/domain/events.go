package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "quest.completed")
const (
	// EventTypeQuestCompleted is published once per quest instance on its completion transition
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeQuestProgressed is published for every quest whose progress changed
	EventTypeQuestProgressed = "quest.progressed"

	// EventTypeXPGranted is published whenever the ledger settles a grant
	EventTypeXPGranted = "character.xp_granted"

	// EventTypeLevelUp is published when a grant crosses at least one level
	EventTypeLevelUp = "character.level_up"

	// EventTypeActivityRecorded is published after an activity is appended
	EventTypeActivityRecorded = "activity.recorded"
)
