package progress

// XP sources reported on character.xp_granted events and the xp_granted metric
const (
	SourceQuest     = "quest"
	SourceManual    = "manual"
	SourceMeal      = "meal"
	SourceWorkout   = "workout"
	SourceHydration = "hydration"
)

// Log messages
const (
	LogMsgActionApplied       = "Action applied"
	LogMsgQuestProgressed     = "Quest progressed"
	LogMsgQuestCompleted      = "Quest completed"
	LogMsgQuestUpdateFailed   = "Quest update failed"
	LogMsgQuestRewardFailed   = "Quest reward failed"
	LogMsgQuestActivityFailed = "Quest activity could not be recorded"
	LogMsgPublishFailed       = "Failed to publish event"
)
