package quest

// CaloriesPerProgressPoint scales logged calories into quest progress
const CaloriesPerProgressPoint = 10

// Log messages
const (
	LogMsgQuestCreated     = "Quest created"
	LogMsgQuestPoolLoaded  = "Quest pool loaded"
	LogMsgQuestsIssued     = "Issued quests from pool"
	LogMsgTemplateSkipped  = "Skipping quest template already active for character"
	LogMsgProgressRejected = "Rejected quest progress write"
)
