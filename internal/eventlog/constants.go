package eventlog

// JSON payload field keys
const (
	PayloadKeyCharacterID = "character_id"
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload is not an object, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log field keys - structured logging fields
const (
	LogFieldType        = "type"
	LogFieldCharacterID = "character_id"
	LogFieldError       = "error"
)

// DefaultQueryLimit bounds GetEvents when the filter has no limit
const DefaultQueryLimit = 100
