package activity

// Listing limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Log messages - service
const (
	LogMsgActivityRecorded = "Activity recorded"
	LogMsgPublishFailed    = "Failed to publish activity event"
)

// LogMsgCleanupDisabled is logged when a purge runs with retention switched off
const LogMsgCleanupDisabled = "Activity retention disabled, skipping cleanup"
