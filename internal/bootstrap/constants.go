package bootstrap

import "os"

// DirPermission is used when creating the dead-letter directory
const DirPermission os.FileMode = 0o755

// Log messages for startup
const (
	LogMsgStartingFitQuest     = "Starting FitQuest"
	LogMsgStorageSelected      = "Storage backend selected"
	LogMsgQuestPoolMissing     = "Quest pool file not found, quest issuing disabled"
	LogMsgConfigWarning        = "Configuration warning"
	LogMsgEventSystemReady     = "Event system initialized"
	LogMsgMetricsRegistered    = "Metrics collector registered"
	LogMsgEventLoggerAttached  = "Event logger initialized"
	LogMsgJobsScheduled        = "Cleanup jobs scheduled"
	LogMsgDeadLetterBacklog    = "Dead-letter log holds undelivered events"
	LogMsgDeadLetterUnreadable = "Dead-letter log could not be read"
)

// Error messages for startup
const (
	ErrMsgConnectDatabase       = "failed to connect to database"
	ErrMsgMigrateDatabase       = "failed to migrate database"
	ErrMsgOpenSQLite            = "failed to open sqlite store"
	ErrMsgCreateDeadLetterDir   = "failed to create dead-letter directory"
	ErrMsgCreatePublisher       = "failed to create resilient publisher"
	ErrMsgRegisterMetrics       = "failed to register metrics collector"
	ErrMsgSubscribeEventLogger  = "failed to subscribe event logger"
	ErrMsgUnknownStorageBackend = "unknown storage backend"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgStoppingJobs               = "Stopping background jobs..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
