package database

// DefaultMinConnections is the warm floor kept open between bursts of tracker traffic
const DefaultMinConnections = 2

// MigrationsDir is the embedded directory holding goose SQL files
const MigrationsDir = "migrations"

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgFailedToMarshalJSON     = "failed to marshal json column"
	ErrMsgFailedToParseJSON       = "failed to parse json column"
)

const (
	LogMsgConnected         = "Connected to postgres"
	LogMsgMigrationsApplied = "Database migrations applied"
)
