package worker

import "time"

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed    = "Worker job failed"
	LogMsgWorkerJobCompleted = "Worker job completed"
	LogMsgWorkerQueueFull    = "Worker queue full, job dropped"

	LogMsgRetentionCompleted = "Retention purge completed"
	LogMsgRetentionFailed    = "Retention purge failed"
)

// DefaultJobTimeout bounds a single job run when the pool has none configured
const DefaultJobTimeout = 5 * time.Minute
