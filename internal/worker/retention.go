package worker

import (
	"context"
	"time"

	"github.com/osse101/FitQuest_Go/internal/logger"
)

// PurgeFunc deletes records older than retentionDays and reports how many went
type PurgeFunc func(ctx context.Context, retentionDays int) (int64, error)

// RetentionJob runs a purge with a fixed retention window each time it is processed
type RetentionJob struct {
	name          string
	retentionDays int
	purge         PurgeFunc
}

// NewRetentionJob binds a purge function to a retention window
func NewRetentionJob(name string, retentionDays int, purge PurgeFunc) *RetentionJob {
	return &RetentionJob{name: name, retentionDays: retentionDays, purge: purge}
}

// Name identifies the job in worker logs
func (j *RetentionJob) Name() string { return j.name }

// Process runs the purge once
func (j *RetentionJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With("job", j.name, "retention_days", j.retentionDays)

	start := time.Now()
	deleted, err := j.purge(ctx, j.retentionDays)
	elapsed := time.Since(start)
	if err != nil {
		log.Error(LogMsgRetentionFailed, "error", err, "duration", elapsed)
		return err
	}

	log.Info(LogMsgRetentionCompleted, "deleted", deleted, "duration", elapsed)
	return nil
}
