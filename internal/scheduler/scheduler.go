package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/FitQuest_Go/internal/logger"
	"github.com/osse101/FitQuest_Go/internal/worker"
)

const (
	LogMsgJobDisabled  = "Scheduled job disabled"
	LogMsgJobScheduled = "Job scheduled"
)

// Scheduler enqueues jobs onto a worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval. With runNow the job is also
// enqueued immediately. A non-positive interval disables the job.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job, runNow bool) {
	if interval <= 0 {
		logger.Info(LogMsgJobDisabled, "job", worker.JobName(job))
		return
	}
	logger.Info(LogMsgJobScheduled, "job", worker.JobName(job), "interval", interval, "run_now", runNow)
	if runNow {
		s.workerPool.Enqueue(job)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// a full queue drops this tick; the next one retries
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
