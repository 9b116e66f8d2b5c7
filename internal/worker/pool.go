package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FitQuest_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Pool runs queued jobs on a fixed number of goroutines
type Pool struct {
	workers    int
	jobTimeout time.Duration
	jobQueue   chan Job
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int, jobTimeout time.Duration) *Pool {
	if workers < 1 {
		workers = 1
	}
	if jobTimeout <= 0 {
		jobTimeout = DefaultJobTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:    workers,
		jobTimeout: jobTimeout,
		jobQueue:   make(chan Job, queueSize),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(p.ctx, p.jobTimeout)
	defer cancel()

	start := time.Now()
	log := logger.FromContext(ctx)
	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "job", JobName(job), "error", err)
		return
	}
	log.Debug(LogMsgWorkerJobCompleted, "job", JobName(job), "duration", time.Since(start))
}

// Enqueue adds a job to the queue without blocking. It reports false when the
// queue is full or the pool is stopping.
func (p *Pool) Enqueue(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.Warn(LogMsgWorkerQueueFull, "job", JobName(job))
		return false
	}
}

// Stop cancels running jobs and waits for the workers to exit
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

// JobName is the Name() of jobs that have one, otherwise the Go type
func JobName(job Job) string {
	if n, ok := job.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", job)
}
