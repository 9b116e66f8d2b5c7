package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	executed atomic.Int32
	err      error
}

func (j *countingJob) Process(ctx context.Context) error {
	j.executed.Add(1)
	return j.err
}

type blockingJob struct {
	started chan struct{}
}

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestPool_RunsJobs(t *testing.T) {
	pool := NewPool(2, 10, time.Second)
	pool.Start()
	defer pool.Stop()

	job := &countingJob{}
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(job))

	assert.Eventually(t, func() bool { return job.executed.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPool_FailingJobDoesNotStopWorker(t *testing.T) {
	pool := NewPool(1, 10, time.Second)
	pool.Start()
	defer pool.Stop()

	failing := &countingJob{err: errors.New("boom")}
	ok := &countingJob{}
	pool.Enqueue(failing)
	pool.Enqueue(ok)

	assert.Eventually(t, func() bool { return ok.executed.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), failing.executed.Load())
}

func TestPool_EnqueueFullQueue(t *testing.T) {
	pool := NewPool(1, 1, time.Second)

	assert.True(t, pool.Enqueue(&countingJob{}))
	assert.False(t, pool.Enqueue(&countingJob{}), "queue of one is full before workers start")
}

func TestPool_StopCancelsRunningJob(t *testing.T) {
	pool := NewPool(1, 1, time.Minute)
	pool.Start()

	job := &blockingJob{started: make(chan struct{})}
	require.True(t, pool.Enqueue(job))
	<-job.started

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the running job")
	}
	assert.False(t, pool.Enqueue(&countingJob{}))
}
