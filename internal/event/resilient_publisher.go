package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/FitQuest_Go/internal/logger"
)

// ResilientPublisher wraps a Bus. A failed publish is retried in the
// background with exponential backoff and dead-lettered when retries run out.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	wg       sync.WaitGroup
	shutdown chan struct{}
	once     sync.Once
}

// NewResilientPublisher creates a ResilientPublisher writing exhausted events to deadLetterPath
func NewResilientPublisher(inner Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if retryDelay <= 0 {
		retryDelay = RetryInitialDelay
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dlw,
		shutdown:   make(chan struct{}),
	}, nil
}

// Publish delivers the event to the inner bus. A delivery failure is not
// returned to the caller; the event is retried asynchronously instead.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// PublishWithRetry attempts a synchronous publish and schedules retries on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.inner.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", evt.Type,
		"error", err,
		"max_retries", p.maxRetries)

	select {
	case <-p.shutdown:
		logger.Warn(LogMsgEventDroppedShutdown, "event_type", evt.Type)
		p.writeDeadLetter(evt, 1, err)
		return
	default:
	}

	p.wg.Add(1)
	go p.retryLoop(evt, p.redelivery(evt, err), err)
}

// redelivery returns the step each retry runs. When the bus names the
// handlers that failed, only those run again; otherwise the whole event is
// republished.
func (p *ResilientPublisher) redelivery(evt Event, err error) func(context.Context) error {
	var de *DeliveryError
	if !errors.As(err, &de) {
		return func(ctx context.Context) error { return p.inner.Publish(ctx, evt) }
	}
	pending := de.Failed
	return func(ctx context.Context) error {
		failed := deliver(ctx, evt, pending)
		if failed == nil {
			return nil
		}
		pending = failed.Failed
		return failed
	}
}

func (p *ResilientPublisher) retryLoop(evt Event, retry func(context.Context) error, lastErr error) {
	defer p.wg.Done()

	// The request context may already be cancelled.
	ctx := context.Background()

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		select {
		case <-time.After(CalculateRetryDelay(p.retryDelay, attempt)):
		case <-p.shutdown:
			p.writeDeadLetter(evt, attempt, lastErr)
			return
		}

		lastErr = retry(ctx)
		if lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", evt.Type, "attempt", attempt)
			return
		}

		logger.Warn(LogMsgEventRetryFailed, "event_type", evt.Type, "attempt", attempt, "error", lastErr)
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", evt.Type, "attempts", p.maxRetries)
	p.writeDeadLetter(evt, p.maxRetries+1, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, lastErr error) {
	if err := p.deadLetter.Write(evt, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", evt.Type, "error", err)
	}
}

// DeadLetterPath is the file exhausted events are appended to
func (p *ResilientPublisher) DeadLetterPath() string { return p.deadLetter.Path() }

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops pending retries, dead-letters their events and closes the file
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	return p.deadLetter.Close()
}
