package concurrency

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithLock_SerializesPerKey(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("char-1", func() error {
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, lm.Len(), "idle keys are released")
}

func TestWithLock_DifferentKeysDoNotBlock(t *testing.T) {
	lm := NewLockManager()
	holding := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = lm.WithLock("char-1", func() error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	done := make(chan struct{})
	go func() {
		_ = lm.WithLock("char-2", func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("char-2 blocked behind char-1")
	}
	assert.Equal(t, 1, lm.Len())
	close(release)
}

func TestWithLock_ReturnsError(t *testing.T) {
	lm := NewLockManager()
	boom := errors.New("boom")

	assert.ErrorIs(t, lm.WithLock("k", func() error { return boom }), boom)
	assert.Equal(t, 0, lm.Len())
}
