package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/FitQuest_Go/internal/config"
	"github.com/osse101/FitQuest_Go/internal/event"
)

// InitializeEventSystem creates the in-memory bus wrapped in a resilient
// publisher. Publishing goes through the publisher; subscriptions pass
// through to the bus.
func InitializeEventSystem(cfg *config.Config) (*event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	if dir := filepath.Dir(cfg.EventDeadLetterPath); dir != "." {
		if err := os.MkdirAll(dir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgCreateDeadLetterDir, err)
		}
	}

	if backlog, skipped, err := event.ReadDeadLetters(cfg.EventDeadLetterPath); err != nil {
		slog.Warn(LogMsgDeadLetterUnreadable, "path", cfg.EventDeadLetterPath, "error", err)
	} else if len(backlog) > 0 || skipped > 0 {
		slog.Warn(LogMsgDeadLetterBacklog,
			"path", cfg.EventDeadLetterPath,
			"entries", len(backlog),
			"unreadable_lines", skipped)
	}

	publisher, err := event.NewResilientPublisher(bus, cfg.EventMaxRetries, cfg.EventRetryDelay, cfg.EventDeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreatePublisher, err)
	}

	slog.Info(LogMsgEventSystemReady,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.EventDeadLetterPath)

	return publisher, nil
}
