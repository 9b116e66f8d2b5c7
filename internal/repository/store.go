package repository

import (
	"context"

	"github.com/osse101/FitQuest_Go/internal/eventlog"
)

// Store bundles the repositories backing the engine
type Store interface {
	Characters() Character
	Quests() Quest
	Activities() Activity
	EventLog() eventlog.Repository
	Ping(ctx context.Context) error
	Close()
}
