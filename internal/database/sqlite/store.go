package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/osse101/FitQuest_Go/internal/eventlog"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// Store bundles the SQLite repositories over one database handle
type Store struct {
	db         *sql.DB
	characters *CharacterRepository
	quests     *QuestRepository
	activities *ActivityRepository
	events     *EventLogRepository
}

var _ repository.Store = (*Store)(nil)

// NewStore wires every repository to db. Close closes the handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:         db,
		characters: NewCharacterRepository(db),
		quests:     NewQuestRepository(db),
		activities: NewActivityRepository(db),
		events:     NewEventLogRepository(db),
	}
}

// OpenStore opens and migrates the file at path
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewStore(db), nil
}

func (s *Store) Characters() repository.Character { return s.characters }
func (s *Store) Quests() repository.Quest { return s.quests }
func (s *Store) Activities() repository.Activity { return s.activities }
func (s *Store) EventLog() eventlog.Repository { return s.events }

// Ping checks the file is still reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle
func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		slog.Default().Error(LogMsgCloseFailed, "error", err)
	}
}
