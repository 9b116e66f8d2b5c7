package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FitQuest_Go/internal/eventlog"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// Store bundles the PostgreSQL repositories over a single pool
type Store struct {
	pool       *pgxpool.Pool
	characters *CharacterRepository
	quests     *QuestRepository
	activities *ActivityRepository
	events     *EventLogRepository
}

var _ repository.Store = (*Store)(nil)

// NewStore wires every repository to pool. Close releases the pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:       pool,
		characters: NewCharacterRepository(pool),
		quests:     NewQuestRepository(pool),
		activities: NewActivityRepository(pool),
		events:     NewEventLogRepository(pool),
	}
}

func (s *Store) Characters() repository.Character { return s.characters }
func (s *Store) Quests() repository.Quest { return s.quests }
func (s *Store) Activities() repository.Activity { return s.activities }

// EventLog returns the audit-trail repository
func (s *Store) EventLog() eventlog.Repository { return s.events }

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool
func (s *Store) Close() {
	s.pool.Close()
}
