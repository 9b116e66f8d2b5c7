package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// QuestRepository persists quests in SQLite
type QuestRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *sql.DB) *QuestRepository {
	return &QuestRepository{db: db, now: time.Now}
}

var _ repository.Quest = (*QuestRepository)(nil)

// CreateQuest inserts a quest and returns it with its assigned id
func (r *QuestRepository) CreateQuest(ctx context.Context, q *domain.Quest) (*domain.Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO quests (character_id, name, description, quest_type, metric, target_value,
			current_progress, xp_reward, is_completed, is_daily, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+questColumns,
		q.CharacterID, q.Name, q.Description, string(q.Type), string(q.Metric), q.TargetValue,
		q.CurrentProgress, q.XPReward, q.IsCompleted, q.IsDaily, toMicros(q.CreatedAt))

	created, err := scanQuest(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateQuest, err)
	}
	return created, nil
}

// GetQuest loads a quest by id
func (r *QuestRepository) GetQuest(ctx context.Context, questID int64) (*domain.Quest, error) {
	q, err := scanQuest(r.db.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE id = ?`, questID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetQuest, err)
	}
	return q, nil
}

// GetActiveQuests returns the character's incomplete quests ordered by id
func (r *QuestRepository) GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	return r.listQuests(ctx,
		`SELECT `+questColumns+` FROM quests WHERE character_id = ? AND is_completed = 0 ORDER BY id`, characterID)
}

// GetQuestsByCharacter returns every quest of the character ordered by id
func (r *QuestRepository) GetQuestsByCharacter(ctx context.Context, characterID string) ([]domain.Quest, error) {
	return r.listQuests(ctx, `SELECT `+questColumns+` FROM quests WHERE character_id = ? ORDER BY id`, characterID)
}

// UpdateQuestProgress writes progress only while the quest is still open.
// The guard lives in the UPDATE itself; a miss is then classified as an
// unknown or an already completed quest inside the same transaction.
func (r *QuestRepository) UpdateQuestProgress(ctx context.Context, questID int64, progress int64, completed bool) error {
	var completedAt any
	if completed {
		completedAt = toMicros(r.now())
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE quests
			SET current_progress = ?, is_completed = ?, completed_at = ?
			WHERE id = ? AND is_completed = 0`,
			progress, completed, completedAt, questID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateQuestProgress, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateQuestProgress, err)
		}
		if affected > 0 {
			return nil
		}

		var isCompleted bool
		err = tx.QueryRowContext(ctx, `SELECT is_completed FROM quests WHERE id = ?`, questID).Scan(&isCompleted)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.ErrQuestNotFound
		case err != nil:
			return fmt.Errorf("%s: %w", ErrMsgFailedToGetQuest, err)
		}
		return domain.ErrQuestAlreadyCompleted
	})
}

func (r *QuestRepository) listQuests(ctx context.Context, query string, args ...any) ([]domain.Quest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListQuests, err)
	}
	defer rows.Close()

	quests := []domain.Quest{}
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListQuests, err)
		}
		quests = append(quests, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListQuests, err)
	}
	return quests, nil
}

func scanQuest(row rowScanner) (*domain.Quest, error) {
	var (
		q                 domain.Quest
		questType, metric string
		createdAt         int64
		completedAt       sql.NullInt64
	)
	err := row.Scan(&q.ID, &q.CharacterID, &q.Name, &q.Description, &questType, &metric, &q.TargetValue,
		&q.CurrentProgress, &q.XPReward, &q.IsCompleted, &q.IsDaily, &createdAt, &completedAt)
	if err != nil {
		return nil, err
	}
	q.Type = domain.QuestType(questType)
	q.Metric = domain.QuestMetric(metric)
	q.CreatedAt = fromMicros(createdAt)
	if completedAt.Valid {
		t := fromMicros(completedAt.Int64)
		q.CompletedAt = &t
	}
	return &q, nil
}
