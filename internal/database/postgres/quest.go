package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// QuestRepository persists quests in PostgreSQL
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

var _ repository.Quest = (*QuestRepository)(nil)

// CreateQuest inserts a quest and returns it with its assigned id
func (r *QuestRepository) CreateQuest(ctx context.Context, q *domain.Quest) (*domain.Quest, error) {
	query := `
		INSERT INTO quests (character_id, name, description, quest_type, metric, target_value,
			current_progress, xp_reward, is_completed, is_daily, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + questColumns

	created, err := scanQuest(r.db.QueryRow(ctx, query,
		q.CharacterID, q.Name, q.Description, string(q.Type), string(q.Metric), q.TargetValue,
		q.CurrentProgress, q.XPReward, q.IsCompleted, q.IsDaily, q.CreatedAt))
	if err != nil {
		if isPgError(err, PgErrorCodeForeignKeyViolation) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateQuest, err)
	}
	return created, nil
}

// GetQuest loads a quest by id
func (r *QuestRepository) GetQuest(ctx context.Context, questID int64) (*domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE id = $1`

	q, err := scanQuest(r.db.QueryRow(ctx, query, questID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetQuest, err)
	}
	return q, nil
}

// GetActiveQuests returns the character's incomplete quests ordered by id
func (r *QuestRepository) GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	query := `
		SELECT ` + questColumns + `
		FROM quests
		WHERE character_id = $1 AND is_completed = FALSE
		ORDER BY id
	`
	return r.listQuests(ctx, query, characterID)
}

// GetQuestsByCharacter returns every quest of the character ordered by id
func (r *QuestRepository) GetQuestsByCharacter(ctx context.Context, characterID string) ([]domain.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE character_id = $1 ORDER BY id`
	return r.listQuests(ctx, query, characterID)
}

// UpdateQuestProgress locks the quest row, refuses completed quests, then
// writes progress and completion in the same transaction
func (r *QuestRepository) UpdateQuestProgress(ctx context.Context, questID int64, progress int64, completed bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	var isCompleted bool
	err = tx.QueryRow(ctx, `SELECT is_completed FROM quests WHERE id = $1 FOR UPDATE`, questID).Scan(&isCompleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrQuestNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToLockQuest, err)
	}
	if isCompleted {
		return domain.ErrQuestAlreadyCompleted
	}

	query := `
		UPDATE quests
		SET current_progress = $2,
			is_completed = $3,
			completed_at = CASE WHEN $3 THEN NOW() ELSE NULL END
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query, questID, progress, completed); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateQuestProgress, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (r *QuestRepository) listQuests(ctx context.Context, query string, args ...any) ([]domain.Quest, error) {
	rows, err := r.db.Query(ctx, query, args...)
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
		q         domain.Quest
		questType string
		metric    string
	)
	err := row.Scan(&q.ID, &q.CharacterID, &q.Name, &q.Description, &questType, &metric, &q.TargetValue,
		&q.CurrentProgress, &q.XPReward, &q.IsCompleted, &q.IsDaily, &q.CreatedAt, &q.CompletedAt)
	if err != nil {
		return nil, err
	}
	q.Type = domain.QuestType(questType)
	q.Metric = domain.QuestMetric(metric)
	return &q, nil
}
