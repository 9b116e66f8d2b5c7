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

// CharacterRepository persists characters in PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

var _ repository.Character = (*CharacterRepository)(nil)

// CreateCharacter inserts a new character
func (r *CharacterRepository) CreateCharacter(ctx context.Context, c *domain.Character) error {
	query := `
		INSERT INTO characters (` + characterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Level, c.CurrentXP, c.NextLevelXP, c.TotalXP, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%w: character %s already exists", domain.ErrInvalidInput, c.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateCharacter, err)
	}
	return nil
}

// GetCharacter loads a character by id
func (r *CharacterRepository) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`

	c, err := scanCharacter(r.db.QueryRow(ctx, query, characterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}
	return c, nil
}

// UpdateCharacter writes the level and XP counters of an existing character
func (r *CharacterRepository) UpdateCharacter(ctx context.Context, c *domain.Character) error {
	query := `
		UPDATE characters
		SET name = $2, level = $3, current_xp = $4, next_level_xp = $5, total_xp = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Level, c.CurrentXP, c.NextLevelXP, c.TotalXP, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCharacter, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

func scanCharacter(row rowScanner) (*domain.Character, error) {
	var c domain.Character
	err := row.Scan(&c.ID, &c.Name, &c.Level, &c.CurrentXP, &c.NextLevelXP, &c.TotalXP, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
