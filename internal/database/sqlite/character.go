package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// CharacterRepository persists characters in SQLite
type CharacterRepository struct {
	db *sql.DB
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *sql.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

var _ repository.Character = (*CharacterRepository)(nil)

// CreateCharacter inserts a new character
func (r *CharacterRepository) CreateCharacter(ctx context.Context, c *domain.Character) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO characters (`+characterColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Level, c.CurrentXP, c.NextLevelXP, c.TotalXP, toMicros(c.CreatedAt), toMicros(c.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: character %s already exists", domain.ErrInvalidInput, c.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateCharacter, err)
	}
	return nil
}

// GetCharacter loads a character by id
func (r *CharacterRepository) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = ?`, characterID)

	c, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}
	return c, nil
}

// UpdateCharacter writes the level and XP counters of an existing character
func (r *CharacterRepository) UpdateCharacter(ctx context.Context, c *domain.Character) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE characters
		SET name = ?, level = ?, current_xp = ?, next_level_xp = ?, total_xp = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Level, c.CurrentXP, c.NextLevelXP, c.TotalXP, toMicros(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCharacter, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCharacter, err)
	}
	if affected == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

func scanCharacter(row rowScanner) (*domain.Character, error) {
	var (
		c                    domain.Character
		createdAt, updatedAt int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Level, &c.CurrentXP, &c.NextLevelXP, &c.TotalXP, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = fromMicros(createdAt)
	c.UpdatedAt = fromMicros(updatedAt)
	return &c, nil
}
