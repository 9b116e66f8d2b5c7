package repository

import (
	"context"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// Character is the persistence contract for characters.
// Lookups of unknown ids return domain.ErrCharacterNotFound.
type Character interface {
	CreateCharacter(ctx context.Context, character *domain.Character) error
	GetCharacter(ctx context.Context, characterID string) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character *domain.Character) error
}
