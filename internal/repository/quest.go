package repository

import (
	"context"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// Quest is the persistence contract for quests and their progress.
type Quest interface {
	CreateQuest(ctx context.Context, quest *domain.Quest) (*domain.Quest, error)
	GetQuest(ctx context.Context, questID int64) (*domain.Quest, error)

	// GetActiveQuests returns the character's incomplete quests ordered by id
	GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error)
	GetQuestsByCharacter(ctx context.Context, characterID string) ([]domain.Quest, error)

	// UpdateQuestProgress writes progress and completion. Implementations must
	// return domain.ErrQuestAlreadyCompleted instead of writing to a completed quest.
	UpdateQuestProgress(ctx context.Context, questID int64, progress int64, completed bool) error
}
