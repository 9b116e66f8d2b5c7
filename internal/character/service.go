package character

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/logger"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// Service is the character ledger. It owns level, XP and rollover math.
// It does not serialize callers; per-character locking belongs to the caller.
type Service interface {
	CreateCharacter(ctx context.Context, name string) (*domain.Character, error)
	GetCharacter(ctx context.Context, id string) (*domain.Character, error)
	GrantXP(ctx context.Context, id string, amount int64) (*domain.XPGrantResult, error)
}

type service struct {
	repo  repository.Character
	cache *characterCache
	now   func() time.Time
}

// NewService creates a character ledger backed by repo with a read cache
func NewService(repo repository.Character, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newCharacterCache(cacheSize, cacheTTL),
		now:   time.Now,
	}
}

// CreateCharacter creates a level 1 character with no XP
func (s *service) CreateCharacter(ctx context.Context, name string) (*domain.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: character name is required", domain.ErrInvalidInput)
	}

	now := s.now()
	char := &domain.Character{
		ID:          uuid.New().String(),
		Name:        name,
		Level:       StartingLevel,
		CurrentXP:   0,
		NextLevelXP: NextLevelXP(StartingLevel),
		TotalXP:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateCharacter(ctx, char); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	s.cache.Set(char)
	logger.FromContext(ctx).Info(LogMsgCharacterCreated, "character_id", char.ID, "name", char.Name)
	return char, nil
}

// GetCharacter returns the character, served from cache when possible
func (s *service) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	if char, ok := s.cache.Get(id); ok {
		return char, nil
	}

	char, err := s.repo.GetCharacter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get character %s: %w", id, err)
	}

	s.cache.Set(char)
	return char, nil
}

// GrantXP adds amount to the character and settles any level rollover
func (s *service) GrantXP(ctx context.Context, id string, amount int64) (*domain.XPGrantResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: xp amount must be non-negative, got %d", domain.ErrInvalidInput, amount)
	}

	// Always read through to storage: the cache may lag behind another writer.
	char, err := s.repo.GetCharacter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get character %s: %w", id, err)
	}

	if amount > math.MaxInt64-char.TotalXP {
		return nil, fmt.Errorf("%w: xp amount %d overflows total xp", domain.ErrInvalidInput, amount)
	}

	previousLevel := char.Level
	levelsGained := applyXP(char, amount)
	char.UpdatedAt = s.now()

	if err := s.repo.UpdateCharacter(ctx, char); err != nil {
		s.cache.Invalidate(id)
		return nil, fmt.Errorf("failed to update character %s: %w", id, err)
	}
	s.cache.Set(char)

	log := logger.ForCharacter(ctx, id)
	log.Debug(LogMsgXPGranted, "amount", amount, "total_xp", char.TotalXP)
	if levelsGained > 0 {
		log.Info(LogMsgLevelUp, "old_level", previousLevel, "new_level", char.Level)
	}

	return &domain.XPGrantResult{
		Character:     char,
		XPGained:      amount,
		LeveledUp:     levelsGained > 0,
		PreviousLevel: previousLevel,
		LevelsGained:  levelsGained,
	}, nil
}
