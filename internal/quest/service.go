package quest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/logger"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// Service is the quest registry: quest definitions plus their mutable
// progress. It checks invariants but never decides progress itself.
type Service interface {
	CreateQuest(ctx context.Context, q *domain.Quest) (*domain.Quest, error)
	GetQuest(ctx context.Context, questID int64) (*domain.Quest, error)
	GetQuests(ctx context.Context, characterID string) ([]domain.Quest, error)
	GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error)
	UpdateQuestProgress(ctx context.Context, questID int64, newProgress int64, completed bool) (*domain.Quest, error)

	// Quest pool
	QuestPool() []domain.QuestTemplate
	IssueFromPool(ctx context.Context, characterID string, daily bool) ([]domain.Quest, error)
}

type service struct {
	repo      repository.Quest
	questPool []domain.QuestTemplate
	mu        sync.RWMutex
	now       func() time.Time
}

// NewService creates a quest registry issuing new instances from pool
func NewService(repo repository.Quest, pool []domain.QuestTemplate) Service {
	return &service{
		repo:      repo,
		questPool: pool,
		now:       time.Now,
	}
}

// LoadQuestPool reads and validates quest templates from a JSON config file
func LoadQuestPool(path string) ([]domain.QuestTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest pool %s: %w", path, err)
	}

	var cfg domain.QuestPoolConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse quest pool %s: %w", path, err)
	}

	seen := make(map[string]bool, len(cfg.QuestPool))
	for i, tmpl := range cfg.QuestPool {
		if tmpl.QuestKey == "" {
			return nil, fmt.Errorf("quest pool entry %d: missing quest_key", i)
		}
		if seen[tmpl.QuestKey] {
			return nil, fmt.Errorf("quest pool entry %d: duplicate quest_key %q", i, tmpl.QuestKey)
		}
		seen[tmpl.QuestKey] = true

		probe := fromTemplate("probe", tmpl)
		if err := validateNewQuest(&probe); err != nil {
			return nil, fmt.Errorf("quest pool entry %q: %w", tmpl.QuestKey, err)
		}
	}

	logger.Info(LogMsgQuestPoolLoaded, "path", path, "version", cfg.Version, "templates", len(cfg.QuestPool))
	return cfg.QuestPool, nil
}

// CreateQuest validates and stores a new quest instance. Nutrition quests
// without a metric get one decided here from their description.
func (s *service) CreateQuest(ctx context.Context, q *domain.Quest) (*domain.Quest, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: quest is required", domain.ErrInvalidInput)
	}

	quest := *q
	quest.Name = strings.TrimSpace(quest.Name)
	if quest.Type == domain.QuestTypeNutrition && quest.Metric == "" {
		quest.Metric = InferMetric(quest.Description)
	}
	if err := validateNewQuest(&quest); err != nil {
		return nil, err
	}
	if quest.CreatedAt.IsZero() {
		quest.CreatedAt = s.now()
	}

	created, err := s.repo.CreateQuest(ctx, &quest)
	if err != nil {
		return nil, fmt.Errorf("failed to create quest: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgQuestCreated,
		"quest_id", created.ID,
		"character_id", created.CharacterID,
		"type", created.Type,
		"metric", created.Metric)
	return created, nil
}

// GetQuest returns a single quest
func (s *service) GetQuest(ctx context.Context, questID int64) (*domain.Quest, error) {
	q, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quest %d: %w", questID, err)
	}
	return q, nil
}

// GetQuests returns every quest of the character, completed ones included
func (s *service) GetQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	quests, err := s.repo.GetQuestsByCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quests: %w", err)
	}
	sortByID(quests)
	return quests, nil
}

// GetActiveQuests returns the character's incomplete quests ordered by id
func (s *service) GetActiveQuests(ctx context.Context, characterID string) ([]domain.Quest, error) {
	quests, err := s.repo.GetActiveQuests(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quests: %w", err)
	}
	sortByID(quests)
	return quests, nil
}

// UpdateQuestProgress writes caller-computed progress. The write is refused
// when it would break completed <=> progress >= target, leave the
// [0, target] range, or touch a quest that is already completed.
func (s *service) UpdateQuestProgress(ctx context.Context, questID int64, newProgress int64, completed bool) (*domain.Quest, error) {
	q, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quest %d: %w", questID, err)
	}

	if q.IsCompleted {
		return nil, fmt.Errorf("quest %d: %w", questID, domain.ErrQuestAlreadyCompleted)
	}
	if err := validateProgress(q, newProgress, completed); err != nil {
		logger.FromContext(ctx).Warn(LogMsgProgressRejected, "quest_id", questID, "progress", newProgress, "completed", completed)
		return nil, err
	}

	if err := s.repo.UpdateQuestProgress(ctx, questID, newProgress, completed); err != nil {
		return nil, fmt.Errorf("failed to update quest %d: %w", questID, err)
	}

	q.CurrentProgress = newProgress
	q.IsCompleted = completed
	if completed {
		now := s.now()
		q.CompletedAt = &now
	}
	return q, nil
}

// QuestPool returns a copy of the loaded templates
func (s *service) QuestPool() []domain.QuestTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool := make([]domain.QuestTemplate, len(s.questPool))
	copy(pool, s.questPool)
	return pool
}

// IssueFromPool creates one quest instance per daily (or non-daily)
// template. Templates whose quest is still active for the character are skipped.
func (s *service) IssueFromPool(ctx context.Context, characterID string, daily bool) ([]domain.Quest, error) {
	log := logger.FromContext(ctx)

	active, err := s.repo.GetActiveQuests(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quests: %w", err)
	}
	activeNames := make(map[string]bool, len(active))
	for _, q := range active {
		activeNames[q.Name] = true
	}

	issued := make([]domain.Quest, 0)
	for _, tmpl := range s.QuestPool() {
		if tmpl.Daily != daily {
			continue
		}
		if activeNames[tmpl.Name] {
			log.Debug(LogMsgTemplateSkipped, "quest_key", tmpl.QuestKey, "character_id", characterID)
			continue
		}

		quest := fromTemplate(characterID, tmpl)
		created, err := s.CreateQuest(ctx, &quest)
		if err != nil {
			return issued, fmt.Errorf("failed to issue quest %s: %w", tmpl.QuestKey, err)
		}
		issued = append(issued, *created)
	}

	log.Info(LogMsgQuestsIssued, "character_id", characterID, "daily", daily, "count", len(issued))
	return issued, nil
}

func fromTemplate(characterID string, tmpl domain.QuestTemplate) domain.Quest {
	metric := tmpl.Metric
	if tmpl.Type == domain.QuestTypeNutrition && metric == "" {
		metric = InferMetric(tmpl.Description)
	}
	return domain.Quest{
		CharacterID: characterID,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Type:        tmpl.Type,
		Metric:      metric,
		TargetValue: tmpl.TargetValue,
		XPReward:    tmpl.XPReward,
		IsDaily:     tmpl.Daily,
	}
}

func validateNewQuest(q *domain.Quest) error {
	switch {
	case strings.TrimSpace(q.CharacterID) == "":
		return fmt.Errorf("%w: character id is required", domain.ErrInvalidInput)
	case q.Name == "":
		return fmt.Errorf("%w: quest name is required", domain.ErrInvalidInput)
	case !domain.ValidQuestType(q.Type):
		return fmt.Errorf("%w: unknown quest type %q", domain.ErrInvalidInput, q.Type)
	case !domain.ValidQuestMetric(q.Metric):
		return fmt.Errorf("%w: unknown quest metric %q", domain.ErrInvalidInput, q.Metric)
	case q.Metric != "" && q.Type != domain.QuestTypeNutrition:
		return fmt.Errorf("%w: metric only applies to nutrition quests", domain.ErrInvalidInput)
	case q.TargetValue <= 0:
		return fmt.Errorf("%w: target value must be positive", domain.ErrInvalidInput)
	case q.XPReward <= 0:
		return fmt.Errorf("%w: xp reward must be positive", domain.ErrInvalidInput)
	case q.CurrentProgress < 0 || q.CurrentProgress >= q.TargetValue:
		return fmt.Errorf("%w: initial progress must be in [0, target)", domain.ErrInvalidInput)
	case q.IsCompleted:
		return fmt.Errorf("%w: a new quest cannot start completed", domain.ErrInvalidInput)
	}
	return nil
}

func validateProgress(q *domain.Quest, progress int64, completed bool) error {
	if progress < 0 || progress > q.TargetValue {
		return fmt.Errorf("%w: progress %d outside [0, %d]", domain.ErrInvalidInput, progress, q.TargetValue)
	}
	if completed != (progress >= q.TargetValue) {
		return fmt.Errorf("%w: completed=%t does not match progress %d/%d", domain.ErrInvalidInput, completed, progress, q.TargetValue)
	}
	if progress < q.CurrentProgress {
		return fmt.Errorf("%w: progress cannot decrease from %d to %d", domain.ErrInvalidInput, q.CurrentProgress, progress)
	}
	return nil
}

func sortByID(quests []domain.Quest) {
	sort.Slice(quests, func(i, j int) bool { return quests[i].ID < quests[j].ID })
}
