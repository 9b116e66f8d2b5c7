package bootstrap

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/quest"
)

// LoadQuestPool reads the quest templates. A missing file yields an empty
// pool; a malformed one is an error.
func LoadQuestPool(path string) ([]domain.QuestTemplate, error) {
	pool, err := quest.LoadQuestPool(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn(LogMsgQuestPoolMissing, "path", path)
		return nil, nil
	}
	return pool, err
}
