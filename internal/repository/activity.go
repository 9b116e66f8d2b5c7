package repository

import (
	"context"
	"time"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// Activity defines the append-only storage of activities
type Activity interface {
	// InsertActivity stores an activity; ID and CreatedAt are set by the caller
	InsertActivity(ctx context.Context, activity *domain.Activity) error

	// GetActivities retrieves activities newest first based on filter criteria
	GetActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error)

	// CleanupOldActivities removes activities created before the cutoff
	CleanupOldActivities(ctx context.Context, before time.Time) (int64, error)
}
