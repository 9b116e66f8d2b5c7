package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FitQuest_Go/internal/database"
	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// ActivityRepository persists the activity log in PostgreSQL
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

var _ repository.Activity = (*ActivityRepository)(nil)

// InsertActivity appends an activity
func (r *ActivityRepository) InsertActivity(ctx context.Context, a *domain.Activity) error {
	metadataJSON, err := database.MarshalOptional(a.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.Exec(ctx, query,
		a.ID, a.CharacterID, string(a.Type), a.Description, a.XPGained, metadataJSON, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertActivity, err)
	}
	return nil
}

// GetActivities retrieves activities newest first based on filter criteria
func (r *ActivityRepository) GetActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	q := database.NewListQuery(database.PostgresDialect, `SELECT ` + activityColumns + ` FROM activities`).
		And("character_id", "=", filter.CharacterID)
	if filter.Type != nil {
		q.And("type", "=", string(*filter.Type))
	}
	query, args := q.Window(filter.Since, filter.Until).Build(filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryActivities, err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var (
			a            domain.Activity
			activityType string
			metadataJSON []byte
			metadata     map[string]interface{}
		)
		if err := rows.Scan(&a.ID, &a.CharacterID, &activityType, &a.Description, &a.XPGained, &metadataJSON, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryActivities, err)
		}
		if err := database.UnmarshalOptional(metadataJSON, &metadata); err != nil {
			return nil, err
		}
		a.Type = domain.ActivityType(activityType)
		a.Metadata = metadata
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryActivities, err)
	}
	return activities, nil
}

// CleanupOldActivities removes activities created before the cutoff
func (r *ActivityRepository) CleanupOldActivities(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM activities WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupActivites, err)
	}
	return tag.RowsAffected(), nil
}
