package repository

import (
	"context"
	"errors"

	"szlak/internal/models"
	"szlak/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository defines persistence operations for per-user activity
// progress.
type ProgressRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.ProgressEntry, error)
	CompletionByUser(ctx context.Context, userID uint) (map[uint]bool, error)
	GetByUserAndActivity(ctx context.Context, userID, activityID uint) (*models.UserProgress, error)
	Upsert(ctx context.Context, progress *models.UserProgress) error
	CountCompleted(ctx context.Context, userID uint) (int64, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository returns a new ProgressRepository implementation.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// ListByUser returns the caller's progress rows joined with the activity
// fields the dashboard renders, most recently completed first.
func (r *progressRepository) ListByUser(ctx context.Context, userID uint) ([]models.ProgressEntry, error) {
	defer observability.TrackQuery("select", "user_progress")()

	var entries []models.ProgressEntry
	err := r.db.WithContext(ctx).
		Table("user_progress").
		Select(`user_progress.id, user_progress.user_id, user_progress.activity_id,
			user_progress.completed, user_progress.completed_at, user_progress.rating,
			user_progress.notes, activities.name AS activity_name, activities.difficulty,
			activities.region, activities.activity_type, activities.image_url`).
		Joins("JOIN activities ON user_progress.activity_id = activities.id").
		Where("user_progress.user_id = ?", userID).
		Order("user_progress.completed_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// CompletionByUser maps activity id to completion for the given user, used
// to flag the activity list for an authenticated caller.
func (r *progressRepository) CompletionByUser(ctx context.Context, userID uint) (map[uint]bool, error) {
	defer observability.TrackQuery("select", "user_progress")()

	var rows []models.UserProgress
	err := r.db.WithContext(ctx).
		Select("activity_id", "completed").
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	completion := make(map[uint]bool, len(rows))
	for _, row := range rows {
		completion[row.ActivityID] = row.Completed
	}
	return completion, nil
}

func (r *progressRepository) GetByUserAndActivity(ctx context.Context, userID, activityID uint) (*models.UserProgress, error) {
	defer observability.TrackQuery("select", "user_progress")()

	var progress models.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &progress, nil
}

// Upsert writes the full desired state for one (user, activity) pair.
// Every mutable field is overwritten, last write wins: a caller that only
// wants to toggle completion must resend rating and notes or they are
// cleared.
func (r *progressRepository) Upsert(ctx context.Context, progress *models.UserProgress) error {
	defer observability.TrackQuery("upsert", "user_progress")()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "activity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "completed_at", "rating", "notes",
		}),
	}).Create(progress).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	observability.ProgressUpserts.Inc()
	return nil
}

func (r *progressRepository) CountCompleted(ctx context.Context, userID uint) (int64, error) {
	defer observability.TrackQuery("count", "user_progress")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
