package repository

import (
	"context"
	"errors"

	"szlak/internal/models"
	"szlak/internal/observability"

	"gorm.io/gorm"
)

// RecommendLimit caps the onboarding recommendation sample size.
const RecommendLimit = 5

// ActivityRepository defines read operations over the activity catalogue.
type ActivityRepository interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error)
	GetByID(ctx context.Context, id uint) (*models.Activity, error)
	Recommend(ctx context.Context, prefs *models.UserPreferences, limit int) ([]models.Activity, error)
	Count(ctx context.Context) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository returns a new ActivityRepository implementation.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error) {
	defer observability.TrackQuery("select", "activities")()

	q := r.db.WithContext(ctx).Model(&models.Activity{})
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Region != "" {
		q = q.Where("region = ?", filter.Region)
	}
	if filter.ActivityType != "" {
		q = q.Where("activity_type = ?", filter.ActivityType)
	}

	var activities []models.Activity
	if err := q.Order("name ASC").Find(&activities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return activities, nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uint) (*models.Activity, error) {
	defer observability.TrackQuery("select", "activities")()

	var activity models.Activity
	if err := r.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &activity, nil
}

// Recommend draws a random sample of activities matching the preference
// lists. Each non-empty list contributes an IN clause; the clauses are
// AND'd together. All-empty preferences degenerate to "any activity".
// No match is not an error: the sample is simply empty.
func (r *activityRepository) Recommend(ctx context.Context, prefs *models.UserPreferences, limit int) ([]models.Activity, error) {
	defer observability.TrackQuery("select", "activities")()

	if limit <= 0 {
		limit = RecommendLimit
	}

	q := r.db.WithContext(ctx).Model(&models.Activity{})
	if len(prefs.DifficultyLevels) > 0 {
		q = q.Where("difficulty IN ?", []string(prefs.DifficultyLevels))
	}
	if len(prefs.Regions) > 0 {
		q = q.Where("region IN ?", []string(prefs.Regions))
	}
	if len(prefs.ActivityTypes) > 0 {
		q = q.Where("activity_type IN ?", []string(prefs.ActivityTypes))
	}

	var activities []models.Activity
	if err := q.Order("RANDOM()").Limit(limit).Find(&activities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return activities, nil
}

func (r *activityRepository) Count(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "activities")()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Activity{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
