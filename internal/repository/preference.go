package repository

import (
	"context"
	"errors"

	"szlak/internal/models"
	"szlak/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository defines persistence operations for the per-user
// onboarding preferences row.
type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.UserPreferences, error)
	CreateEmpty(ctx context.Context, userID uint) error
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
	CompleteOnboarding(ctx context.Context, prefs *models.UserPreferences) error
}

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository returns a new PreferenceRepository implementation.
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByUserID(ctx context.Context, userID uint) (*models.UserPreferences, error) {
	defer observability.TrackQuery("select", "user_preferences")()

	var prefs models.UserPreferences
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &prefs, nil
}

// CreateEmpty inserts the default preferences row created at registration:
// empty lists, onboarding not completed.
func (r *preferenceRepository) CreateEmpty(ctx context.Context, userID uint) error {
	defer observability.TrackQuery("insert", "user_preferences")()

	prefs := models.UserPreferences{
		UserID:           userID,
		DifficultyLevels: models.StringList{},
		Regions:          models.StringList{},
		ActivityTypes:    models.StringList{},
	}
	if err := r.db.WithContext(ctx).Create(&prefs).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Upsert replaces the three preference lists, keyed on user_id. The
// onboarding_completed flag keeps its current value: saving preferences
// from the profile page never un-completes onboarding.
func (r *preferenceRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	defer observability.TrackQuery("upsert", "user_preferences")()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"difficulty_levels", "regions", "activity_types"}),
	}).Create(prefs).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CompleteOnboarding replaces the three preference lists and forces
// onboarding_completed to true. The flag is monotonic: re-submitting the
// quiz keeps it true, and nothing ever sets it back to false.
func (r *preferenceRepository) CompleteOnboarding(ctx context.Context, prefs *models.UserPreferences) error {
	defer observability.TrackQuery("upsert", "user_preferences")()

	prefs.OnboardingCompleted = true
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"difficulty_levels", "regions", "activity_types", "onboarding_completed",
		}),
	}).Create(prefs).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
