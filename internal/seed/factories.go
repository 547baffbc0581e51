package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"szlak/internal/auth"
	"szlak/internal/middleware"
	"szlak/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoOptions configures the demo-data generator.
type DemoOptions struct {
	NumUsers int
	Password string // shared password for all demo accounts
}

// Demo creates fake users with randomized preferences and progress against
// the seeded activity catalogue. Intended for development and manual
// testing only; it refuses to run against an empty catalogue.
func Demo(db *gorm.DB, opts DemoOptions) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.Password == "" {
		opts.Password = "wedrowiec123"
	}

	var activities []models.Activity
	if err := db.Find(&activities).Error; err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	if len(activities) == 0 {
		return fmt.Errorf("activity catalogue is empty, seed reference data first")
	}

	gofakeit.Seed(time.Now().UnixNano())

	hash, err := auth.HashPassword(opts.Password)
	if err != nil {
		return err
	}

	difficulties := []string{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}
	types := []string{models.TypeMountain, models.TypeBike, models.TypeWalk, models.TypeWater}

	for i := 0; i < opts.NumUsers; i++ {
		user := models.User{
			Email:    fmt.Sprintf("demo%d.%s", i, gofakeit.Email()),
			Password: hash,
			Name:     gofakeit.Name(),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}

		prefs := models.UserPreferences{
			UserID:              user.ID,
			DifficultyLevels:    sample(difficulties, 1+rand.Intn(2)),
			Regions:             sample(models.Regions, 1+rand.Intn(3)),
			ActivityTypes:       sample(types, 1+rand.Intn(2)),
			OnboardingCompleted: rand.Intn(4) > 0,
		}
		if err := db.Create(&prefs).Error; err != nil {
			return fmt.Errorf("failed to create demo preferences: %w", err)
		}

		// Random progress over roughly half the catalogue.
		for _, activity := range activities {
			if rand.Intn(2) == 0 {
				continue
			}
			completed := rand.Intn(3) > 0
			progress := models.UserProgress{
				UserID:     user.ID,
				ActivityID: activity.ID,
				Completed:  completed,
			}
			if completed {
				at := time.Now().AddDate(0, 0, -rand.Intn(90))
				rating := 1 + rand.Intn(5)
				notes := gofakeit.Sentence(8)
				progress.CompletedAt = &at
				progress.Rating = &rating
				progress.Notes = &notes
			}
			if err := db.Create(&progress).Error; err != nil {
				return fmt.Errorf("failed to create demo progress: %w", err)
			}
		}
	}

	middleware.Logger.Info("Demo data generated", slog.Int("users", opts.NumUsers))
	return nil
}

// sample picks n distinct random elements from values.
func sample(values []string, n int) models.StringList {
	if n > len(values) {
		n = len(values)
	}
	idx := rand.Perm(len(values))[:n]
	out := make(models.StringList, 0, n)
	for _, i := range idx {
		out = append(out, values[i])
	}
	return out
}
