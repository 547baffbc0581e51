// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User is a registered account. Users are created at registration and never
// deleted; only the display name is mutable afterwards.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPreferences holds the onboarding quiz answers for one user.
// The uniqueIndex on UserID backs the ON CONFLICT upsert used by the
// onboarding and profile-update paths: there is never more than one row
// per user.
type UserPreferences struct {
	ID                  uint       `gorm:"primaryKey" json:"-"`
	UserID              uint       `gorm:"uniqueIndex;not null" json:"-"`
	DifficultyLevels    StringList `gorm:"type:text" json:"difficultyLevels"`
	Regions             StringList `gorm:"type:text" json:"regions"`
	ActivityTypes       StringList `gorm:"type:text" json:"activityTypes"`
	OnboardingCompleted bool       `gorm:"not null;default:false" json:"onboardingCompleted"`
}

// TableName keeps the legacy table name used by existing databases.
func (UserPreferences) TableName() string { return "user_preferences" }
