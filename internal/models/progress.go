package models

import "time"

// UserProgress is the per-user state for one activity. The composite unique
// index backs the ON CONFLICT(user_id, activity_id) upsert: every write
// replaces all four mutable fields, last write wins.
type UserProgress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_activity" json:"user_id"`
	ActivityID  uint       `gorm:"not null;uniqueIndex:idx_user_activity" json:"activity_id"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Rating      *int       `json:"rating"`
	Notes       *string    `json:"notes"`
}

// TableName keeps the legacy table name used by existing databases.
func (UserProgress) TableName() string { return "user_progress" }

// ProgressEntry is a user_progress row joined with the activity fields the
// dashboard renders.
type ProgressEntry struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"user_id"`
	ActivityID   uint       `json:"activity_id"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	Rating       *int       `json:"rating"`
	Notes        *string    `json:"notes"`
	ActivityName string     `json:"activity_name"`
	Difficulty   string     `json:"difficulty"`
	Region       string     `json:"region"`
	ActivityType string     `json:"activity_type"`
	ImageURL     string     `json:"image_url"`
}

// ProgressStats summarizes a user's progress: Total counts every activity in
// the catalogue, Completed only the caller's finished ones.
type ProgressStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}
