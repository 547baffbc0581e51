package models

import "time"

// Challenge is seeded reference data for longer-term goals. The schema is
// kept (and seeded) for the dashboard roadmap, but no endpoint exposes it
// yet.
type Challenge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	TargetCount int       `gorm:"not null" json:"target_count"`
	Period      string    `gorm:"not null" json:"period"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserChallenge tracks one user's counter against a challenge.
type UserChallenge struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	ChallengeID  uint       `gorm:"not null" json:"challenge_id"`
	CurrentCount int        `gorm:"not null;default:0" json:"current_count"`
	Completed    bool       `gorm:"not null;default:false" json:"completed"`
	StartedAt    time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}
