package models

import "time"

// Closed vocabularies for activity attributes. The reference data keeps the
// Polish labels used by the seeded Małopolska catalogue; filters that use
// values outside these sets simply match nothing.
const (
	DifficultyEasy   = "łatwy"
	DifficultyMedium = "średni"
	DifficultyHard   = "trudny"

	TypeMountain = "góry"
	TypeBike     = "rower"
	TypeWalk     = "spacer"
	TypeWater    = "woda"
)

// Regions covered by the activity catalogue.
var Regions = []string{"Podhale", "Pieniny", "Kraków", "Beskidy", "Jura"}

// Activity is immutable reference data describing one outdoor activity.
// Rows are seeded once at first boot and never changed by any endpoint.
type Activity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `gorm:"not null" json:"description"`
	Difficulty   string    `gorm:"not null;index" json:"difficulty"`
	Region       string    `gorm:"not null;index" json:"region"`
	ActivityType string    `gorm:"not null;index" json:"activity_type"`
	Location     string    `gorm:"not null" json:"location"`
	Duration     string    `json:"duration"`
	Distance     string    `json:"distance"`
	Elevation    string    `json:"elevation"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`

	// Completed is filled per-caller on the list endpoint when the request
	// carries a valid identity. It is not a column.
	Completed *bool `gorm:"-" json:"completed,omitempty"`
}

// ActivityFilter narrows the activity list endpoint. Empty fields match all.
type ActivityFilter struct {
	Difficulty   string
	Region       string
	ActivityType string
}
