package entity

import "time"

// MinPreferenceWeight is the floor applied after every decay so that a
// heavily penalized dimension can still recover.
const MinPreferenceWeight = 0.01

// StoryPreference is a per-dimension multiplier biasing story selection.
// Weights start at 1.0 and are decayed multiplicatively by negative feedback.
type StoryPreference struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Industry    string    `gorm:"not null;uniqueIndex:idx_preference_dimension" json:"industry"`
	CompanySize string    `gorm:"uniqueIndex:idx_preference_dimension" json:"company_size,omitempty"`
	StoryType   StoryType `gorm:"type:varchar(20);uniqueIndex:idx_preference_dimension" json:"story_type,omitempty"`
	Weight      float64   `gorm:"not null;default:1.0" json:"weight"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the StoryPreference model.
func (StoryPreference) TableName() string {
	return "story_preferences"
}
