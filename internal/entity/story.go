package entity

import (
	"time"

	"github.com/lib/pq"
)

// StoryType classifies the narrative of a collected business story.
type StoryType string

const (
	StoryTypePivot      StoryType = "pivot"
	StoryTypeSuccess    StoryType = "success"
	StoryTypeInnovation StoryType = "innovation"
	StoryTypeGeneral    StoryType = "general"
)

// Story represents a collected business narrative used as generation input.
// Stories are written by the collector and read-only to the content engine.
type Story struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	Industry     string         `gorm:"not null;index" json:"industry"`
	CompanyName  string         `gorm:"not null" json:"company_name"`
	CompanySize  string         `json:"company_size,omitempty"`
	StoryType    StoryType      `gorm:"type:varchar(20);not null" json:"story_type"`
	Source       string         `json:"source,omitempty"`
	URL          string         `gorm:"unique" json:"url,omitempty"`
	Keywords     pq.StringArray `gorm:"type:text[]" json:"keywords"`
	LatestNewsAt *time.Time     `json:"latest_news_at,omitempty"`
	NewsCount    int            `json:"news_count"`
	AvgSentiment float64        `json:"avg_sentiment"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Story model.
func (Story) TableName() string {
	return "stories"
}
