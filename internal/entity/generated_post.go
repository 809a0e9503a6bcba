package entity

import (
	"time"

	"gorm.io/datatypes"
)

// GeneratedPost represents a produced candidate post derived from a story.
// Only the approval status and feedback flag are mutated after creation.
type GeneratedPost struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	StoryID           uint           `gorm:"not null;index" json:"story_id"`
	Industry          string         `gorm:"not null;index" json:"industry"`
	CompanyName       string         `gorm:"not null" json:"company_name"`
	PostType          StoryType      `gorm:"type:varchar(20);not null" json:"post_type"`
	Content           string         `gorm:"type:text;not null" json:"content"`
	EngagementScore   float64        `json:"engagement_score"`
	RelevanceScore    float64        `json:"relevance_score"`
	ReadabilityScore  float64        `json:"readability_score"`
	AuthenticityScore float64        `json:"authenticity_score"`
	Metrics           datatypes.JSON `json:"metrics,omitempty"`
	Approved          *bool          `json:"approved,omitempty"`
	FeedbackReceived  bool           `gorm:"default:false" json:"feedback_received"`
	BatchID           *uint          `gorm:"index" json:"batch_id,omitempty"`
	Attempts          int            `json:"attempts"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the GeneratedPost model.
func (GeneratedPost) TableName() string {
	return "generated_posts"
}

// TotalScore sums the four quality sub-scores.
func (p *GeneratedPost) TotalScore() float64 {
	return p.EngagementScore + p.RelevanceScore + p.ReadabilityScore + p.AuthenticityScore
}
