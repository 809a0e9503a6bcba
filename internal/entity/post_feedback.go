package entity

import (
	"time"

	"github.com/lib/pq"
)

// FeedbackCategory groups the structured critique tags.
type FeedbackCategory string

const (
	FeedbackCategoryContent   FeedbackCategory = "content"
	FeedbackCategoryStyle     FeedbackCategory = "style"
	FeedbackCategoryStructure FeedbackCategory = "structure"
	FeedbackCategoryRelevance FeedbackCategory = "relevance"
)

// FeedbackTagVocabulary is the fixed tag set allowed per category.
var FeedbackTagVocabulary = map[FeedbackCategory][]string{
	FeedbackCategoryContent: {
		"too_technical",
		"not_technical_enough",
		"missing_context",
		"too_long",
		"too_short",
	},
	FeedbackCategoryStyle: {
		"wrong_tone",
		"not_engaging",
		"too_formal",
		"too_casual",
		"needs_examples",
	},
	FeedbackCategoryStructure: {
		"poor_flow",
		"weak_hook",
		"weak_conclusion",
		"needs_bullets",
		"needs_statistics",
	},
	FeedbackCategoryRelevance: {
		"wrong_industry",
		"outdated_info",
		"wrong_audience",
		"not_actionable",
		"not_valuable",
	},
}

// IsValidFeedbackTag reports whether tag belongs to the category's vocabulary.
func IsValidFeedbackTag(category FeedbackCategory, tag string) bool {
	for _, known := range FeedbackTagVocabulary[category] {
		if known == tag {
			return true
		}
	}
	return false
}

// PostFeedback is a structured critique attached to one generated post.
// Records are immutable once written; the learner only aggregates them.
type PostFeedback struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	PostID    uint             `gorm:"not null;index" json:"post_id"`
	Category  FeedbackCategory `gorm:"type:varchar(20);not null" json:"category"`
	Tags      pq.StringArray   `gorm:"type:text[];not null" json:"tags"`
	Note      string           `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the PostFeedback model.
func (PostFeedback) TableName() string {
	return "post_feedback"
}
