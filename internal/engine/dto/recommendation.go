package dto

import "linkedin-content-engine/internal/entity"

// RecommendedSettings carries the generation settings suggested for a story,
// derived from past performance in its industry.
type RecommendedSettings struct {
	PostType       entity.StoryType `json:"post_type"`
	EngagementRate float64          `json:"engagement_rate"`
}

// Recommendation pairs a candidate story with suggested settings and the
// composite confidence score used for ordering.
type Recommendation struct {
	Story           entity.Story        `json:"story"`
	Settings        RecommendedSettings `json:"settings"`
	Source          string              `json:"source"` // "trending" or "recent"
	ConfidenceScore float64             `json:"confidence_score"`
}

// SystemStats summarizes engine performance for the stats endpoint.
type SystemStats struct {
	TotalPosts    int                 `json:"total_posts"`
	TotalReviewed int                 `json:"total_reviewed"`
	ApprovedCount int                 `json:"approved_count"`
	ApprovalRate  float64             `json:"approval_rate"`
	AverageScores map[string]float64  `json:"average_scores"`
	TopFeedback   []FeedbackPattern   `json:"common_feedback"`
}

// FeedbackPattern is an aggregated (category, tag) feedback bucket.
type FeedbackPattern struct {
	Category      string  `json:"category"`
	Tag           string  `json:"tag"`
	Frequency     int     `json:"frequency"`
	AvgEngagement float64 `json:"avg_engagement"`
}
