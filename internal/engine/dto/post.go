package dto

import "time"

// QualityScores carries the four quality sub-scores of a post plus the
// accept/regenerate decision of the gating rule.
type QualityScores struct {
	Engagement   float64 `json:"engagement"`
	Readability  float64 `json:"readability"`
	Authenticity float64 `json:"authenticity"`
	Relevance    float64 `json:"relevance"`
	Accept       bool    `json:"accept"`
}

// ScorePostRequest asks for quality scores of arbitrary post text. StoryID is
// optional; when present the relevance score is computed against that story.
type ScorePostRequest struct {
	Text    string `json:"text"`
	StoryID uint   `json:"story_id,omitempty"`
}

// GeneratePostRequest requests a single automatic post generation.
type GeneratePostRequest struct {
	StoryID uint `json:"story_id,omitempty"` // 0 picks a random story
}

// PostResponse is the API representation of a generated post.
type PostResponse struct {
	ID                uint      `json:"id"`
	StoryID           uint      `json:"story_id"`
	Industry          string    `json:"industry"`
	CompanyName       string    `json:"company_name"`
	PostType          string    `json:"post_type"`
	Content           string    `json:"content"`
	EngagementScore   float64   `json:"engagement_score"`
	RelevanceScore    float64   `json:"relevance_score"`
	ReadabilityScore  float64   `json:"readability_score"`
	AuthenticityScore float64   `json:"authenticity_score"`
	Approved          *bool     `json:"approved,omitempty"`
	FeedbackReceived  bool      `json:"feedback_received"`
	BatchID           *uint     `json:"batch_id,omitempty"`
	Attempts          int       `json:"attempts"`
	CreatedAt         time.Time `json:"created_at"`
}

// ApprovalRequest records a human approve/reject decision for a post.
type ApprovalRequest struct {
	Approved bool `json:"approved"`
}

// GenerateBatchResponse reports a created batch and its posts.
type GenerateBatchResponse struct {
	BatchID uint           `json:"batch_id"`
	Posts   []PostResponse `json:"posts"`
}
