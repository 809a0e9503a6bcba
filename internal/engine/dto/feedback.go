package dto

import "time"

// RecordFeedbackRequest attaches a structured critique to a generated post.
type RecordFeedbackRequest struct {
	PostID   uint     `json:"post_id"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Note     string   `json:"note,omitempty"`
}

// RecordFeedbackResponse reports the batch state after feedback was recorded.
type RecordFeedbackResponse struct {
	PostID         uint                 `json:"post_id"`
	BatchCompleted bool                 `json:"batch_completed"`
	Batch          *BatchStatusResponse `json:"batch,omitempty"`
}

// BatchStatusResponse reports the review progress of a batch.
type BatchStatusResponse struct {
	BatchID           uint   `json:"batch_id"`
	Status            string `json:"status"`
	TotalPosts        int    `json:"total_posts"`
	PostsWithFeedback int    `json:"posts_with_feedback"`
}

// FeedbackHistoryItem is one feedback record joined with its post.
type FeedbackHistoryItem struct {
	PostID      uint      `json:"post_id"`
	CompanyName string    `json:"company_name"`
	Industry    string    `json:"industry"`
	PostType    string    `json:"post_type"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
