package entity

import "time"

// BatchStatus is the lifecycle state of a review batch.
type BatchStatus string

const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusCompleted BatchStatus = "completed"
)

// Batch groups generated posts for review. At most one batch may be pending
// at a time; it completes once every post in it has received feedback.
type Batch struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	Status            BatchStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalPosts        int         `gorm:"not null;default:0" json:"total_posts"`
	PostsWithFeedback int         `gorm:"not null;default:0" json:"posts_with_feedback"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt       *time.Time  `json:"completed_at,omitempty"`
}

// TableName specifies the table name for the Batch model.
func (Batch) TableName() string {
	return "batches"
}
