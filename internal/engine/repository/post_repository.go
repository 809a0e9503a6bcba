package repository

import (
	"context"
	"time"

	"linkedin-content-engine/internal/entity"

	"gorm.io/gorm"
)

// IndustryPerformance is the aggregated engagement of an industry's posts.
type IndustryPerformance struct {
	Industry      string  `json:"industry"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// ScoreAverages holds the mean of each quality sub-score across all posts.
type ScoreAverages struct {
	Engagement   float64 `json:"engagement"`
	Relevance    float64 `json:"relevance"`
	Readability  float64 `json:"readability"`
	Authenticity float64 `json:"authenticity"`
}

// ApprovalStats summarizes the review outcomes across all reviewed posts.
type ApprovalStats struct {
	TotalReviewed int `json:"total_reviewed"`
	ApprovedCount int `json:"approved_count"`
}

// GeneratedPostRepository defines the interface for generated-post data operations.
type GeneratedPostRepository interface {
	Create(ctx context.Context, post *entity.GeneratedPost) error
	FindByID(ctx context.Context, id uint) (*entity.GeneratedPost, error)
	FindPending(ctx context.Context, limit int) ([]entity.GeneratedPost, error)
	FindByBatchID(ctx context.Context, batchID uint) ([]entity.GeneratedPost, error)
	SetApproval(ctx context.Context, id uint, approved bool) error
	TopPerformingIndustries(ctx context.Context, since time.Time, limit int) ([]IndustryPerformance, error)
	BestPostType(ctx context.Context, industry string) (entity.StoryType, float64, error)
	Count(ctx context.Context) (int64, error)
	Averages(ctx context.Context) (*ScoreAverages, error)
	ApprovalStats(ctx context.Context) (*ApprovalStats, error)
}

// NewGeneratedPostRepository creates a new GORM-based generated-post repository.
func NewGeneratedPostRepository(db *gorm.DB) GeneratedPostRepository {
	return &generatedPostRepository{db: db}
}

type generatedPostRepository struct {
	db *gorm.DB
}

// Create saves a new generated post.
func (r *generatedPostRepository) Create(ctx context.Context, post *entity.GeneratedPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID retrieves a generated post by its ID.
func (r *generatedPostRepository) FindByID(ctx context.Context, id uint) (*entity.GeneratedPost, error) {
	var post entity.GeneratedPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPending retrieves posts that have not been reviewed yet.
func (r *generatedPostRepository) FindPending(ctx context.Context, limit int) ([]entity.GeneratedPost, error) {
	var posts []entity.GeneratedPost
	err := r.db.WithContext(ctx).
		Where("approved IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByBatchID retrieves all posts belonging to a batch.
func (r *generatedPostRepository) FindByBatchID(ctx context.Context, batchID uint) ([]entity.GeneratedPost, error) {
	var posts []entity.GeneratedPost
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SetApproval records a human approve/reject decision.
func (r *generatedPostRepository) SetApproval(ctx context.Context, id uint, approved bool) error {
	result := r.db.WithContext(ctx).
		Model(&entity.GeneratedPost{}).
		Where("id = ?", id).
		Update("approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TopPerformingIndustries returns industries ordered by average engagement of
// posts without negative feedback since the given time.
func (r *generatedPostRepository) TopPerformingIndustries(ctx context.Context, since time.Time, limit int) ([]IndustryPerformance, error) {
	var rows []IndustryPerformance
	err := r.db.WithContext(ctx).
		Table("generated_posts p").
		Select("p.industry AS industry, AVG(p.engagement_score) AS avg_engagement").
		Joins("LEFT JOIN post_feedback f ON f.post_id = p.id").
		Where("f.id IS NULL AND p.created_at >= ?", since).
		Group("p.industry").
		Order("avg_engagement DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BestPostType returns the most frequent post type without negative feedback
// in an industry, along with its average engagement score.
func (r *generatedPostRepository) BestPostType(ctx context.Context, industry string) (entity.StoryType, float64, error) {
	var row struct {
		PostType      string
		AvgEngagement float64
	}
	err := r.db.WithContext(ctx).
		Table("generated_posts p").
		Select("p.post_type AS post_type, AVG(p.engagement_score) AS avg_engagement").
		Joins("LEFT JOIN post_feedback f ON f.post_id = p.id").
		Where("p.industry = ? AND f.id IS NULL", industry).
		Group("p.post_type").
		Order("COUNT(*) DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return "", 0, err
	}
	if row.PostType == "" {
		return "", 0, gorm.ErrRecordNotFound
	}
	return entity.StoryType(row.PostType), row.AvgEngagement, nil
}

// Count returns the total number of generated posts.
func (r *generatedPostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.GeneratedPost{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Averages returns the mean of each quality sub-score across all posts.
func (r *generatedPostRepository) Averages(ctx context.Context) (*ScoreAverages, error) {
	var avg ScoreAverages
	err := r.db.WithContext(ctx).
		Model(&entity.GeneratedPost{}).
		Select(
			"COALESCE(AVG(engagement_score), 0) AS engagement",
			"COALESCE(AVG(relevance_score), 0) AS relevance",
			"COALESCE(AVG(readability_score), 0) AS readability",
			"COALESCE(AVG(authenticity_score), 0) AS authenticity",
		).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return &avg, nil
}

// ApprovalStats returns review totals across all posts with a decision.
func (r *generatedPostRepository) ApprovalStats(ctx context.Context) (*ApprovalStats, error) {
	var stats ApprovalStats
	err := r.db.WithContext(ctx).
		Model(&entity.GeneratedPost{}).
		Select(
			"COUNT(*) AS total_reviewed",
			"COUNT(CASE WHEN approved THEN 1 END) AS approved_count",
		).
		Where("approved IS NOT NULL").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
