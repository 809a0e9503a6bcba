package repository

import (
	"context"
	"time"

	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/entity"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// FeedbackRepository defines the interface for feedback data operations.
type FeedbackRepository interface {
	// Record inserts the feedback, marks the post, advances the batch counter
	// and completes the batch when every post has feedback. The whole update
	// runs in one transaction; the returned batch (nil when the post is not
	// in a batch) reflects the state after the update.
	Record(ctx context.Context, feedback *entity.PostFeedback) (*entity.Batch, error)
	AggregatePatterns(ctx context.Context) ([]dto.FeedbackPattern, error)
	IndustriesWithTag(ctx context.Context, category entity.FeedbackCategory, tag string) ([]string, error)
	History(ctx context.Context, companyName, industry string) ([]dto.FeedbackHistoryItem, error)
}

// NewFeedbackRepository creates a new GORM-based feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

type feedbackRepository struct {
	db *gorm.DB
}

func (r *feedbackRepository) Record(ctx context.Context, feedback *entity.PostFeedback) (*entity.Batch, error) {
	var batch *entity.Batch
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post entity.GeneratedPost
		if err := tx.First(&post, feedback.PostID).Error; err != nil {
			return err
		}

		if err := tx.Create(feedback).Error; err != nil {
			return err
		}

		// The mark is conditional on the flag still being unset and the
		// counter only advances when this statement claimed the flag, so
		// concurrent submissions for the same post count at most once.
		mark := tx.Model(&entity.GeneratedPost{}).
			Where("id = ? AND feedback_received = ?", post.ID, false).
			Update("feedback_received", true)
		if mark.Error != nil {
			return mark.Error
		}

		if mark.RowsAffected == 1 && post.BatchID != nil {
			// Counter increment and completion are both guarded on the
			// pending status, so concurrent submissions cannot complete
			// a batch twice or lose an update.
			if err := tx.Model(&entity.Batch{}).
				Where("id = ? AND status = ?", *post.BatchID, entity.BatchStatusPending).
				Update("posts_with_feedback", gorm.Expr("posts_with_feedback + 1")).Error; err != nil {
				return err
			}
			now := time.Now()
			if err := tx.Model(&entity.Batch{}).
				Where("id = ? AND status = ? AND posts_with_feedback >= total_posts", *post.BatchID, entity.BatchStatusPending).
				Updates(map[string]interface{}{
					"status":       entity.BatchStatusCompleted,
					"completed_at": &now,
				}).Error; err != nil {
				return err
			}
		}

		if post.BatchID != nil {
			var b entity.Batch
			if err := tx.First(&b, *post.BatchID).Error; err != nil {
				return err
			}
			batch = &b
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// AggregatePatterns groups all feedback by (category, tag) with frequency and
// the average engagement score of the posts carrying that pair.
func (r *feedbackRepository) AggregatePatterns(ctx context.Context) ([]dto.FeedbackPattern, error) {
	var rows []dto.FeedbackPattern
	err := r.db.WithContext(ctx).
		Table("post_feedback f").
		Select(
			"f.category AS category",
			"t.tag AS tag",
			"COUNT(*) AS frequency",
			"AVG(p.engagement_score) AS avg_engagement",
		).
		Joins("CROSS JOIN LATERAL unnest(f.tags) AS t(tag)").
		Joins("JOIN generated_posts p ON p.id = f.post_id").
		Group("f.category, t.tag").
		Order("frequency DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IndustriesWithTag returns the distinct industries of posts that received
// the given (category, tag) feedback.
func (r *feedbackRepository) IndustriesWithTag(ctx context.Context, category entity.FeedbackCategory, tag string) ([]string, error) {
	var industries []string
	err := r.db.WithContext(ctx).
		Table("post_feedback f").
		Distinct("p.industry").
		Joins("JOIN generated_posts p ON p.id = f.post_id").
		Where("f.category = ? AND ? = ANY(f.tags)", category, tag).
		Pluck("p.industry", &industries).Error
	if err != nil {
		return nil, err
	}
	return industries, nil
}

// History returns feedback records joined with their posts, optionally
// filtered by company name and industry.
func (r *feedbackRepository) History(ctx context.Context, companyName, industry string) ([]dto.FeedbackHistoryItem, error) {
	type row struct {
		PostID      uint
		CompanyName string
		Industry    string
		PostType    string
		Category    string
		Tags        pq.StringArray `gorm:"type:text[]"`
		Note        string
		CreatedAt   time.Time
	}

	q := r.db.WithContext(ctx).
		Table("post_feedback f").
		Select("p.id AS post_id, p.company_name, p.industry, p.post_type, f.category, f.tags, f.note, f.created_at").
		Joins("JOIN generated_posts p ON p.id = f.post_id").
		Order("f.created_at DESC")
	if companyName != "" {
		q = q.Where("p.company_name = ?", companyName)
	}
	if industry != "" {
		q = q.Where("p.industry = ?", industry)
	}

	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]dto.FeedbackHistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.FeedbackHistoryItem{
			PostID:      r.PostID,
			CompanyName: r.CompanyName,
			Industry:    r.Industry,
			PostType:    r.PostType,
			Category:    r.Category,
			Tags:        r.Tags,
			Note:        r.Note,
			CreatedAt:   r.CreatedAt,
		})
	}
	return items, nil
}
