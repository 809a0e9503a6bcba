package repository

import (
	"context"
	"time"

	"linkedin-content-engine/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story data operations.
type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) error
	Upsert(ctx context.Context, story *entity.Story) error
	FindByID(ctx context.Context, id uint) (*entity.Story, error)
	FindRandom(ctx context.Context) (*entity.Story, error)
	FindRandomN(ctx context.Context, n int) ([]entity.Story, error)
	FindTrending(ctx context.Context, since time.Time, minNewsCount int) ([]entity.Story, error)
	FindRecent(ctx context.Context, limit int, excludeIDs []uint) ([]entity.Story, error)
}

// NewStoryRepository creates a new GORM-based story repository.
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

type storyRepository struct {
	db *gorm.DB
}

// Create saves a new story.
func (r *storyRepository) Create(ctx context.Context, story *entity.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

// Upsert inserts a story or refreshes its enrichment fields when the URL is
// already known.
func (r *storyRepository) Upsert(ctx context.Context, story *entity.Story) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"latest_news_at", "news_count", "avg_sentiment", "keywords"}),
	}).Create(story).Error
}

// FindByID retrieves a story by its ID.
func (r *storyRepository) FindByID(ctx context.Context, id uint) (*entity.Story, error) {
	var story entity.Story
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// FindRandom retrieves a single random story.
func (r *storyRepository) FindRandom(ctx context.Context) (*entity.Story, error) {
	var story entity.Story
	if err := r.db.WithContext(ctx).Order("RANDOM()").First(&story).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// FindRandomN retrieves up to n random stories.
func (r *storyRepository) FindRandomN(ctx context.Context, n int) ([]entity.Story, error) {
	var stories []entity.Story
	if err := r.db.WithContext(ctx).Order("RANDOM()").Limit(n).Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

// FindTrending retrieves stories with recent news coverage.
func (r *storyRepository) FindTrending(ctx context.Context, since time.Time, minNewsCount int) ([]entity.Story, error) {
	var stories []entity.Story
	err := r.db.WithContext(ctx).
		Where("latest_news_at >= ? AND news_count >= ?", since, minNewsCount).
		Order("news_count DESC, latest_news_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

// FindRecent retrieves the most recently collected stories, excluding the
// given IDs.
func (r *storyRepository) FindRecent(ctx context.Context, limit int, excludeIDs []uint) ([]entity.Story, error) {
	var stories []entity.Story
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}
