package repository

import (
	"context"
	"errors"

	"linkedin-content-engine/internal/entity"

	"gorm.io/gorm"
)

// BatchRepository defines the interface for batch data operations.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	FindByID(ctx context.Context, id uint) (*entity.Batch, error)
	FindPending(ctx context.Context) (*entity.Batch, error)
	SetTotalPosts(ctx context.Context, id uint, total int) error
	Delete(ctx context.Context, id uint) error
}

// NewBatchRepository creates a new GORM-based batch repository.
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

type batchRepository struct {
	db *gorm.DB
}

// Create saves a new batch.
func (r *batchRepository) Create(ctx context.Context, batch *entity.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// FindByID retrieves a batch by its ID.
func (r *batchRepository) FindByID(ctx context.Context, id uint) (*entity.Batch, error) {
	var batch entity.Batch
	if err := r.db.WithContext(ctx).First(&batch, id).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// FindPending retrieves the most recent pending batch, or nil when none exists.
func (r *batchRepository) FindPending(ctx context.Context) (*entity.Batch, error) {
	var batch entity.Batch
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.BatchStatusPending).
		Order("created_at DESC").
		First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

// Delete removes a batch. Used to discard a batch that ended up empty.
func (r *batchRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Batch{}, id).Error
}

// SetTotalPosts records how many posts were generated into the batch.
func (r *batchRepository) SetTotalPosts(ctx context.Context, id uint, total int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("id = ?", id).
		Update("total_posts", total).Error
}
