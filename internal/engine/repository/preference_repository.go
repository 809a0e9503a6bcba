package repository

import (
	"context"
	"errors"

	"linkedin-content-engine/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryPreferenceRepository defines the interface for preference-weight operations.
type StoryPreferenceRepository interface {
	GetWeight(ctx context.Context, industry string) (float64, error)
	EnsureExists(ctx context.Context, industry string) error
	// DecayIndustry multiplies the industry's weight by factor in a single
	// row-level atomic update, clamped at entity.MinPreferenceWeight.
	DecayIndustry(ctx context.Context, industry string, factor float64) error
	FindAll(ctx context.Context) ([]entity.StoryPreference, error)
}

// NewStoryPreferenceRepository creates a new GORM-based preference repository.
func NewStoryPreferenceRepository(db *gorm.DB) StoryPreferenceRepository {
	return &storyPreferenceRepository{db: db}
}

type storyPreferenceRepository struct {
	db *gorm.DB
}

// GetWeight returns the stored weight for an industry, defaulting to 1.0.
func (r *storyPreferenceRepository) GetWeight(ctx context.Context, industry string) (float64, error) {
	var pref entity.StoryPreference
	err := r.db.WithContext(ctx).
		Where("industry = ?", industry).
		First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1.0, nil
		}
		return 0, err
	}
	return pref.Weight, nil
}

// EnsureExists creates the preference row with the default weight when missing.
func (r *storyPreferenceRepository) EnsureExists(ctx context.Context, industry string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.StoryPreference{Industry: industry, Weight: 1.0}).Error
}

// DecayIndustry applies the multiplicative decay with the configured floor.
func (r *storyPreferenceRepository) DecayIndustry(ctx context.Context, industry string, factor float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.StoryPreference{}).
		Where("industry = ?", industry).
		Update("weight", gorm.Expr("GREATEST(weight * ?, ?)", factor, entity.MinPreferenceWeight)).Error
}

// FindAll retrieves all preference rows.
func (r *storyPreferenceRepository) FindAll(ctx context.Context) ([]entity.StoryPreference, error) {
	var prefs []entity.StoryPreference
	if err := r.db.WithContext(ctx).Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}
