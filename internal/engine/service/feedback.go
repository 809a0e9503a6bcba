package service

import (
	"context"
	"fmt"

	"linkedin-content-engine/internal/engine/config"
	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/engine/repository"
	"linkedin-content-engine/internal/entity"
	"linkedin-content-engine/pkg/logger"
	"linkedin-content-engine/pkg/telegram"
)

const wrongIndustryDecay = 0.9

// FeedbackService records structured post feedback, drives the batch
// lifecycle and adjusts preference weights from aggregated patterns.
type FeedbackService interface {
	RecordFeedback(ctx context.Context, req dto.RecordFeedbackRequest) (*dto.RecordFeedbackResponse, error)
	GetBatchStatus(ctx context.Context, batchID uint) (*dto.BatchStatusResponse, error)
	CurrentBatch(ctx context.Context) (*dto.BatchStatusResponse, error)
	LearnFromFeedback(ctx context.Context) error
	History(ctx context.Context, companyName, industry string) ([]dto.FeedbackHistoryItem, error)
	SystemStats(ctx context.Context) (*dto.SystemStats, error)
}

// adjustmentFunc applies one learned adjustment for a (category, tag)
// feedback pattern. Patterns without a registered adjustment are only logged.
type adjustmentFunc func(ctx context.Context, s *feedbackService, pattern dto.FeedbackPattern) error

// adjustments maps feedback patterns to their weight adjustments. New
// patterns are wired here; the learner never dispatches on tag names inline.
var adjustments = map[string]adjustmentFunc{
	adjustmentKey(entity.FeedbackCategoryRelevance, "wrong_industry"): decayWrongIndustries,
}

func adjustmentKey(category entity.FeedbackCategory, tag string) string {
	return string(category) + ":" + tag
}

func decayWrongIndustries(ctx context.Context, s *feedbackService, pattern dto.FeedbackPattern) error {
	industries, err := s.feedbackRepo.IndustriesWithTag(ctx, entity.FeedbackCategory(pattern.Category), pattern.Tag)
	if err != nil {
		return err
	}
	for _, industry := range industries {
		if err := s.preferenceRepo.EnsureExists(ctx, industry); err != nil {
			return err
		}
		if err := s.preferenceRepo.DecayIndustry(ctx, industry, wrongIndustryDecay); err != nil {
			return err
		}
		s.logger.Info("Decayed industry preference weight",
			logger.StringField("industry", industry),
			logger.Float64Field("factor", wrongIndustryDecay),
		)
	}
	return nil
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	cfg *config.Config,
	feedbackRepo repository.FeedbackRepository,
	batchRepo repository.BatchRepository,
	postRepo repository.GeneratedPostRepository,
	preferenceRepo repository.StoryPreferenceRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) FeedbackService {
	return &feedbackService{
		cfg:            cfg,
		feedbackRepo:   feedbackRepo,
		batchRepo:      batchRepo,
		postRepo:       postRepo,
		preferenceRepo: preferenceRepo,
		notifier:       notifier,
		logger:         log,
	}
}

type feedbackService struct {
	cfg            *config.Config
	feedbackRepo   repository.FeedbackRepository
	batchRepo      repository.BatchRepository
	postRepo       repository.GeneratedPostRepository
	preferenceRepo repository.StoryPreferenceRepository
	notifier       telegram.Notifier
	logger         *logger.Logger
}

// RecordFeedback validates and stores one critique. Completing the post's
// batch triggers the learning pass.
func (s *feedbackService) RecordFeedback(ctx context.Context, req dto.RecordFeedbackRequest) (*dto.RecordFeedbackResponse, error) {
	category := entity.FeedbackCategory(req.Category)
	if _, ok := entity.FeedbackTagVocabulary[category]; !ok {
		return nil, fmt.Errorf("unknown feedback category %q", req.Category)
	}
	if len(req.Tags) == 0 {
		return nil, fmt.Errorf("feedback requires at least one tag")
	}
	for _, tag := range req.Tags {
		if !entity.IsValidFeedbackTag(category, tag) {
			return nil, fmt.Errorf("tag %q is not valid for category %q", tag, req.Category)
		}
	}

	feedback := &entity.PostFeedback{
		PostID:   req.PostID,
		Category: category,
		Tags:     req.Tags,
		Note:     req.Note,
	}
	batch, err := s.feedbackRepo.Record(ctx, feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}

	resp := &dto.RecordFeedbackResponse{PostID: req.PostID}
	if batch != nil {
		resp.Batch = batchStatus(batch)
		resp.BatchCompleted = batch.Status == entity.BatchStatusCompleted
	}

	if resp.BatchCompleted {
		s.logger.Info("Batch completed, running learning pass", logger.Field("batch_id", batch.ID))
		if err := s.LearnFromFeedback(ctx); err != nil {
			// The feedback itself is committed; learning reruns on the next
			// completion or scheduled pass.
			s.logger.Error("Learning pass failed", logger.ErrorField(err))
		}
		if s.notifier != nil {
			if err := s.notifier.SendMessage(telegram.FormatBatchCompleted(batch.ID, batch.TotalPosts)); err != nil {
				s.logger.Error("Failed to send batch completion notification", logger.ErrorField(err))
			}
		}
	}
	return resp, nil
}

// GetBatchStatus returns the review progress of one batch.
func (s *feedbackService) GetBatchStatus(ctx context.Context, batchID uint) (*dto.BatchStatusResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return batchStatus(batch), nil
}

// CurrentBatch returns the pending batch, or nil when none is open.
func (s *feedbackService) CurrentBatch(ctx context.Context) (*dto.BatchStatusResponse, error) {
	batch, err := s.batchRepo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return batchStatus(batch), nil
}

// LearnFromFeedback aggregates all feedback patterns and applies every
// registered adjustment. Patterns without an adjustment are logged so new
// tags surface before they are wired.
func (s *feedbackService) LearnFromFeedback(ctx context.Context) error {
	patterns, err := s.feedbackRepo.AggregatePatterns(ctx)
	if err != nil {
		return fmt.Errorf("failed to aggregate feedback: %w", err)
	}

	for _, pattern := range patterns {
		apply, ok := adjustments[adjustmentKey(entity.FeedbackCategory(pattern.Category), pattern.Tag)]
		if !ok {
			s.logger.Debug("No adjustment registered for feedback pattern",
				logger.StringField("category", pattern.Category),
				logger.StringField("tag", pattern.Tag),
				logger.IntField("frequency", pattern.Frequency),
			)
			continue
		}
		if err := apply(ctx, s, pattern); err != nil {
			return fmt.Errorf("adjustment for %s/%s failed: %w", pattern.Category, pattern.Tag, err)
		}
	}
	return nil
}

// History returns feedback records joined with their posts, optionally
// filtered by company or industry.
func (s *feedbackService) History(ctx context.Context, companyName, industry string) ([]dto.FeedbackHistoryItem, error) {
	return s.feedbackRepo.History(ctx, companyName, industry)
}

// SystemStats summarizes generation volume, review outcomes, score averages
// and the most frequent feedback patterns.
func (s *feedbackService) SystemStats(ctx context.Context) (*dto.SystemStats, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	approvals, err := s.postRepo.ApprovalStats(ctx)
	if err != nil {
		return nil, err
	}
	averages, err := s.postRepo.Averages(ctx)
	if err != nil {
		return nil, err
	}
	patterns, err := s.feedbackRepo.AggregatePatterns(ctx)
	if err != nil {
		return nil, err
	}
	if len(patterns) > 5 {
		patterns = patterns[:5]
	}

	stats := &dto.SystemStats{
		TotalPosts:    int(total),
		TotalReviewed: approvals.TotalReviewed,
		ApprovedCount: approvals.ApprovedCount,
		AverageScores: map[string]float64{
			"engagement":   averages.Engagement,
			"relevance":    averages.Relevance,
			"readability":  averages.Readability,
			"authenticity": averages.Authenticity,
		},
		TopFeedback: patterns,
	}
	if approvals.TotalReviewed > 0 {
		stats.ApprovalRate = float64(approvals.ApprovedCount) / float64(approvals.TotalReviewed)
	}
	return stats, nil
}

func batchStatus(batch *entity.Batch) *dto.BatchStatusResponse {
	return &dto.BatchStatusResponse{
		BatchID:           batch.ID,
		Status:            string(batch.Status),
		TotalPosts:        batch.TotalPosts,
		PostsWithFeedback: batch.PostsWithFeedback,
	}
}
