package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"linkedin-content-engine/internal/engine/config"
	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/engine/repository"
	"linkedin-content-engine/internal/entity"
	"linkedin-content-engine/pkg/logger"
	"linkedin-content-engine/pkg/utils"

	"gorm.io/gorm"
)

const (
	trendingWindowDays  = 7
	trendingMinNewsCnt  = 2
	freshnessCap        = 0.3
	freshnessDecayPerDy = 0.01
	coverageCap         = 0.2
	coveragePerArticle  = 0.02
	performanceCap      = 0.3
)

// RecommenderService ranks candidate stories by a composite confidence score.
type RecommenderService interface {
	GetRecommendations(ctx context.Context, count int) ([]dto.Recommendation, error)
	GetRecommendedSettings(ctx context.Context, industry string) (dto.RecommendedSettings, error)
	ConfidenceScore(story *entity.Story, settings dto.RecommendedSettings, weight float64) float64
}

// NewRecommenderService creates a new recommender service.
func NewRecommenderService(
	cfg *config.Config,
	storyRepo repository.StoryRepository,
	postRepo repository.GeneratedPostRepository,
	prefRepo repository.StoryPreferenceRepository,
	log *logger.Logger,
) RecommenderService {
	return &recommenderService{
		cfg:       cfg,
		storyRepo: storyRepo,
		postRepo:  postRepo,
		prefRepo:  prefRepo,
		logger:    log,
	}
}

type recommenderService struct {
	cfg       *config.Config
	storyRepo repository.StoryRepository
	postRepo  repository.GeneratedPostRepository
	prefRepo  repository.StoryPreferenceRepository
	logger    *logger.Logger
}

// ConfidenceScore combines freshness, news coverage, sentiment and historical
// industry performance, each term independently capped, then biases the sum by
// the industry preference weight. The unweighted sum is bounded to [0, 1].
func (s *recommenderService) ConfidenceScore(story *entity.Story, settings dto.RecommendedSettings, weight float64) float64 {
	var score float64

	if story.LatestNewsAt != nil {
		daysOld := time.Since(*story.LatestNewsAt).Hours() / 24
		score += math.Max(0, freshnessCap-daysOld*freshnessDecayPerDy)
	}

	score += math.Min(coverageCap, float64(story.NewsCount)*coveragePerArticle)

	// avg_sentiment in [-1, 1] maps to [0, 0.2]
	score += (story.AvgSentiment + 1) * 0.1

	score += math.Min(performanceCap, settings.EngagementRate*performanceCap)

	score = utils.Clamp01(score)
	if weight > 0 {
		score *= weight
	}
	return score
}

// GetRecommendedSettings derives generation settings from past posts in the
// industry that carry no negative feedback, with a fixed default otherwise.
func (s *recommenderService) GetRecommendedSettings(ctx context.Context, industry string) (dto.RecommendedSettings, error) {
	postType, engagement, err := s.postRepo.BestPostType(ctx, industry)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecommendedSettings{PostType: entity.StoryTypeInnovation}, nil
		}
		return dto.RecommendedSettings{}, err
	}
	return dto.RecommendedSettings{PostType: postType, EngagementRate: engagement}, nil
}

// GetRecommendations selects candidate stories, trending stories within the
// top-performing industries first, recent stories as backfill, and returns
// them ordered by confidence score descending. Equal scores keep selection
// order.
func (s *recommenderService) GetRecommendations(ctx context.Context, count int) ([]dto.Recommendation, error) {
	if count <= 0 {
		count = s.cfg.Engine.RecommendationLimit
	}

	windowStart := time.Now().AddDate(0, 0, -s.cfg.Engine.PerformanceWindowDay)
	topIndustries, err := s.postRepo.TopPerformingIndustries(ctx, windowStart, s.cfg.Engine.TopIndustryLimit)
	if err != nil {
		return nil, err
	}

	trendingSince := time.Now().AddDate(0, 0, -trendingWindowDays)
	trending, err := s.storyRepo.FindTrending(ctx, trendingSince, trendingMinNewsCnt)
	if err != nil {
		return nil, err
	}

	var recommendations []dto.Recommendation
	used := make(map[uint]struct{})
	settingsByIndustry := make(map[string]dto.RecommendedSettings)
	weightByIndustry := make(map[string]float64)

	appendStory := func(story entity.Story, source string) error {
		settings, ok := settingsByIndustry[story.Industry]
		if !ok {
			var err error
			settings, err = s.GetRecommendedSettings(ctx, story.Industry)
			if err != nil {
				return err
			}
			settingsByIndustry[story.Industry] = settings
		}
		weight, ok := weightByIndustry[story.Industry]
		if !ok {
			var err error
			weight, err = s.prefRepo.GetWeight(ctx, story.Industry)
			if err != nil {
				return err
			}
			weightByIndustry[story.Industry] = weight
		}
		recommendations = append(recommendations, dto.Recommendation{
			Story:           story,
			Settings:        settings,
			Source:          source,
			ConfidenceScore: s.ConfidenceScore(&story, settings, weight),
		})
		used[story.ID] = struct{}{}
		return nil
	}

	for _, industry := range topIndustries {
		if len(recommendations) >= count {
			break
		}
		for _, story := range trending {
			if len(recommendations) >= count {
				break
			}
			if story.Industry != industry.Industry {
				continue
			}
			if _, taken := used[story.ID]; taken {
				continue
			}
			if err := appendStory(story, "trending"); err != nil {
				return nil, err
			}
		}
	}

	if len(recommendations) < count {
		excluded := make([]uint, 0, len(used))
		for id := range used {
			excluded = append(excluded, id)
		}
		recent, err := s.storyRepo.FindRecent(ctx, count-len(recommendations), excluded)
		if err != nil {
			return nil, err
		}
		for _, story := range recent {
			if err := appendStory(story, "recent"); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].ConfidenceScore > recommendations[j].ConfidenceScore
	})

	s.logger.Debug("Built recommendations", logger.IntField("count", len(recommendations)))
	return recommendations, nil
}
