package service

import (
	"context"
	"testing"
	"time"

	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/engine/repository"
	"linkedin-content-engine/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecommender(storyRepo *stubStoryRepo, postRepo *stubPostRepo, prefRepo *stubPreferenceRepo) RecommenderService {
	return NewRecommenderService(testConfig(), storyRepo, postRepo, prefRepo, nopLogger())
}

func TestConfidenceScoreFullMarks(t *testing.T) {
	svc := newTestRecommender(&stubStoryRepo{}, &stubPostRepo{}, &stubPreferenceRepo{})

	now := time.Now()
	story := &entity.Story{LatestNewsAt: &now, NewsCount: 10, AvgSentiment: 1.0}
	settings := dto.RecommendedSettings{EngagementRate: 1.0}

	assert.InDelta(t, 1.0, svc.ConfidenceScore(story, settings, 1.0), 1e-6)
}

func TestConfidenceScoreStaleStory(t *testing.T) {
	svc := newTestRecommender(&stubStoryRepo{}, &stubPostRepo{}, &stubPreferenceRepo{})

	old := time.Now().AddDate(0, 0, -60)
	story := &entity.Story{LatestNewsAt: &old, NewsCount: 0, AvgSentiment: -1.0}

	// Freshness bottoms out at zero instead of going negative.
	assert.InDelta(t, 0.0, svc.ConfidenceScore(story, dto.RecommendedSettings{}, 1.0), 1e-9)
}

func TestConfidenceScoreCoverageSaturates(t *testing.T) {
	svc := newTestRecommender(&stubStoryRepo{}, &stubPostRepo{}, &stubPreferenceRepo{})

	low := svc.ConfidenceScore(&entity.Story{NewsCount: 1}, dto.RecommendedSettings{}, 1.0)
	mid := svc.ConfidenceScore(&entity.Story{NewsCount: 5}, dto.RecommendedSettings{}, 1.0)
	atCap := svc.ConfidenceScore(&entity.Story{NewsCount: 10}, dto.RecommendedSettings{}, 1.0)
	overCap := svc.ConfidenceScore(&entity.Story{NewsCount: 50}, dto.RecommendedSettings{}, 1.0)

	assert.Less(t, low, mid)
	assert.Less(t, mid, atCap)
	assert.Equal(t, atCap, overCap)
}

func TestConfidenceScoreWeightBias(t *testing.T) {
	svc := newTestRecommender(&stubStoryRepo{}, &stubPostRepo{}, &stubPreferenceRepo{})

	story := &entity.Story{NewsCount: 10, AvgSentiment: 1.0}
	full := svc.ConfidenceScore(story, dto.RecommendedSettings{}, 1.0)
	halved := svc.ConfidenceScore(story, dto.RecommendedSettings{}, 0.5)

	assert.InDelta(t, full/2, halved, 1e-9)
}

func TestGetRecommendedSettingsDefault(t *testing.T) {
	svc := newTestRecommender(&stubStoryRepo{}, &stubPostRepo{}, &stubPreferenceRepo{})

	settings, err := svc.GetRecommendedSettings(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, entity.StoryTypeInnovation, settings.PostType)
	assert.Equal(t, 0.0, settings.EngagementRate)
}

func TestGetRecommendationsTrendingThenRecent(t *testing.T) {
	now := time.Now()
	storyRepo := &stubStoryRepo{
		trending: []entity.Story{
			{ID: 1, Industry: "technology", LatestNewsAt: &now, NewsCount: 10, AvgSentiment: 0.5},
			{ID: 2, Industry: "technology", NewsCount: 2},
		},
		recent: []entity.Story{
			{ID: 2, Industry: "technology", NewsCount: 2},
			{ID: 3, Industry: "retail", NewsCount: 1},
		},
	}
	postRepo := &stubPostRepo{
		topIndustries: []repository.IndustryPerformance{{Industry: "technology", AvgEngagement: 0.8}},
		bestPostTypes: map[string]bestPostTypeResult{
			"technology": {postType: entity.StoryTypeSuccess, engagement: 0.8},
		},
	}
	svc := newTestRecommender(storyRepo, postRepo, &stubPreferenceRepo{})

	recommendations, err := svc.GetRecommendations(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, recommendations, 3)

	// Stories already picked as trending are excluded from the backfill.
	ids := make(map[uint]int)
	for _, rec := range recommendations {
		ids[rec.Story.ID]++
	}
	assert.Equal(t, map[uint]int{1: 1, 2: 1, 3: 1}, ids)

	for i := 1; i < len(recommendations); i++ {
		assert.GreaterOrEqual(t, recommendations[i-1].ConfidenceScore, recommendations[i].ConfidenceScore)
	}

	for _, rec := range recommendations {
		switch rec.Story.ID {
		case 1, 2:
			assert.Equal(t, "trending", rec.Source)
			assert.Equal(t, entity.StoryTypeSuccess, rec.Settings.PostType)
		case 3:
			assert.Equal(t, "recent", rec.Source)
			assert.Equal(t, entity.StoryTypeInnovation, rec.Settings.PostType)
		}
	}
}

func TestGetRecommendationsWeightReordersStories(t *testing.T) {
	storyRepo := &stubStoryRepo{
		trending: []entity.Story{
			{ID: 1, Industry: "technology", NewsCount: 10},
			{ID: 2, Industry: "finance", NewsCount: 10},
		},
	}
	postRepo := &stubPostRepo{
		topIndustries: []repository.IndustryPerformance{
			{Industry: "technology"},
			{Industry: "finance"},
		},
	}
	prefRepo := &stubPreferenceRepo{weights: map[string]float64{"technology": 0.1}}
	svc := newTestRecommender(storyRepo, postRepo, prefRepo)

	recommendations, err := svc.GetRecommendations(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)

	// Identical stories, but the decayed technology weight demotes story 1.
	assert.Equal(t, uint(2), recommendations[0].Story.ID)
	assert.Equal(t, uint(1), recommendations[1].Story.ID)
}
