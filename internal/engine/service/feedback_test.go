package service

import (
	"context"
	"testing"

	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeedbackService(feedbackRepo *stubFeedbackRepo, batchRepo *stubBatchRepo, postRepo *stubPostRepo, prefRepo *stubPreferenceRepo, notifier *stubNotifier) FeedbackService {
	var n stubNotifier
	if notifier == nil {
		notifier = &n
	}
	return NewFeedbackService(testConfig(), feedbackRepo, batchRepo, postRepo, prefRepo, notifier, nopLogger())
}

func TestRecordFeedbackRejectsUnknownCategory(t *testing.T) {
	svc := newTestFeedbackService(&stubFeedbackRepo{}, &stubBatchRepo{}, &stubPostRepo{}, &stubPreferenceRepo{}, nil)

	_, err := svc.RecordFeedback(context.Background(), dto.RecordFeedbackRequest{
		PostID:   1,
		Category: "vibes",
		Tags:     []string{"too_long"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feedback category")
}

func TestRecordFeedbackRejectsInvalidTag(t *testing.T) {
	svc := newTestFeedbackService(&stubFeedbackRepo{}, &stubBatchRepo{}, &stubPostRepo{}, &stubPreferenceRepo{}, nil)

	_, err := svc.RecordFeedback(context.Background(), dto.RecordFeedbackRequest{
		PostID:   1,
		Category: "content",
		Tags:     []string{"wrong_industry"}, // belongs to relevance
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid for category")
}

func TestRecordFeedbackRequiresTags(t *testing.T) {
	svc := newTestFeedbackService(&stubFeedbackRepo{}, &stubBatchRepo{}, &stubPostRepo{}, &stubPreferenceRepo{}, nil)

	_, err := svc.RecordFeedback(context.Background(), dto.RecordFeedbackRequest{
		PostID:   1,
		Category: "content",
	})
	require.Error(t, err)
}

func TestRecordFeedbackReportsBatchProgress(t *testing.T) {
	feedbackRepo := &stubFeedbackRepo{
		recordBatch: &entity.Batch{ID: 7, Status: entity.BatchStatusPending, TotalPosts: 5, PostsWithFeedback: 2},
	}
	svc := newTestFeedbackService(feedbackRepo, &stubBatchRepo{}, &stubPostRepo{}, &stubPreferenceRepo{}, nil)

	resp, err := svc.RecordFeedback(context.Background(), dto.RecordFeedbackRequest{
		PostID:   3,
		Category: "style",
		Tags:     []string{"wrong_tone", "too_formal"},
	})
	require.NoError(t, err)
	assert.False(t, resp.BatchCompleted)
	require.NotNil(t, resp.Batch)
	assert.Equal(t, uint(7), resp.Batch.BatchID)
	assert.Equal(t, 2, resp.Batch.PostsWithFeedback)

	require.Len(t, feedbackRepo.recorded, 1)
	assert.Equal(t, entity.FeedbackCategoryStyle, feedbackRepo.recorded[0].Category)
}

func TestRecordFeedbackCompletionTriggersLearning(t *testing.T) {
	feedbackRepo := &stubFeedbackRepo{
		recordBatch: &entity.Batch{ID: 7, Status: entity.BatchStatusCompleted, TotalPosts: 5, PostsWithFeedback: 5},
		patterns: []dto.FeedbackPattern{
			{Category: "relevance", Tag: "wrong_industry", Frequency: 3},
		},
		tagHits: map[string][]string{
			"relevance:wrong_industry": {"finance"},
		},
	}
	prefRepo := &stubPreferenceRepo{weights: map[string]float64{"finance": 1.0}}
	notifier := &stubNotifier{}
	svc := newTestFeedbackService(feedbackRepo, &stubBatchRepo{}, &stubPostRepo{}, prefRepo, notifier)

	resp, err := svc.RecordFeedback(context.Background(), dto.RecordFeedbackRequest{
		PostID:   3,
		Category: "relevance",
		Tags:     []string{"wrong_industry"},
	})
	require.NoError(t, err)
	assert.True(t, resp.BatchCompleted)

	assert.Equal(t, 1, prefRepo.decays["finance"])
	assert.InDelta(t, 0.9, prefRepo.weights["finance"], 1e-9)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Batch #7 completed")
}

func TestLearnFromFeedbackDecayCompounds(t *testing.T) {
	feedbackRepo := &stubFeedbackRepo{
		patterns: []dto.FeedbackPattern{
			{Category: "relevance", Tag: "wrong_industry", Frequency: 2},
		},
		tagHits: map[string][]string{
			"relevance:wrong_industry": {"finance"},
		},
	}
	prefRepo := &stubPreferenceRepo{weights: map[string]float64{"finance": 1.0}}
	svc := newTestFeedbackService(feedbackRepo, &stubBatchRepo{}, &stubPostRepo{}, prefRepo, nil)

	require.NoError(t, svc.LearnFromFeedback(context.Background()))
	require.NoError(t, svc.LearnFromFeedback(context.Background()))

	assert.InDelta(t, 0.81, prefRepo.weights["finance"], 1e-9)
}

func TestLearnFromFeedbackUnmappedPatternIsNoOp(t *testing.T) {
	feedbackRepo := &stubFeedbackRepo{
		patterns: []dto.FeedbackPattern{
			{Category: "content", Tag: "too_long", Frequency: 4},
		},
	}
	prefRepo := &stubPreferenceRepo{}
	svc := newTestFeedbackService(feedbackRepo, &stubBatchRepo{}, &stubPostRepo{}, prefRepo, nil)

	require.NoError(t, svc.LearnFromFeedback(context.Background()))
	assert.Empty(t, prefRepo.decays)
}

func TestLearnFromFeedbackWeightFloor(t *testing.T) {
	feedbackRepo := &stubFeedbackRepo{
		patterns: []dto.FeedbackPattern{
			{Category: "relevance", Tag: "wrong_industry", Frequency: 1},
		},
		tagHits: map[string][]string{
			"relevance:wrong_industry": {"finance"},
		},
	}
	prefRepo := &stubPreferenceRepo{weights: map[string]float64{"finance": 1.0}}
	svc := newTestFeedbackService(feedbackRepo, &stubBatchRepo{}, &stubPostRepo{}, prefRepo, nil)

	for i := 0; i < 60; i++ {
		require.NoError(t, svc.LearnFromFeedback(context.Background()))
	}
	assert.Equal(t, entity.MinPreferenceWeight, prefRepo.weights["finance"])
}

func TestCurrentBatch(t *testing.T) {
	batchRepo := &stubBatchRepo{}
	svc := newTestFeedbackService(&stubFeedbackRepo{}, batchRepo, &stubPostRepo{}, &stubPreferenceRepo{}, nil)

	status, err := svc.CurrentBatch(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status)

	require.NoError(t, batchRepo.Create(context.Background(), &entity.Batch{Status: entity.BatchStatusPending, TotalPosts: 5, PostsWithFeedback: 1}))

	status, err = svc.CurrentBatch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "pending", status.Status)
	assert.Equal(t, 5, status.TotalPosts)
}

func TestSystemStats(t *testing.T) {
	postRepo := &stubPostRepo{}
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		require.NoError(t, postRepo.Create(ctx, &entity.GeneratedPost{}))
	}
	require.NoError(t, postRepo.SetApproval(ctx, 1, true))
	require.NoError(t, postRepo.SetApproval(ctx, 2, false))

	feedbackRepo := &stubFeedbackRepo{
		patterns: []dto.FeedbackPattern{
			{Category: "content", Tag: "too_long", Frequency: 5},
			{Category: "style", Tag: "wrong_tone", Frequency: 4},
			{Category: "style", Tag: "too_formal", Frequency: 3},
			{Category: "structure", Tag: "weak_hook", Frequency: 2},
			{Category: "relevance", Tag: "not_valuable", Frequency: 2},
			{Category: "content", Tag: "too_short", Frequency: 1},
		},
	}
	svc := newTestFeedbackService(feedbackRepo, &stubBatchRepo{}, postRepo, &stubPreferenceRepo{}, nil)

	stats, err := svc.SystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalPosts)
	assert.Equal(t, 2, stats.TotalReviewed)
	assert.Equal(t, 1, stats.ApprovedCount)
	assert.InDelta(t, 0.5, stats.ApprovalRate, 1e-9)
	assert.Len(t, stats.TopFeedback, 5)
}
