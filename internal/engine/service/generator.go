package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"linkedin-content-engine/internal/engine/config"
	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/engine/repository"
	"linkedin-content-engine/internal/entity"
	"linkedin-content-engine/pkg/logger"
	"linkedin-content-engine/pkg/telegram"
	"linkedin-content-engine/pkg/utils"

	"gorm.io/datatypes"
)

// PendingBatchError signals that batch creation was refused because an
// earlier pending batch still has posts without feedback.
type PendingBatchError struct {
	Batch *entity.Batch
}

func (e *PendingBatchError) Error() string {
	return fmt.Sprintf("batch %d is pending feedback (%d/%d posts reviewed)",
		e.Batch.ID, e.Batch.PostsWithFeedback, e.Batch.TotalPosts)
}

// GeneratorService produces scored candidate posts from stories.
type GeneratorService interface {
	ScorePost(ctx context.Context, text string, storyID uint) (dto.QualityScores, error)
	GeneratePost(ctx context.Context, storyID uint) (*entity.GeneratedPost, error)
	GenerateBatch(ctx context.Context, count int) (*entity.Batch, []entity.GeneratedPost, error)
}

// NewGeneratorService creates a new generator service.
func NewGeneratorService(
	cfg *config.Config,
	scorer *QualityScorer,
	completionRepo repository.TextCompletionRepository,
	storyRepo repository.StoryRepository,
	postRepo repository.GeneratedPostRepository,
	batchRepo repository.BatchRepository,
	cacheRepo repository.PostCacheRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) GeneratorService {
	return &generatorService{
		cfg:            cfg,
		scorer:         scorer,
		completionRepo: completionRepo,
		storyRepo:      storyRepo,
		postRepo:       postRepo,
		batchRepo:      batchRepo,
		cacheRepo:      cacheRepo,
		notifier:       notifier,
		logger:         log,
	}
}

type generatorService struct {
	cfg            *config.Config
	scorer         *QualityScorer
	completionRepo repository.TextCompletionRepository
	storyRepo      repository.StoryRepository
	postRepo       repository.GeneratedPostRepository
	batchRepo      repository.BatchRepository
	cacheRepo      repository.PostCacheRepository
	notifier       telegram.Notifier
	logger         *logger.Logger
}

// ScorePost scores arbitrary text. A story ID of 0 scores without a
// relevance reference.
func (s *generatorService) ScorePost(ctx context.Context, text string, storyID uint) (dto.QualityScores, error) {
	var story *entity.Story
	if storyID != 0 {
		found, err := s.storyRepo.FindByID(ctx, storyID)
		if err != nil {
			return dto.QualityScores{}, err
		}
		story = found
	}
	return s.scorer.Score(text, story), nil
}

// GeneratePost generates, scores and persists one post. A story ID of 0
// picks a random story.
func (s *generatorService) GeneratePost(ctx context.Context, storyID uint) (*entity.GeneratedPost, error) {
	var (
		story *entity.Story
		err   error
	)
	if storyID != 0 {
		story, err = s.storyRepo.FindByID(ctx, storyID)
	} else {
		story, err = s.storyRepo.FindRandom(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick story: %w", err)
	}

	post, err := s.generateForStory(ctx, story, nil)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return post, nil
}

// generateForStory runs the bounded generate-score-retry loop for one story.
// A cached draft short-circuits the completion call on the first attempt but
// is still scored; when no attempt clears the gate the best-scoring attempt
// is kept.
func (s *generatorService) generateForStory(ctx context.Context, story *entity.Story, batchID *uint) (*entity.GeneratedPost, error) {
	cached, cacheHit, err := s.cacheRepo.Get(ctx, story)
	if err != nil {
		s.logger.Warn("Post cache lookup failed", logger.ErrorField(err))
		cacheHit = false
	}

	var (
		bestContent string
		bestScores  dto.QualityScores
		bestTotal   = -1.0
		attempts    int
		generated   bool
	)

	for attempt := 1; attempt <= s.cfg.Engine.MaxGenerateAttempts; attempt++ {
		attempts = attempt

		var content string
		if attempt == 1 && cacheHit {
			content = cached
		} else {
			content, err = s.generateDraft(ctx, story)
			if err != nil {
				if bestTotal >= 0 {
					// A later attempt failed upstream; keep the best draft so far.
					s.logger.Warn("Regeneration attempt failed, keeping best draft", logger.ErrorField(err))
					break
				}
				return nil, err
			}
			generated = true
		}

		scores := s.scorer.Score(content, story)
		total := scores.Engagement + scores.Readability + scores.Authenticity + scores.Relevance
		if total > bestTotal {
			bestTotal = total
			bestContent = content
			bestScores = scores
		}
		if scores.Accept {
			break
		}
		s.logger.Info("Post quality below threshold, regenerating",
			logger.IntField("attempt", attempt),
			logger.Float64Field("total_score", total),
		)
	}

	if generated {
		ttl := time.Duration(s.cfg.Engine.CacheTTLDays) * 24 * time.Hour
		if err := s.cacheRepo.Set(ctx, story, bestContent, ttl); err != nil {
			s.logger.Warn("Failed to cache generated post", logger.ErrorField(err))
		}
	}

	metrics, _ := json.Marshal(map[string]interface{}{
		"authenticity_markers": s.scorer.AuthenticityMarkers(bestContent),
		"insight_markers":      s.scorer.InsightMarkers(bestContent),
		"accepted":             bestScores.Accept,
	})

	return &entity.GeneratedPost{
		StoryID:           story.ID,
		Industry:          story.Industry,
		CompanyName:       story.CompanyName,
		PostType:          story.StoryType,
		Content:           bestContent,
		EngagementScore:   bestScores.Engagement,
		RelevanceScore:    bestScores.Relevance,
		ReadabilityScore:  bestScores.Readability,
		AuthenticityScore: bestScores.Authenticity,
		Metrics:           datatypes.JSON(metrics),
		BatchID:           batchID,
		Attempts:          attempts,
	}, nil
}

// generateDraft calls the completion service and runs one enhancement pass.
// The enhancement prompt is stricter when the draft fails the authenticity or
// insight gates.
func (s *generatorService) generateDraft(ctx context.Context, story *entity.Story) (string, error) {
	content, err := s.completionRepo.Complete(ctx, repository.BuildPostPrompt(story))
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}

	needsBoost := !s.scorer.ValidateAuthenticity(content) || !s.scorer.ValidateInsights(content)
	enhanced, err := s.completionRepo.Complete(ctx, repository.BuildEnhancePrompt(content, needsBoost))
	if err != nil {
		s.logger.Warn("Enhancement call failed, keeping initial draft", logger.ErrorField(err))
		return content, nil
	}
	return enhanced, nil
}

// GenerateBatch creates a review batch of posts from random stories. Refused
// while a pending batch still has posts without feedback.
func (s *generatorService) GenerateBatch(ctx context.Context, count int) (*entity.Batch, []entity.GeneratedPost, error) {
	if count <= 0 || count > s.cfg.Engine.BatchSize {
		count = s.cfg.Engine.BatchSize
	}

	pending, err := s.batchRepo.FindPending(ctx)
	if err != nil {
		return nil, nil, err
	}
	if pending != nil && pending.TotalPosts > pending.PostsWithFeedback {
		return nil, nil, &PendingBatchError{Batch: pending}
	}

	stories, err := s.storyRepo.FindRandomN(ctx, count)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to pick stories: %w", err)
	}
	if len(stories) == 0 {
		return nil, nil, fmt.Errorf("no stories available for generation")
	}

	batch := &entity.Batch{Status: entity.BatchStatusPending}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, nil, fmt.Errorf("failed to create batch: %w", err)
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		posts []entity.GeneratedPost
	)
	sem := make(chan struct{}, s.cfg.Engine.MaxConcurrent)

	for i := range stories {
		story := stories[i]
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			post, err := s.generateForStory(ctx, &story, &batch.ID)
			if err != nil {
				s.logger.Error("Failed to generate post for story",
					logger.ErrorField(err),
					logger.Field("story_id", story.ID),
				)
				return
			}
			if err := s.postRepo.Create(ctx, post); err != nil {
				s.logger.Error("Failed to save post", logger.ErrorField(err), logger.Field("story_id", story.ID))
				return
			}
			mu.Lock()
			posts = append(posts, *post)
			mu.Unlock()
		})
	}
	wg.Wait()

	// An empty batch would sit pending forever and can never be reviewed;
	// discard it so only one pending batch can ever exist.
	if len(posts) == 0 {
		if err := s.batchRepo.Delete(ctx, batch.ID); err != nil {
			s.logger.Error("Failed to delete empty batch", logger.ErrorField(err), logger.Field("batch_id", batch.ID))
		}
		return nil, nil, fmt.Errorf("no posts could be generated for the batch")
	}

	// Worker completion order is not deterministic; normalize before returning.
	sort.Slice(posts, func(i, j int) bool { return posts[i].StoryID < posts[j].StoryID })

	if err := s.batchRepo.SetTotalPosts(ctx, batch.ID, len(posts)); err != nil {
		return nil, nil, fmt.Errorf("failed to record batch size: %w", err)
	}
	batch.TotalPosts = len(posts)

	s.notifyBatchReady(batch, posts)
	return batch, posts, nil
}

func (s *generatorService) notifyBatchReady(batch *entity.Batch, posts []entity.GeneratedPost) {
	if s.notifier == nil {
		return
	}
	items := make([]telegram.BatchReviewItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, telegram.BatchReviewItem{
			PostID:      p.ID,
			CompanyName: p.CompanyName,
			Industry:    p.Industry,
			PostType:    string(p.PostType),
			TotalScore:  p.TotalScore(),
			Accepted:    !s.scorer.ShouldRegenerate(dto.QualityScores{
				Engagement:   p.EngagementScore,
				Readability:  p.ReadabilityScore,
				Authenticity: p.AuthenticityScore,
				Relevance:    p.RelevanceScore,
			}),
		})
	}
	if err := s.notifier.SendMessage(telegram.FormatBatchReview(batch.ID, items)); err != nil {
		s.logger.Error("Failed to send batch review notification", logger.ErrorField(err))
	}
}
