package service

import (
	"context"
	"sync"
	"time"

	"linkedin-content-engine/internal/engine/config"
	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/engine/repository"
	"linkedin-content-engine/internal/entity"
	"linkedin-content-engine/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func nopLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func testConfig() *config.Config {
	return &config.Config{
		Engine: config.Engine{
			QualityThreshold:     0.7,
			MaxGenerateAttempts:  3,
			BatchSize:            5,
			MaxConcurrent:        3,
			CacheTTLDays:         7,
			RecommendationLimit:  5,
			TopIndustryLimit:     5,
			PerformanceWindowDay: 30,
		},
	}
}

type stubStoryRepo struct {
	stories  map[uint]*entity.Story
	random   []entity.Story
	trending []entity.Story
	recent   []entity.Story
}

func (s *stubStoryRepo) Create(ctx context.Context, story *entity.Story) error { return nil }
func (s *stubStoryRepo) Upsert(ctx context.Context, story *entity.Story) error { return nil }

func (s *stubStoryRepo) FindByID(ctx context.Context, id uint) (*entity.Story, error) {
	if story, ok := s.stories[id]; ok {
		return story, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStoryRepo) FindRandom(ctx context.Context) (*entity.Story, error) {
	if len(s.random) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &s.random[0], nil
}

func (s *stubStoryRepo) FindRandomN(ctx context.Context, n int) ([]entity.Story, error) {
	if n > len(s.random) {
		n = len(s.random)
	}
	return s.random[:n], nil
}

func (s *stubStoryRepo) FindTrending(ctx context.Context, since time.Time, minNewsCount int) ([]entity.Story, error) {
	return s.trending, nil
}

func (s *stubStoryRepo) FindRecent(ctx context.Context, limit int, excludeIDs []uint) ([]entity.Story, error) {
	excluded := make(map[uint]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var out []entity.Story
	for _, story := range s.recent {
		if _, skip := excluded[story.ID]; skip {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, story)
	}
	return out, nil
}

type bestPostTypeResult struct {
	postType   entity.StoryType
	engagement float64
}

type stubPostRepo struct {
	mu            sync.Mutex
	created       []*entity.GeneratedPost
	nextID        uint
	topIndustries []repository.IndustryPerformance
	bestPostTypes map[string]bestPostTypeResult
	approvals     map[uint]bool
}

func (s *stubPostRepo) Create(ctx context.Context, post *entity.GeneratedPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	s.created = append(s.created, post)
	return nil
}

func (s *stubPostRepo) FindByID(ctx context.Context, id uint) (*entity.GeneratedPost, error) {
	for _, post := range s.created {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPostRepo) FindPending(ctx context.Context, limit int) ([]entity.GeneratedPost, error) {
	return nil, nil
}

func (s *stubPostRepo) FindByBatchID(ctx context.Context, batchID uint) ([]entity.GeneratedPost, error) {
	var out []entity.GeneratedPost
	for _, post := range s.created {
		if post.BatchID != nil && *post.BatchID == batchID {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (s *stubPostRepo) SetApproval(ctx context.Context, id uint, approved bool) error {
	if s.approvals == nil {
		s.approvals = make(map[uint]bool)
	}
	s.approvals[id] = approved
	return nil
}

func (s *stubPostRepo) TopPerformingIndustries(ctx context.Context, since time.Time, limit int) ([]repository.IndustryPerformance, error) {
	return s.topIndustries, nil
}

func (s *stubPostRepo) BestPostType(ctx context.Context, industry string) (entity.StoryType, float64, error) {
	if result, ok := s.bestPostTypes[industry]; ok {
		return result.postType, result.engagement, nil
	}
	return "", 0, gorm.ErrRecordNotFound
}

func (s *stubPostRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.created)), nil
}

func (s *stubPostRepo) Averages(ctx context.Context) (*repository.ScoreAverages, error) {
	return &repository.ScoreAverages{}, nil
}

func (s *stubPostRepo) ApprovalStats(ctx context.Context) (*repository.ApprovalStats, error) {
	var stats repository.ApprovalStats
	stats.TotalReviewed = len(s.approvals)
	for _, approved := range s.approvals {
		if approved {
			stats.ApprovedCount++
		}
	}
	return &stats, nil
}

type stubBatchRepo struct {
	batches map[uint]*entity.Batch
	pending *entity.Batch
	nextID  uint
}

func (s *stubBatchRepo) Create(ctx context.Context, batch *entity.Batch) error {
	if s.batches == nil {
		s.batches = make(map[uint]*entity.Batch)
	}
	s.nextID++
	batch.ID = s.nextID
	s.batches[batch.ID] = batch
	s.pending = batch
	return nil
}

func (s *stubBatchRepo) FindByID(ctx context.Context, id uint) (*entity.Batch, error) {
	if batch, ok := s.batches[id]; ok {
		return batch, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubBatchRepo) FindPending(ctx context.Context) (*entity.Batch, error) {
	return s.pending, nil
}

func (s *stubBatchRepo) Delete(ctx context.Context, id uint) error {
	delete(s.batches, id)
	if s.pending != nil && s.pending.ID == id {
		s.pending = nil
	}
	return nil
}

func (s *stubBatchRepo) SetTotalPosts(ctx context.Context, id uint, total int) error {
	if batch, ok := s.batches[id]; ok {
		batch.TotalPosts = total
	}
	return nil
}

type stubPreferenceRepo struct {
	weights map[string]float64
	decays  map[string]int
	ensured []string
}

func (s *stubPreferenceRepo) GetWeight(ctx context.Context, industry string) (float64, error) {
	if w, ok := s.weights[industry]; ok {
		return w, nil
	}
	return 1.0, nil
}

func (s *stubPreferenceRepo) EnsureExists(ctx context.Context, industry string) error {
	s.ensured = append(s.ensured, industry)
	if s.weights == nil {
		s.weights = make(map[string]float64)
	}
	if _, ok := s.weights[industry]; !ok {
		s.weights[industry] = 1.0
	}
	return nil
}

func (s *stubPreferenceRepo) DecayIndustry(ctx context.Context, industry string, factor float64) error {
	if s.decays == nil {
		s.decays = make(map[string]int)
	}
	s.decays[industry]++
	w := s.weights[industry] * factor
	if w < entity.MinPreferenceWeight {
		w = entity.MinPreferenceWeight
	}
	s.weights[industry] = w
	return nil
}

func (s *stubPreferenceRepo) FindAll(ctx context.Context) ([]entity.StoryPreference, error) {
	var out []entity.StoryPreference
	for industry, w := range s.weights {
		out = append(out, entity.StoryPreference{Industry: industry, Weight: w})
	}
	return out, nil
}

type stubFeedbackRepo struct {
	recorded    []*entity.PostFeedback
	recordBatch *entity.Batch
	recordErr   error
	patterns    []dto.FeedbackPattern
	tagHits     map[string][]string
	history     []dto.FeedbackHistoryItem
}

func (s *stubFeedbackRepo) Record(ctx context.Context, feedback *entity.PostFeedback) (*entity.Batch, error) {
	if s.recordErr != nil {
		return nil, s.recordErr
	}
	s.recorded = append(s.recorded, feedback)
	return s.recordBatch, nil
}

func (s *stubFeedbackRepo) AggregatePatterns(ctx context.Context) ([]dto.FeedbackPattern, error) {
	return s.patterns, nil
}

func (s *stubFeedbackRepo) IndustriesWithTag(ctx context.Context, category entity.FeedbackCategory, tag string) ([]string, error) {
	return s.tagHits[string(category)+":"+tag], nil
}

func (s *stubFeedbackRepo) History(ctx context.Context, companyName, industry string) ([]dto.FeedbackHistoryItem, error) {
	return s.history, nil
}

type stubCompletionRepo struct {
	mu        sync.Mutex
	responses []string
	calls     int
	err       error
}

func (s *stubCompletionRepo) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return s.responses[idx], nil
}

type stubCacheRepo struct {
	mu      sync.Mutex
	content string
	hit     bool
	stored  map[string]string
}

func (s *stubCacheRepo) Get(ctx context.Context, story *entity.Story) (string, bool, error) {
	return s.content, s.hit, nil
}

func (s *stubCacheRepo) Set(ctx context.Context, story *entity.Story, content string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stored == nil {
		s.stored = make(map[string]string)
	}
	s.stored[story.Industry] = content
	return nil
}

type stubNotifier struct {
	messages []string
}

func (s *stubNotifier) SendMessage(text string) error {
	s.messages = append(s.messages, text)
	return nil
}
