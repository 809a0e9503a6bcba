package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"linkedin-content-engine/internal/engine/config"
	"linkedin-content-engine/internal/engine/repository"
	"linkedin-content-engine/internal/entity"
	"linkedin-content-engine/pkg/logger"
	"linkedin-content-engine/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
)

// CollectorService pulls business stories from RSS feeds and stores them as
// generation input.
type CollectorService interface {
	CollectStories(ctx context.Context) (int, error)
}

// NewCollectorService creates a new collector service.
func NewCollectorService(cfg *config.Config, storyRepo repository.StoryRepository, log *logger.Logger) CollectorService {
	timeout := 30 * time.Second
	if d, err := time.ParseDuration(cfg.Collector.RequestTimeout); err == nil && d > 0 {
		timeout = d
	}
	return &collectorService{
		cfg:           cfg,
		storyRepo:     storyRepo,
		logger:        log,
		client:        &http.Client{Timeout: timeout},
		inmemoryCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

type collectorService struct {
	cfg           *config.Config
	storyRepo     repository.StoryRepository
	logger        *logger.Logger
	client        *http.Client
	inmemoryCache *cache.Cache
}

var (
	// Marker lists are ordered slices so that ties between categories
	// resolve the same way on every run.
	storyTypeMarkers = []struct {
		storyType entity.StoryType
		markers   []string
	}{
		{entity.StoryTypePivot, []string{"pivot", "pivoted", "rebrand", "shifted focus", "restructur", "turnaround"}},
		{entity.StoryTypeSuccess, []string{"milestone", "record revenue", "profitable", "ipo", "acquisition", "funding round", "series "}},
		{entity.StoryTypeInnovation, []string{"launch", "unveil", "breakthrough", "patent", "prototype", "new product", "ai-powered"}},
	}

	industryMarkers = []struct {
		industry string
		markers  []string
	}{
		{"technology", []string{"software", "saas", "cloud", "ai", "startup", "developer", "platform"}},
		{"finance", []string{"bank", "fintech", "investment", "trading", "insurance", "lending"}},
		{"healthcare", []string{"health", "medical", "biotech", "pharma", "clinical", "patient"}},
		{"retail", []string{"retail", "e-commerce", "consumer", "brand", "store", "merchandis"}},
		{"energy", []string{"energy", "solar", "renewable", "oil", "battery", "grid"}},
	}

	stopwords = map[string]bool{
		"the": true, "and": true, "for": true, "that": true, "with": true,
		"this": true, "from": true, "have": true, "has": true, "was": true,
		"are": true, "will": true, "its": true, "their": true, "about": true,
		"after": true, "into": true, "more": true, "been": true, "they": true,
		"said": true, "which": true, "were": true, "also": true, "than": true,
	}

	wordPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z-]{3,}`)
)

// CollectStories parses every configured feed concurrently and upserts one
// story per new article, capped at MaxStoriesPerRun across all feeds.
func (s *collectorService) CollectStories(ctx context.Context) (int, error) {
	if len(s.cfg.Collector.FeedURLs) == 0 {
		return 0, nil
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		collected int
	)
	semaphore := make(chan struct{}, s.cfg.Engine.MaxConcurrent)

	for _, feedURL := range s.cfg.Collector.FeedURLs {
		feedURL := feedURL
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			s.logger.Info("Processing story feed", logger.StringField("url", feedURL))
			fp := gofeed.NewParser()
			feed, err := fp.ParseURLWithContext(feedURL, ctx)
			if err != nil {
				s.logger.Error("Failed to parse feed", logger.ErrorField(err), logger.StringField("url", feedURL))
				return
			}

			sort.Slice(feed.Items, func(i, j int) bool {
				if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
					return false
				}
				return feed.Items[i].PublishedParsed.After(*feed.Items[j].PublishedParsed)
			})

			for _, item := range feed.Items {
				mu.Lock()
				if collected >= s.cfg.Collector.MaxStoriesPerRun {
					mu.Unlock()
					return
				}
				mu.Unlock()

				if err := s.processFeedItem(ctx, item); err != nil {
					s.logger.Error("Failed to process feed item", logger.ErrorField(err), logger.StringField("title", item.Title))
					continue
				}
				mu.Lock()
				collected++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	s.logger.Info("Story collection finished", logger.IntField("collected", collected))
	return collected, nil
}

func (s *collectorService) processFeedItem(ctx context.Context, item *gofeed.Item) error {
	if item.Link == "" {
		return fmt.Errorf("feed item has no link")
	}
	if _, seen := s.inmemoryCache.Get(item.Link); seen {
		return nil
	}
	s.inmemoryCache.Set(item.Link, struct{}{}, cache.DefaultExpiration)

	content, err := s.fetchArticle(ctx, item.Link)
	if err != nil {
		return err
	}
	if content == "" {
		content = item.Description
	}

	lower := strings.ToLower(item.Title + " " + content)
	story := &entity.Story{
		Title:        item.Title,
		Content:      content,
		Industry:     classifyIndustry(lower),
		CompanyName:  companyFromTitle(item.Title),
		StoryType:    classifyStoryType(lower),
		Source:       sourceHost(item.Link),
		URL:          item.Link,
		Keywords:     extractKeywords(lower, 10),
		NewsCount:    1,
		AvgSentiment: EstimateSentiment(content),
	}
	if item.PublishedParsed != nil {
		story.LatestNewsAt = item.PublishedParsed
	}

	if err := s.storyRepo.Upsert(ctx, story); err != nil {
		return fmt.Errorf("failed to upsert story: %w", err)
	}
	return nil
}

func (s *collectorService) fetchArticle(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch article, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to extract article content: %w", err)
	}
	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse extracted content: %w", err)
	}

	text := strings.Join(strings.Fields(docHTML.Text()), " ")
	return text, nil
}

func classifyStoryType(lower string) entity.StoryType {
	best := entity.StoryTypeGeneral
	bestHits := 0
	for _, entry := range storyTypeMarkers {
		hits := 0
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = entry.storyType
		}
	}
	return best
}

func classifyIndustry(lower string) string {
	best := "general"
	bestHits := 0
	for _, entry := range industryMarkers {
		hits := 0
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = entry.industry
		}
	}
	return best
}

// companyFromTitle takes the leading segment of headlines shaped like
// "Acme raises $10M ..." or "Acme: the quiet pivot".
func companyFromTitle(title string) string {
	for _, sep := range []string{":", " - ", " – "} {
		if idx := strings.Index(title, sep); idx > 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	words := strings.Fields(title)
	if len(words) >= 2 {
		return strings.Join(words[:2], " ")
	}
	return title
}

func sourceHost(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

func extractKeywords(lower string, limit int) []string {
	counts := make(map[string]int)
	for _, word := range wordPattern.FindAllString(lower, -1) {
		if stopwords[word] {
			continue
		}
		counts[word]++
	}

	keywords := make([]string, 0, len(counts))
	for word := range counts {
		keywords = append(keywords, word)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}
