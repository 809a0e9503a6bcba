package service

import (
	"regexp"
	"strings"

	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/entity"
	"linkedin-content-engine/pkg/utils"
)

// QualityConfig holds the fixed thresholds of the heuristic quality scorers.
type QualityConfig struct {
	Threshold         float64 // accept/regenerate gate per sub-score
	MinWordCount      int     // below this the length multiplier drops to 0.5
	MaxWordCount      int     // above this the length multiplier drops to 0.7
	MaxAvgWordLen     float64
	MaxAvgSentenceLen float64
}

// DefaultQualityConfig returns the production thresholds.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		Threshold:         0.7,
		MinWordCount:      50,
		MaxWordCount:      300,
		MaxAvgWordLen:     8,
		MaxAvgSentenceLen: 20,
	}
}

// QualityScorer grades generated post text with deterministic heuristics.
// All scores are clamped to [0, 1]; degenerate input yields floor scores
// rather than errors.
type QualityScorer struct {
	cfg QualityConfig
}

// NewQualityScorer creates a scorer with the given thresholds.
func NewQualityScorer(cfg QualityConfig) *QualityScorer {
	return &QualityScorer{cfg: cfg}
}

var (
	ctaKeywords        = []string{"comment", "share", "like", "follow", "thoughts"}
	digitPattern       = regexp.MustCompile(`\d+`)
	datePattern        = regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`)
	statsPattern       = regexp.MustCompile(`\d+%|\$\d+|\d+x|\d+\+`)
	sentenceSplitter   = regexp.MustCompile(`[.!?]`)
	crediblePhrases    = []string{"according to", "research shows", "study finds"}
	industryTerms      = []string{"market", "industry", "sector", "technology"}
	exemplarPhrases    = []string{"for example", "such as", "like"}
	sourcePhrases      = []string{"according to", "said", "stated", "ceo", "founder", "director", "leader"}
	factPhrases        = []string{"reported", "announced", "published", "confirmed", "launched", "achieved", "milestone"}
	behindScenesTerms  = []string{"internally", "behind the scenes", "within the company", "process", "system", "building", "development", "integration"}
	counterTerms       = []string{"surprisingly", "contrary to", "unexpected", "unlike", "instead of", "rather than", "despite", "however"}
	industryDepthTerms = []string{"in the industry", "sector-specific", "market dynamics", "landscape", "segment", "vertical", "market"}
	rationaleTerms     = []string{"decided to", "chose to", "reasoning behind", "strategy", "approach", "solution", "method"}
	failureTerms       = []string{"learned from", "mistake", "challenge", "hurdle", "obstacle", "issue", "problem", "difficulty"}
)

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func containsEmoji(text string) bool {
	for _, r := range text {
		if r >= 0x1F300 && r <= 0x1F9FF {
			return true
		}
	}
	return false
}

// EngagementScore predicts engagement from lexical signals. Base 0.5, plus a
// fixed increment per engagement element and a sentiment-dependent increment.
func (s *QualityScorer) EngagementScore(text string) float64 {
	if text == "" {
		return 0
	}
	score := 0.5
	lower := strings.ToLower(text)

	if strings.Contains(text, "?") {
		score += 0.1
	}
	if containsAny(lower, ctaKeywords) {
		score += 0.1
	}
	if containsEmoji(text) {
		score += 0.1
	}
	if strings.Contains(text, "#") {
		score += 0.1
	}
	if digitPattern.MatchString(text) {
		score += 0.1
	}

	if EstimateSentiment(text) > 0 {
		score += 0.2
	} else {
		score += 0.1
	}

	return utils.Clamp01(score)
}

// ReadabilityScore grades text from average word and sentence length with a
// length-bucket multiplier. Returns 0 when there are no words or sentences.
func (s *QualityScorer) ReadabilityScore(text string) float64 {
	words := strings.Fields(text)
	var sentences int
	for _, part := range sentenceSplitter.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	if len(words) == 0 || sentences == 0 {
		return 0
	}

	var totalLen int
	for _, w := range words {
		totalLen += len(w)
	}
	avgWordLen := float64(totalLen) / float64(len(words))
	avgSentenceLen := float64(len(words)) / float64(sentences)

	lengthScore := 1.0
	if len(words) < s.cfg.MinWordCount {
		lengthScore = 0.5
	} else if len(words) > s.cfg.MaxWordCount {
		lengthScore = 0.7
	}

	score := 1.0
	if avgWordLen > s.cfg.MaxAvgWordLen {
		score -= 0.2
	}
	if avgSentenceLen > s.cfg.MaxAvgSentenceLen {
		score -= 0.2
	}

	return utils.Clamp01(score * lengthScore)
}

// AuthenticityScore grades the presence of verifiable-detail markers.
func (s *QualityScorer) AuthenticityScore(text string) float64 {
	if text == "" {
		return 0
	}
	score := 0.5
	lower := strings.ToLower(text)

	if datePattern.MatchString(text) {
		score += 0.1
	}
	if statsPattern.MatchString(text) {
		score += 0.1
	}
	if containsAny(lower, crediblePhrases) {
		score += 0.1
	}
	if containsAny(lower, industryTerms) {
		score += 0.1
	}
	if containsAny(lower, exemplarPhrases) {
		score += 0.1
	}

	return utils.Clamp01(score)
}

// RelevanceScore measures lexical overlap between the text and the story's
// keywords, industry and company name. With no story keywords to compare
// against the score stays at the 0.5 base; empty text scores 0.
func (s *QualityScorer) RelevanceScore(text string, story *entity.Story) float64 {
	if text == "" {
		return 0
	}

	var keywords []string
	if story != nil {
		keywords = append(keywords, story.Keywords...)
		keywords = append(keywords, strings.Fields(strings.ToLower(story.Industry))...)
		keywords = append(keywords, strings.Fields(strings.ToLower(story.CompanyName))...)
	}
	if len(keywords) == 0 {
		return 0.5
	}

	textTokens := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		textTokens[strings.Trim(word, ".,:;!?\"'()[]#")] = struct{}{}
	}

	seen := make(map[string]struct{})
	var total, matched int
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if _, dup := seen[kw]; dup || kw == "" {
			continue
		}
		seen[kw] = struct{}{}
		total++
		if _, ok := textTokens[kw]; ok {
			matched++
		}
	}
	if total == 0 {
		return 0.5
	}

	return utils.Clamp01(0.5 + 0.5*float64(matched)/float64(total))
}

// Score computes all four quality sub-scores and the accept decision.
func (s *QualityScorer) Score(text string, story *entity.Story) dto.QualityScores {
	scores := dto.QualityScores{
		Engagement:   s.EngagementScore(text),
		Readability:  s.ReadabilityScore(text),
		Authenticity: s.AuthenticityScore(text),
		Relevance:    s.RelevanceScore(text, story),
	}
	scores.Accept = !s.ShouldRegenerate(scores)
	return scores
}

// ShouldRegenerate reports whether any sub-score falls below the gate.
// A score exactly at the threshold passes.
func (s *QualityScorer) ShouldRegenerate(scores dto.QualityScores) bool {
	return scores.Engagement < s.cfg.Threshold ||
		scores.Readability < s.cfg.Threshold ||
		scores.Authenticity < s.cfg.Threshold ||
		scores.Relevance < s.cfg.Threshold
}

// AuthenticityMarkers reports which of the five authenticity marker classes
// are present in the text.
func (s *QualityScorer) AuthenticityMarkers(text string) map[string]bool {
	lower := strings.ToLower(text)
	hasDigit := digitPattern.MatchString(lower)
	return map[string]bool{
		"specific_dates":   hasDigit && (strings.Contains(lower, ",") || strings.Contains(lower, "-")),
		"real_numbers":     hasDigit,
		"named_sources":    containsAny(lower, sourcePhrases),
		"direct_quotes":    strings.ContainsAny(text, `"“”`),
		"verifiable_facts": containsAny(lower, factPhrases),
	}
}

// InsightMarkers reports which of the five insight marker classes are present.
func (s *QualityScorer) InsightMarkers(text string) map[string]bool {
	lower := strings.ToLower(text)
	return map[string]bool{
		"behind_scenes":      containsAny(lower, behindScenesTerms),
		"counter_intuitive":  containsAny(lower, counterTerms),
		"industry_specific":  containsAny(lower, industryDepthTerms),
		"decision_rationale": containsAny(lower, rationaleTerms),
		"failure_lessons":    containsAny(lower, failureTerms),
	}
}

// ValidateAuthenticity passes when at least 4 of 5 authenticity markers are present.
func (s *QualityScorer) ValidateAuthenticity(text string) bool {
	return countTrue(s.AuthenticityMarkers(text)) >= 4
}

// ValidateInsights passes when at least 4 of 5 insight markers are present.
func (s *QualityScorer) ValidateInsights(text string) bool {
	return countTrue(s.InsightMarkers(text)) >= 4
}

func countTrue(markers map[string]bool) int {
	var n int
	for _, present := range markers {
		if present {
			n++
		}
	}
	return n
}
