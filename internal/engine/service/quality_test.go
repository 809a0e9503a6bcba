package service

import (
	"strings"
	"testing"

	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/entity"

	"github.com/stretchr/testify/assert"
)

func newTestScorer() *QualityScorer {
	return NewQualityScorer(DefaultQualityConfig())
}

func TestEngagementScore(t *testing.T) {
	scorer := newTestScorer()

	assert.Equal(t, 0.0, scorer.EngagementScore(""))

	// No engagement elements, neutral sentiment: base plus neutral increment.
	assert.InDelta(t, 0.6, scorer.EngagementScore("hello world"), 1e-9)

	// Every element plus positive sentiment clamps at 1.
	assert.Equal(t, 1.0, scorer.EngagementScore("What growth? Comment below! #win 2024 \U0001F680"))
}

func TestEngagementScoreSentimentIncrement(t *testing.T) {
	scorer := newTestScorer()

	positive := scorer.EngagementScore("strong growth this quarter")
	negative := scorer.EngagementScore("heavy loss this quarter")
	assert.InDelta(t, 0.1, positive-negative, 1e-9)
}

func TestReadabilityScore(t *testing.T) {
	scorer := newTestScorer()

	assert.Equal(t, 0.0, scorer.ReadabilityScore(""))
	assert.Equal(t, 0.0, scorer.ReadabilityScore("..."))

	// Short readable text gets the short-length multiplier only.
	assert.InDelta(t, 0.5, scorer.ReadabilityScore("Short post. Easy words here."), 1e-9)

	// In-range word count with short words and sentences scores full marks.
	sentence := "We grew fast this year and the team did well. "
	text := strings.Repeat(sentence, 8) // 80 words, 10 per sentence
	assert.InDelta(t, 1.0, scorer.ReadabilityScore(text), 1e-9)

	// Overlong words take the complexity penalty on top of the short-length bucket.
	assert.InDelta(t, 0.4, scorer.ReadabilityScore("Incomprehensibility characterizes bureaucratic communications."), 1e-9)
}

func TestReadabilityScoreLongText(t *testing.T) {
	scorer := newTestScorer()

	sentence := "We grew fast this year and the team did well. "
	text := strings.Repeat(sentence, 40) // 400 words
	assert.InDelta(t, 0.7, scorer.ReadabilityScore(text), 1e-9)
}

func TestAuthenticityScore(t *testing.T) {
	scorer := newTestScorer()

	assert.Equal(t, 0.0, scorer.AuthenticityScore(""))
	assert.InDelta(t, 0.5, scorer.AuthenticityScore("We did something great"), 1e-9)

	text := "According to research from 12/05/2024, the market grew 40%, for example in retail."
	assert.InDelta(t, 1.0, scorer.AuthenticityScore(text), 1e-9)
}

func TestRelevanceScore(t *testing.T) {
	scorer := newTestScorer()

	story := &entity.Story{
		Industry:    "technology",
		CompanyName: "Acme",
		Keywords:    []string{"cloud", "platform"},
	}

	assert.Equal(t, 0.0, scorer.RelevanceScore("", story))

	// Without a reference story the score stays at the base.
	assert.InDelta(t, 0.5, scorer.RelevanceScore("anything at all", nil), 1e-9)

	// All four keywords present.
	full := "Acme built a cloud platform for the technology sector."
	assert.InDelta(t, 1.0, scorer.RelevanceScore(full, story), 1e-9)

	// Two of four keywords present.
	half := "Acme ships a new cloud offering."
	assert.InDelta(t, 0.75, scorer.RelevanceScore(half, story), 1e-9)
}

func TestShouldRegenerateBoundary(t *testing.T) {
	scorer := newTestScorer()

	atThreshold := dto.QualityScores{Engagement: 0.7, Readability: 0.7, Authenticity: 0.7, Relevance: 0.7}
	assert.False(t, scorer.ShouldRegenerate(atThreshold))

	belowThreshold := atThreshold
	belowThreshold.Relevance = 0.69
	assert.True(t, scorer.ShouldRegenerate(belowThreshold))
}

func TestScoreSetsAcceptFlag(t *testing.T) {
	scorer := newTestScorer()

	scores := scorer.Score("too short", nil)
	assert.False(t, scores.Accept)
	assert.True(t, scorer.ShouldRegenerate(scores))
}

func TestValidateAuthenticity(t *testing.T) {
	scorer := newTestScorer()

	text := `On 12 March, the CEO announced "record growth" of 40%.`
	assert.True(t, scorer.ValidateAuthenticity(text))

	assert.False(t, scorer.ValidateAuthenticity("A vague post with no specifics at all"))
}

func TestValidateInsights(t *testing.T) {
	scorer := newTestScorer()

	text := "Behind the scenes, however, the strategy in the industry came from a hard challenge."
	assert.True(t, scorer.ValidateInsights(text))

	assert.False(t, scorer.ValidateInsights("Nothing noteworthy here"))
}

func TestScoreBounds(t *testing.T) {
	scorer := newTestScorer()

	for _, text := range []string{
		"",
		"short",
		strings.Repeat("averagely sized sentence with plain words. ", 30),
		"What growth? Comment below! #win 2024 \U0001F680",
	} {
		scores := scorer.Score(text, nil)
		for name, v := range map[string]float64{
			"engagement":   scores.Engagement,
			"readability":  scores.Readability,
			"authenticity": scores.Authenticity,
			"relevance":    scores.Relevance,
		} {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 1.0, name)
		}
	}
}
