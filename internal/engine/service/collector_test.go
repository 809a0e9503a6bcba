package service

import (
	"testing"

	"linkedin-content-engine/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStoryType(t *testing.T) {
	assert.Equal(t, entity.StoryTypePivot, classifyStoryType("the startup pivoted after a painful restructuring"))
	assert.Equal(t, entity.StoryTypeSuccess, classifyStoryType("record revenue and a profitable quarter before the ipo"))
	assert.Equal(t, entity.StoryTypeInnovation, classifyStoryType("they unveil a breakthrough prototype"))
	assert.Equal(t, entity.StoryTypeGeneral, classifyStoryType("nothing much happened this week"))
}

func TestClassifyIndustry(t *testing.T) {
	assert.Equal(t, "technology", classifyIndustry("a saas platform for cloud developer tooling"))
	assert.Equal(t, "finance", classifyIndustry("the fintech bank expands its lending arm"))
	assert.Equal(t, "general", classifyIndustry("a quiet day in the town"))
}

func TestClassifyTiesAreStable(t *testing.T) {
	// One marker hit per category; the earlier category must win every run.
	for i := 0; i < 50; i++ {
		assert.Equal(t, entity.StoryTypePivot, classifyStoryType("the company will pivot and launch"))
		assert.Equal(t, "technology", classifyIndustry("a fintech platform"))
	}
}

func TestCompanyFromTitle(t *testing.T) {
	assert.Equal(t, "Acme", companyFromTitle("Acme: the quiet pivot"))
	assert.Equal(t, "Acme Corp", companyFromTitle("Acme Corp - raises $10M"))
	assert.Equal(t, "Acme raises", companyFromTitle("Acme raises ten million dollars"))
	assert.Equal(t, "Acme", companyFromTitle("Acme"))
}

func TestExtractKeywords(t *testing.T) {
	text := "cloud cloud cloud migration migration budget"
	keywords := extractKeywords(text, 2)
	assert.Equal(t, []string{"cloud", "migration"}, keywords)
}

func TestExtractKeywordsSkipsStopwords(t *testing.T) {
	keywords := extractKeywords("the the the and and platform", 5)
	assert.Equal(t, []string{"platform"}, keywords)
}
