package repository

import (
	"fmt"
	"strings"

	"linkedin-content-engine/internal/entity"
)

const systemPromptWriter = "You are a professional business content writer creating engaging LinkedIn posts."

// BuildPostPrompt produces the generation prompt for a story.
func BuildPostPrompt(story *entity.Story) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate a compelling LinkedIn post about %s in the %s industry.\n\n", story.CompanyName, story.Industry))
	sb.WriteString("Company Story:\n")
	sb.WriteString(story.Content)
	sb.WriteString("\n\n")
	if len(story.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("Key Topics: %s\n\n", strings.Join(story.Keywords, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Story Angle: %s\n\n", story.StoryType))
	sb.WriteString(`Important Instructions:
1. Use ONLY factual information provided above
2. Do NOT make up or invent any details not provided
3. Include specific dates, numbers, and figures from the provided information
4. Focus on the actual industry and business model described
5. Use appropriate technical terms for the specific industry
6. Format with emojis and proper LinkedIn spacing
7. Keep the post between 100 and 300 words

Generate the post now:`)
	return sb.String()
}

// BuildEnhancePrompt produces the enhancement prompt for draft post text.
// When the draft failed the authenticity or insight gates, the prompt pushes
// for verifiable details and deeper insights instead of surface polish.
func BuildEnhancePrompt(content string, needsQualityBoost bool) string {
	if needsQualityBoost {
		return fmt.Sprintf(`Significantly improve this LinkedIn post to include more authentic details and unique insights:

Original Post:
%s

Requirements:
1. Add specific dates and verifiable numbers
2. Include direct quotes or references to sources
3. Reveal behind-the-scenes details or decision-making processes
4. Share counter-intuitive findings or unexpected outcomes
5. Add industry-specific insights that casual observers might miss
6. Discuss both successes and challenges
7. Maintain natural flow and engagement
8. Add relevant emojis where appropriate
9. Break long paragraphs into shorter ones
10. Include relevant hashtags

Enhanced version:`, content)
	}

	return fmt.Sprintf(`Improve this LinkedIn post while maintaining its core message and authenticity:

Original Post:
%s

Requirements:
1. Add one thought-provoking question
2. Ensure there's a clear call-to-action
3. Add relevant emojis where appropriate
4. Break long paragraphs into shorter ones
5. Ensure hashtags are relevant
6. Maintain all specific details and unique insights

Enhanced version:`, content)
}
