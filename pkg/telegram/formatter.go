package telegram

import (
	"fmt"
	"strings"
)

// BatchReviewItem is one generated post in a review notification.
type BatchReviewItem struct {
	PostID      uint
	CompanyName string
	Industry    string
	PostType    string
	TotalScore  float64
	Accepted    bool
}

// FormatBatchReview renders a review notification for a freshly generated batch.
func FormatBatchReview(batchID uint, items []BatchReviewItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*Batch #%d ready for review* (%d posts)\n\n", batchID, len(items)))
	for _, item := range items {
		status := "needs review"
		if !item.Accepted {
			status = "below quality gate"
		}
		sb.WriteString(fmt.Sprintf("• *%s* (%s/%s) - score %.2f, %s\n",
			item.CompanyName, item.Industry, item.PostType, item.TotalScore, status))
	}
	sb.WriteString("\nSubmit feedback for every post to unlock the next batch.")
	return sb.String()
}

// FormatBatchCompleted renders a notification for a batch whose review finished.
func FormatBatchCompleted(batchID uint, total int) string {
	return fmt.Sprintf("*Batch #%d completed*: feedback recorded for all %d posts. Preference weights updated.", batchID, total)
}
