package repository

import "context"

// TextCompletionRepository is the opaque text-completion service used for
// post generation. Implementations wrap a single provider; use
// NewFallbackCompletionRepository to chain a primary and a fallback.
type TextCompletionRepository interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
