package repository

import (
	"context"
	"fmt"

	"linkedin-content-engine/pkg/logger"
)

type fallbackCompletionRepository struct {
	primary  TextCompletionRepository
	fallback TextCompletionRepository
	logger   *logger.Logger
}

// NewFallbackCompletionRepository chains two providers: a failed primary call
// is retried exactly once against the fallback before the error is surfaced.
func NewFallbackCompletionRepository(primary, fallback TextCompletionRepository, log *logger.Logger) TextCompletionRepository {
	return &fallbackCompletionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

func (r *fallbackCompletionRepository) Complete(ctx context.Context, prompt string) (string, error) {
	content, err := r.primary.Complete(ctx, prompt)
	if err == nil {
		return content, nil
	}
	r.logger.Warn("Primary completion provider failed, trying fallback", logger.ErrorField(err))

	content, fbErr := r.fallback.Complete(ctx, prompt)
	if fbErr != nil {
		return "", fmt.Errorf("both completion providers failed: primary: %v, fallback: %w", err, fbErr)
	}
	return content, nil
}
