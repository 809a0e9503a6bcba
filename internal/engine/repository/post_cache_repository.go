package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkedin-content-engine/internal/entity"

	"github.com/redis/go-redis/v9"
)

// PostCacheRepository caches generated post text per (story, post type) so a
// repeated generation request can skip the completion call.
type PostCacheRepository interface {
	Get(ctx context.Context, story *entity.Story) (string, bool, error)
	Set(ctx context.Context, story *entity.Story, content string, ttl time.Duration) error
}

// NewPostCacheRepository creates a Redis-backed post cache.
func NewPostCacheRepository(client *redis.Client) PostCacheRepository {
	return &postCacheRepository{client: client}
}

type postCacheRepository struct {
	client *redis.Client
}

func cacheKey(story *entity.Story) string {
	return fmt.Sprintf("post:%d:%s:%s", story.ID, story.Industry, story.StoryType)
}

// Get returns the cached content for the story, if present.
func (r *postCacheRepository) Get(ctx context.Context, story *entity.Story) (string, bool, error) {
	content, err := r.client.Get(ctx, cacheKey(story)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return content, true, nil
}

// Set stores the content with the given expiry.
func (r *postCacheRepository) Set(ctx context.Context, story *entity.Story, content string, ttl time.Duration) error {
	return r.client.Set(ctx, cacheKey(story), content, ttl).Err()
}
