package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/PranjalBarnwal/quizApp/models"
)

const quizListKey = "quiz:list"

// QuizCache is a read-through redis cache for the quiz list. Quizzes change
// rarely (admin authoring only), so a short TTL plus explicit invalidation on
// writes keeps listings cheap without staleness concerns. Redis failures fall
// back to the loader; the cache never makes a request fail.
type QuizCache struct {
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
}

func NewQuizCache(client *redis.Client, ttl time.Duration) *QuizCache {
	return &QuizCache{client: client, ttl: ttl}
}

func (c *QuizCache) ListQuizzes(ctx context.Context, load func(ctx context.Context) ([]models.Quiz, error)) ([]models.Quiz, error) {
	if quizzes, ok := c.get(ctx); ok {
		return quizzes, nil
	}

	result, err, _ := c.sf.Do(quizListKey, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if quizzes, ok := c.get(ctx); ok {
			return quizzes, nil
		}

		quizzes, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.set(ctx, quizzes)
		return quizzes, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Quiz), nil
}

// Invalidate drops the cached list after authoring writes.
func (c *QuizCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, quizListKey).Err(); err != nil {
		log.Printf("quiz cache: invalidate failed: %v", err)
	}
}

func (c *QuizCache) get(ctx context.Context) ([]models.Quiz, bool) {
	data, err := c.client.Get(ctx, quizListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("quiz cache: read failed: %v", err)
		}
		return nil, false
	}

	var quizzes []models.Quiz
	if err := json.Unmarshal(data, &quizzes); err != nil {
		log.Printf("quiz cache: corrupt entry dropped: %v", err)
		_ = c.client.Del(ctx, quizListKey).Err()
		return nil, false
	}
	return quizzes, true
}

func (c *QuizCache) set(ctx context.Context, quizzes []models.Quiz) {
	data, err := json.Marshal(quizzes)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, quizListKey, data, c.ttl).Err(); err != nil {
		log.Printf("quiz cache: write failed: %v", err)
	}
}
