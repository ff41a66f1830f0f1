package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RatingCache keeps per-movie average ratings in redis so the detail view
// does not recompute the aggregate on every request. A nil cache (redis
// unavailable) is valid and turns every operation into a miss/no-op.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache connects to redis and verifies the connection.
func NewRatingCache(redisURL, password string, ttl time.Duration) (*RatingCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RatingCache{client: rdb, ttl: ttl}, nil
}

func ratingKey(movieID int64) string {
	return fmt.Sprintf("rating:movie:%d", movieID)
}

// Get returns the cached average for the movie, if present.
func (c *RatingCache) Get(ctx context.Context, movieID int64) (float64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}

	val, err := c.client.Get(ctx, ratingKey(movieID)).Result()
	if err != nil {
		return 0, false
	}

	avg, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return avg, true
}

// Set stores the average for the movie with the configured TTL.
func (c *RatingCache) Set(ctx context.Context, movieID int64, average float64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, ratingKey(movieID), strconv.FormatFloat(average, 'f', -1, 64), c.ttl).Err()
}

// Invalidate drops the cached average after a review mutation.
func (c *RatingCache) Invalidate(ctx context.Context, movieID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, ratingKey(movieID)).Err()
}

// Close releases the underlying client.
func (c *RatingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
