package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Quorum/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const voteLimiterKeyPrefix = "quorum:limit:"

// Limiter scopes keep vote batches and ratings in separate quotas.
const (
	VoteLimiterScope = "vote"
	RateLimiterScope = "rate"
)

// RedisVoteLimiter caps anonymous writes per client IP and survey in a fixed
// window.
type RedisVoteLimiter struct {
	client *redis.Client
	scope  string
	limit  int64
	window time.Duration
}

// NewRedisClient returns nil when REDIS_URL is not configured.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RateLimit.RedisURL == "" {
		log.Info().Msg("REDIS_URL is not set. Vote rate limiting is disabled.")
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RateLimit.RedisURL)
	if err != nil {
		// Plain host:port, as used in development.
		opts = &redis.Options{Addr: cfg.RateLimit.RedisURL}
	}
	log.Info().Str("addr", opts.Addr).Msg("Redis client initialised")
	return redis.NewClient(opts), nil
}

func NewRedisVoteLimiter(client *redis.Client, scope string, limit int, window time.Duration) *RedisVoteLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisVoteLimiter{client: client, scope: scope, limit: int64(limit), window: window}
}

func (l *RedisVoteLimiter) key(req GateRequest) string {
	return fmt.Sprintf("%s%s:%d:%s", voteLimiterKeyPrefix, l.scope, req.SurveyID, req.ClientIP)
}

// Verify ignores the token. Redis failures reject the request.
func (l *RedisVoteLimiter) Verify(ctx context.Context, req GateRequest) (bool, string) {
	key := l.key(req)

	// The window is created with its TTL in the same transaction as the
	// increment, so a counter never outlives its window.
	pipe := l.client.TxPipeline()
	pipe.SetNX(ctx, key, 0, l.window)
	incr := pipe.Incr(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Vote limiter unavailable")
		return false, "rate limiter unavailable"
	}
	count := incr.Val()
	if count > l.limit {
		log.Warn().Str("key", key).Int64("count", count).Msg("Vote rate limit exceeded")
		return false, fmt.Sprintf("too many submissions, limit is %d per %s", l.limit, l.window)
	}
	return true, ""
}
