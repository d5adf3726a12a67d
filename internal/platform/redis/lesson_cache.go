package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/cache"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/config"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// KeyPrefix namespaces lesson entries.
const KeyPrefix = "lesson:"

// DefaultTTL applies when the configured TTL is not positive.
const DefaultTTL = 24 * time.Hour

// ErrNotConfigured is returned by NewLessonCache when no URL is set.
var ErrNotConfigured = errors.New("redis url not configured")

// client is the subset of *goredis.Client used by LessonCache.
type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// LessonCache stores SynthesisResults as JSON with a TTL.
type LessonCache struct {
	client client
	ttl    time.Duration
	logger *slog.Logger
}

var _ cache.Remote = (*LessonCache)(nil)

// NewLessonCache connects to the Redis server at cfg.URL and verifies it
// with a PING.
func NewLessonCache(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*LessonCache, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	c := newLessonCache(goredis.NewClient(opts), cfg.TTL, logger)
	if err := c.client.Ping(ctx).Err(); err != nil {
		_ = c.client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	c.logger.Info("connected to redis", "addr", opts.Addr, "db", opts.DB, "ttl", c.ttl)
	return c, nil
}

func newLessonCache(c client, ttl time.Duration, logger *slog.Logger) *LessonCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonCache{
		client: c,
		ttl:    ttl,
		logger: logger.With("component", "redis_lesson_cache"),
	}
}

// Get implements cache.Remote. A missing key is a miss, not an error.
func (c *LessonCache) Get(ctx context.Context, key string) (domain.SynthesisResult, bool, error) {
	raw, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.SynthesisResult{}, false, nil
	}
	if err != nil {
		return domain.SynthesisResult{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var result domain.SynthesisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.SynthesisResult{}, false, fmt.Errorf("decode cached lesson %s: %w", key, err)
	}
	return result, true, nil
}

// Set implements cache.Remote.
func (c *LessonCache) Set(ctx context.Context, key string, result domain.SynthesisResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode lesson %s: %w", key, err)
	}
	if err := c.client.Set(ctx, KeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (c *LessonCache) Close() error {
	return c.client.Close()
}
