package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/semsolhan1/todo-api202306/internal/config"
	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client (initialized on first use).
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err, "url", cfg.RedisURL)
			return
		}
		opts.PoolSize = cfg.RedisPoolSize
		c := redis.NewClient(opts)
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Error(ctx, "Redis ping failed", "error", err)
			return
		}
		client = c
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize)
	})
	return client
}

func listKey(ownerID string) string {
	return "todos:user:" + ownerID
}

// ListCache caches each owner's todo list envelope in Redis. Every method
// degrades to a no-op when Redis is unavailable.
type ListCache struct{}

// NewListCache returns a ListCache backed by the global Redis client.
func NewListCache() *ListCache {
	return &ListCache{}
}

// GetList reads an owner's cached list. Returns (nil, false) on miss or error.
func (l *ListCache) GetList(ctx context.Context, ownerID string) (*models.TodoListResponse, bool) {
	c := Client(ctx)
	if c == nil {
		return nil, false
	}
	b, err := c.Get(ctx, listKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get list failed", "error", err)
		return nil, false
	}
	var resp models.TodoListResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		logger.Debug(ctx, "Redis unmarshal list failed", "error", err)
		return nil, false
	}
	return &resp, true
}

// SetList writes an owner's list with the configured TTL.
func (l *ListCache) SetList(ctx context.Context, ownerID string, resp *models.TodoListResponse) {
	c := Client(ctx)
	if c == nil {
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		logger.Debug(ctx, "Marshal list for cache failed", "error", err)
		return
	}
	ttl := time.Duration(config.Get().CacheTTL) * time.Second
	if err := c.Set(ctx, listKey(ownerID), b, ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis set list failed", "error", err)
	}
}

// Invalidate deletes an owner's cached list so the next read goes to the store.
func (l *ListCache) Invalidate(ctx context.Context, ownerID string) {
	c := Client(ctx)
	if c == nil {
		return
	}
	if err := c.Del(ctx, listKey(ownerID)).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate list failed", "error", err)
	}
}
