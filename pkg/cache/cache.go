package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLPageContent = 10 * time.Minute // page sections change rarely outside admin edits
	TTLProducts    = 5 * time.Minute  // public catalog listings
)

// Cache key prefixes
const (
	PrefixPage     = "page:"
	PrefixProducts = "products:"
)

// ErrCacheMiss is returned when a key does not exist
var ErrCacheMiss = redis.Nil

// Service Redis cache service interface
type Service interface {
	// Page content cache
	GetPage(ctx context.Context, pageKey string) ([]byte, error)
	SetPage(ctx context.Context, pageKey string, data interface{}) error
	InvalidatePage(ctx context.Context, pageKey string) error

	// Product catalog cache
	GetProducts(ctx context.Context, category string, page, limit int) ([]byte, error)
	SetProducts(ctx context.Context, category string, page, limit int, data interface{}) error
	InvalidateProducts(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service.
// A nil client yields a no-op cache so the API works without Redis.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) get(ctx context.Context, key string) ([]byte, error) {
	if c.client == nil {
		return nil, ErrCacheMiss
	}
	return c.client.Get(ctx, key).Bytes()
}

func (c *redisCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) del(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) GetPage(ctx context.Context, pageKey string) ([]byte, error) {
	return c.get(ctx, PrefixPage+pageKey)
}

func (c *redisCache) SetPage(ctx context.Context, pageKey string, data interface{}) error {
	return c.set(ctx, PrefixPage+pageKey, data, TTLPageContent)
}

func (c *redisCache) InvalidatePage(ctx context.Context, pageKey string) error {
	return c.del(ctx, PrefixPage+pageKey)
}

func (c *redisCache) GetProducts(ctx context.Context, category string, page, limit int) ([]byte, error) {
	return c.get(ctx, productsKey(category, page, limit))
}

func (c *redisCache) SetProducts(ctx context.Context, category string, page, limit int, data interface{}) error {
	return c.set(ctx, productsKey(category, page, limit), data, TTLProducts)
}

func (c *redisCache) InvalidateProducts(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, PrefixProducts+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.del(ctx, keys...)
}

func productsKey(category string, page, limit int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s%s:%d:%d", PrefixProducts, category, page, limit)
}
