package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Raymond9734/customer-admin/internal/models"
)

// redisCache implements CustomerCache using Redis
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// NewRedisCache connects to Redis and returns a customer cache
func NewRedisCache(cfg RedisConfig, logger *slog.Logger) (CustomerCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.Duration("ttl", cfg.TTL),
	)

	return NewRedisCacheWithClient(client, cfg.TTL, logger), nil
}

// NewRedisCacheWithClient wraps an existing client. Close closes the client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) CustomerCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func customerKey(id int64) string {
	return fmt.Sprintf("customer:%d", id)
}

// Get retrieves a customer from the cache
func (c *redisCache) Get(ctx context.Context, id int64) (*models.Customer, error) {
	key := customerKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("cache miss", slog.Int64("customer_id", id))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer from cache: %w", err)
	}

	var customer models.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		// Corrupted entry
		_ = c.client.Del(ctx, key).Err()
		return nil, fmt.Errorf("failed to unmarshal cached customer: %w", err)
	}

	c.logger.Debug("cache hit", slog.Int64("customer_id", id))
	return &customer, nil
}

// Set stores a customer in the cache
func (c *redisCache) Set(ctx context.Context, customer *models.Customer) error {
	if customer == nil {
		return nil
	}

	data, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer: %w", err)
	}

	if err := c.client.Set(ctx, customerKey(customer.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache customer: %w", err)
	}

	return nil
}

// Invalidate drops a cached customer
func (c *redisCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, customerKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate customer: %w", err)
	}
	return nil
}

// Health checks if Redis is reachable
func (c *redisCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *redisCache) Close() error {
	return c.client.Close()
}
