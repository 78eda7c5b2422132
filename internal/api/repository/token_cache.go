package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache is a Redis write-through cache in front of the auth_tokens
// table. Lookups try Redis first and fall back to Postgres; the cache is
// best-effort and the service stays correct without it.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenCache connects to Redis and verifies the connection. A nil
// *TokenCache is a valid "cache disabled" value for the auth service.
func NewTokenCache(url, password string, ttl time.Duration) (*TokenCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &TokenCache{client: client, ttl: ttl}, nil
}

func (c *TokenCache) key(tokenKey string) string {
	return "authtoken:" + tokenKey
}

// Get returns the user ID bound to the token key, or redis.Nil when the key
// is not cached.
func (c *TokenCache) Get(ctx context.Context, tokenKey string) (string, error) {
	return c.client.Get(ctx, c.key(tokenKey)).Result()
}

// Set writes the token through to the cache with the configured TTL.
func (c *TokenCache) Set(ctx context.Context, tokenKey, userID string) error {
	return c.client.Set(ctx, c.key(tokenKey), userID, c.ttl).Err()
}

// Delete evicts a revoked token.
func (c *TokenCache) Delete(ctx context.Context, tokenKey string) error {
	return c.client.Del(ctx, c.key(tokenKey)).Err()
}

// Close releases the underlying Redis connection.
func (c *TokenCache) Close() error {
	return c.client.Close()
}
