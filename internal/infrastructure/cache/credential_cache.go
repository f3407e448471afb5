package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/infrastructure/config"
)

// CredentialCache caches resolved storefront credentials so repeated sync
// runs for the same store do not hit the database on every request.
// A miss returns (nil, nil); errors are reserved for backend failures.
type CredentialCache interface {
	Get(ctx context.Context, tenantID, domain string) (*store.Credentials, error)
	Set(ctx context.Context, tenantID, domain string, creds *store.Credentials) error
	Invalidate(ctx context.Context, domain string) error
}

// ---------------------------------------------------------------------------
// Redis implementation
// ---------------------------------------------------------------------------

// RedisCredentialCache implements CredentialCache using Redis. Suitable for
// distributed deployments where multiple instances share cached credentials.
type RedisCredentialCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCredentialCache creates a Redis-backed credential cache
func NewRedisCredentialCache(cfg config.RedisConfig, ttl time.Duration) (*RedisCredentialCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCredentialCache{
		client:    client,
		keyPrefix: "store:credential:",
		ttl:       ttl,
	}, nil
}

// NewRedisCredentialCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisCredentialCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCredentialCache {
	return &RedisCredentialCache{
		client:    client,
		keyPrefix: "store:credential:",
		ttl:       ttl,
	}
}

func (c *RedisCredentialCache) key(tenantID, domain string) string {
	return c.keyPrefix + tenantID + ":" + store.NormalizeDomain(domain)
}

// Get returns a cached credential or (nil, nil) on miss
func (c *RedisCredentialCache) Get(ctx context.Context, tenantID, domain string) (*store.Credentials, error) {
	raw, err := c.client.Get(ctx, c.key(tenantID, domain)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached credential: %w", err)
	}

	var creds store.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("failed to decode cached credential: %w", err)
	}
	return &creds, nil
}

// Set stores a credential with the configured TTL
func (c *RedisCredentialCache) Set(ctx context.Context, tenantID, domain string, creds *store.Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}
	if err := c.client.Set(ctx, c.key(tenantID, domain), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache credential: %w", err)
	}
	return nil
}

// Invalidate removes every cached credential for a domain, across tenants.
// Called when a store is re-authorized and its token changes.
func (c *RedisCredentialCache) Invalidate(ctx context.Context, domain string) error {
	pattern := c.keyPrefix + "*:" + store.NormalizeDomain(domain)

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached credentials: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached credentials: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisCredentialCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCredentialCache implements CredentialCache
var _ CredentialCache = (*RedisCredentialCache)(nil)
