package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/portal/backend/internal/domain/store"
)

// InMemoryCredentialCache implements CredentialCache with a process-local
// map. Suitable for single-instance deployments and tests.
type InMemoryCredentialCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	ttl     time.Duration
}

type inMemoryEntry struct {
	creds     store.Credentials
	expiresAt time.Time
}

// NewInMemoryCredentialCache creates an in-memory credential cache
func NewInMemoryCredentialCache(ttl time.Duration) *InMemoryCredentialCache {
	return &InMemoryCredentialCache{
		entries: make(map[string]inMemoryEntry),
		ttl:     ttl,
	}
}

func cacheKey(tenantID, domain string) string {
	return tenantID + ":" + store.NormalizeDomain(domain)
}

// Get returns a cached credential or (nil, nil) on miss or expiry
func (c *InMemoryCredentialCache) Get(_ context.Context, tenantID, domain string) (*store.Credentials, error) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(tenantID, domain)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	creds := entry.creds
	return &creds, nil
}

// Set stores a credential with the configured TTL
func (c *InMemoryCredentialCache) Set(_ context.Context, tenantID, domain string, creds *store.Credentials) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(tenantID, domain)] = inMemoryEntry{
		creds:     *creds,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate removes every cached credential for a domain, across tenants
func (c *InMemoryCredentialCache) Invalidate(_ context.Context, domain string) error {
	suffix := ":" + store.NormalizeDomain(domain)

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasSuffix(key, suffix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Ensure InMemoryCredentialCache implements CredentialCache
var _ CredentialCache = (*InMemoryCredentialCache)(nil)
