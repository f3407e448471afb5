// Package sync orchestrates the pull and push flows between the internal
// catalog and external storefronts.
package sync

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/infrastructure/cache"
)

// CredentialResolverImpl implements store.CredentialResolver.
// Resolution order: cache, then the store's stored token, then a pending
// installation session for the domain. A resolved credential is cached
// best-effort; cache failures never fail the resolution.
type CredentialResolverImpl struct {
	cache       cache.CredentialCache
	storeRepo   store.StoreRepository
	sessionRepo store.SessionRepository
	logger      *zap.Logger
}

// NewCredentialResolver creates a new CredentialResolverImpl
func NewCredentialResolver(
	credCache cache.CredentialCache,
	storeRepo store.StoreRepository,
	sessionRepo store.SessionRepository,
	logger *zap.Logger,
) *CredentialResolverImpl {
	return &CredentialResolverImpl{
		cache:       credCache,
		storeRepo:   storeRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Resolve looks up the credential for a tenant and storefront domain.
// ErrCredentialNotFound is terminal: the store must be re-authorized and
// callers must not retry.
func (r *CredentialResolverImpl) Resolve(ctx context.Context, tenantID, domain string) (*store.Credentials, error) {
	domain = store.NormalizeDomain(domain)
	if domain == "" {
		return nil, store.ErrInvalidDomain
	}

	if cached, err := r.cache.Get(ctx, tenantID, domain); err != nil {
		r.logger.Warn("credential cache read failed",
			zap.String("domain", domain),
			zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	creds, err := r.lookup(ctx, tenantID, domain)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, tenantID, domain, creds); err != nil {
		r.logger.Warn("credential cache write failed",
			zap.String("domain", domain),
			zap.Error(err))
	}
	return creds, nil
}

// lookup checks the store row, then falls back to a pending session
func (r *CredentialResolverImpl) lookup(ctx context.Context, tenantID, domain string) (*store.Credentials, error) {
	s, err := r.storeRepo.FindByTenantAndDomain(ctx, tenantID, domain)
	switch {
	case err == nil:
		if s.AccessToken != "" {
			return &store.Credentials{Domain: s.Domain, AccessToken: s.AccessToken}, nil
		}
	case !errors.Is(err, store.ErrStoreNotFound):
		return nil, err
	}

	session, err := r.sessionRepo.FindByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, store.ErrCredentialNotFound
		}
		return nil, err
	}
	if session.IsExpired() {
		return nil, store.ErrCredentialNotFound
	}
	return &store.Credentials{Domain: session.Domain, AccessToken: session.AccessToken}, nil
}

// Ensure CredentialResolverImpl implements store.CredentialResolver
var _ store.CredentialResolver = (*CredentialResolverImpl)(nil)
