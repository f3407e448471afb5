// Package store manages storefront connections: listing, connecting with a
// known token, and promoting OAuth installations into store rows.
package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/infrastructure/cache"
)

// TokenExchanger exchanges an installation authorization code for an
// admin API access token.
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, domain, code string) (accessToken, scope string, err error)
}

// StoreServiceImpl implements the store connection use cases
type StoreServiceImpl struct {
	storeRepo   store.StoreRepository
	sessionRepo store.SessionRepository
	exchanger   TokenExchanger
	cache       cache.CredentialCache
	logger      *zap.Logger
}

// NewStoreService creates a new StoreServiceImpl
func NewStoreService(
	storeRepo store.StoreRepository,
	sessionRepo store.SessionRepository,
	exchanger TokenExchanger,
	credCache cache.CredentialCache,
	logger *zap.Logger,
) *StoreServiceImpl {
	return &StoreServiceImpl{
		storeRepo:   storeRepo,
		sessionRepo: sessionRepo,
		exchanger:   exchanger,
		cache:       credCache,
		logger:      logger,
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// ListStores returns all stores the tenant is a member of
func (s *StoreServiceImpl) ListStores(ctx context.Context, tenantID string) ([]*store.Store, error) {
	return s.storeRepo.FindByTenant(ctx, tenantID)
}

// GetStore returns one store the tenant is a member of
func (s *StoreServiceImpl) GetStore(ctx context.Context, tenantID, domain string) (*store.Store, error) {
	return s.storeRepo.FindByTenantAndDomain(ctx, tenantID, store.NormalizeDomain(domain))
}

// ---------------------------------------------------------------------------
// Connection
// ---------------------------------------------------------------------------

// Connect binds the tenant to the storefront domain with a known access
// token. If the store already exists the tenant is added as a member and
// the existing store is returned; connecting twice is not an error.
func (s *StoreServiceImpl) Connect(ctx context.Context, tenantID, name, domain, accessToken string) (*store.Store, error) {
	domain = store.NormalizeDomain(domain)
	if domain == "" {
		return nil, store.ErrInvalidDomain
	}

	existing, err := s.storeRepo.FindByDomain(ctx, domain)
	switch {
	case err == nil:
		return s.joinExisting(ctx, existing, tenantID, accessToken)
	case !errors.Is(err, store.ErrStoreNotFound):
		return nil, err
	}

	st, err := store.NewStore(name, domain)
	if err != nil {
		return nil, err
	}
	st.SetAccessToken(accessToken)
	if _, err := st.AddUser(tenantID, store.StoreRoleOwner); err != nil {
		return nil, err
	}
	if err := s.storeRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("store connected",
		zap.String("tenant_id", tenantID),
		zap.String("domain", domain))
	return st, nil
}

// joinExisting adds the tenant to an already-connected store, refreshing
// the token when a new one is provided
func (s *StoreServiceImpl) joinExisting(ctx context.Context, st *store.Store, tenantID, accessToken string) (*store.Store, error) {
	changed := false
	if accessToken != "" && accessToken != st.AccessToken {
		st.SetAccessToken(accessToken)
		changed = true
	}
	if !st.HasUser(tenantID) {
		if _, err := st.AddUser(tenantID, store.StoreRoleMember); err != nil {
			return nil, err
		}
		changed = true
	}
	if changed {
		if err := s.storeRepo.Save(ctx, st); err != nil {
			return nil, err
		}
		if err := s.cache.Invalidate(ctx, st.Domain); err != nil {
			s.logger.Warn("credential cache invalidation failed",
				zap.String("domain", st.Domain),
				zap.Error(err))
		}
	}
	return st, nil
}

// ExchangeToken exchanges an OAuth authorization code for an access token
// and connects the store. An existing store connection short-circuits the
// exchange, matching the install callback being replayed.
func (s *StoreServiceImpl) ExchangeToken(ctx context.Context, tenantID, domain, code string) (*store.Store, error) {
	domain = store.NormalizeDomain(domain)
	if domain == "" {
		return nil, store.ErrInvalidDomain
	}

	existing, err := s.storeRepo.FindByDomain(ctx, domain)
	switch {
	case err == nil:
		return s.joinExisting(ctx, existing, tenantID, "")
	case !errors.Is(err, store.ErrStoreNotFound):
		return nil, err
	}

	token, scope, err := s.exchanger.ExchangeToken(ctx, domain, code)
	if err != nil {
		return nil, err
	}

	// Record the credential as a session first so a partial failure below
	// still leaves the token resolvable.
	session, err := store.NewSession(domain, token, scope)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	st, err := s.Connect(ctx, tenantID, "", domain, token)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.DeleteByDomain(ctx, domain); err != nil {
		s.logger.Warn("failed to clean up installation session",
			zap.String("domain", domain),
			zap.Error(err))
	}
	return st, nil
}

// AddMember adds another tenant to a store. Only an existing member can
// add members.
func (s *StoreServiceImpl) AddMember(ctx context.Context, tenantID, domain, memberTenantID string, role store.StoreRole) error {
	st, err := s.storeRepo.FindByTenantAndDomain(ctx, tenantID, store.NormalizeDomain(domain))
	if err != nil {
		return err
	}
	if _, err := st.AddUser(memberTenantID, role); err != nil {
		return err
	}
	return s.storeRepo.Save(ctx, st)
}

// Disconnect removes the store's cached credentials, forcing the next sync
// to re-resolve. Called from the app-uninstall webhook.
func (s *StoreServiceImpl) Disconnect(ctx context.Context, domain string) error {
	domain = store.NormalizeDomain(domain)
	if err := s.sessionRepo.DeleteByDomain(ctx, domain); err != nil {
		return err
	}
	return s.cache.Invalidate(ctx, domain)
}
