package sync

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/infrastructure/cache"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeStoreRepo struct {
	stores map[string]*store.Store // keyed by tenantID + "|" + domain
	byID   map[uuid.UUID]*store.Store
	saved  []*store.Store
	calls  int
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{
		stores: make(map[string]*store.Store),
		byID:   make(map[uuid.UUID]*store.Store),
	}
}

func (r *fakeStoreRepo) add(tenantID string, s *store.Store) {
	r.stores[tenantID+"|"+s.Domain] = s
	r.byID[s.ID] = s
}

func (r *fakeStoreRepo) Save(_ context.Context, s *store.Store) error {
	r.saved = append(r.saved, s)
	r.byID[s.ID] = s
	return nil
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*store.Store, error) {
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, store.ErrStoreNotFound
}

func (r *fakeStoreRepo) FindByDomain(_ context.Context, domain string) (*store.Store, error) {
	for _, s := range r.byID {
		if s.Domain == domain {
			return s, nil
		}
	}
	return nil, store.ErrStoreNotFound
}

func (r *fakeStoreRepo) FindByTenantAndDomain(_ context.Context, tenantID, domain string) (*store.Store, error) {
	r.calls++
	if s, ok := r.stores[tenantID+"|"+domain]; ok {
		return s, nil
	}
	return nil, store.ErrStoreNotFound
}

func (r *fakeStoreRepo) FindByTenant(_ context.Context, tenantID string) ([]*store.Store, error) {
	var out []*store.Store
	for key, s := range r.stores {
		if strings.HasPrefix(key, tenantID+"|") {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[string]*store.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*store.Session)}
}

func (r *fakeSessionRepo) Save(_ context.Context, s *store.Session) error {
	r.sessions[s.Domain] = s
	return nil
}

func (r *fakeSessionRepo) FindByDomain(_ context.Context, domain string) (*store.Session, error) {
	if s, ok := r.sessions[domain]; ok {
		return s, nil
	}
	return nil, store.ErrSessionNotFound
}

func (r *fakeSessionRepo) DeleteByDomain(_ context.Context, domain string) error {
	delete(r.sessions, domain)
	return nil
}

// ---------------------------------------------------------------------------
// Resolver Tests
// ---------------------------------------------------------------------------

func newTestResolver(storeRepo *fakeStoreRepo, sessionRepo *fakeSessionRepo) *CredentialResolverImpl {
	return NewCredentialResolver(
		cache.NewInMemoryCredentialCache(time.Minute),
		storeRepo,
		sessionRepo,
		zap.NewNop(),
	)
}

func connectedStore(t *testing.T, domain, token string) *store.Store {
	t.Helper()
	s, err := store.NewStore("", domain)
	require.NoError(t, err)
	s.SetAccessToken(token)
	return s
}

func TestCredentialResolver_Resolve_FromStore(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.add("tenant-1", connectedStore(t, "shop-a.myshopify.com", "shpat_abc"))

	resolver := newTestResolver(storeRepo, newFakeSessionRepo())

	creds, err := resolver.Resolve(context.Background(), "tenant-1", "shop-a.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "shop-a.myshopify.com", creds.Domain)
	assert.Equal(t, "shpat_abc", creds.AccessToken)
}

func TestCredentialResolver_Resolve_NormalizesDomain(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.add("tenant-1", connectedStore(t, "shop-a.myshopify.com", "shpat_abc"))

	resolver := newTestResolver(storeRepo, newFakeSessionRepo())

	creds, err := resolver.Resolve(context.Background(), "tenant-1", "https://Shop-A.myshopify.com/")
	require.NoError(t, err)
	assert.Equal(t, "shop-a.myshopify.com", creds.Domain)
}

func TestCredentialResolver_Resolve_CachesHit(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.add("tenant-1", connectedStore(t, "shop-a.myshopify.com", "shpat_abc"))

	resolver := newTestResolver(storeRepo, newFakeSessionRepo())

	_, err := resolver.Resolve(context.Background(), "tenant-1", "shop-a.myshopify.com")
	require.NoError(t, err)
	_, err = resolver.Resolve(context.Background(), "tenant-1", "shop-a.myshopify.com")
	require.NoError(t, err)

	assert.Equal(t, 1, storeRepo.calls, "second resolve must come from cache")
}

func TestCredentialResolver_Resolve_SessionFallback(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	session, err := store.NewSession("shop-b.myshopify.com", "shpat_pending", "read_orders")
	require.NoError(t, err)
	require.NoError(t, sessionRepo.Save(context.Background(), session))

	resolver := newTestResolver(newFakeStoreRepo(), sessionRepo)

	creds, err := resolver.Resolve(context.Background(), "tenant-1", "shop-b.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "shpat_pending", creds.AccessToken)
}

func TestCredentialResolver_Resolve_ExpiredSession(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	session, err := store.NewSession("shop-b.myshopify.com", "shpat_pending", "")
	require.NoError(t, err)
	expired := time.Now().Add(-time.Hour)
	session.ExpiresAt = &expired
	require.NoError(t, sessionRepo.Save(context.Background(), session))

	resolver := newTestResolver(newFakeStoreRepo(), sessionRepo)

	_, err = resolver.Resolve(context.Background(), "tenant-1", "shop-b.myshopify.com")
	assert.ErrorIs(t, err, store.ErrCredentialNotFound)
}

func TestCredentialResolver_Resolve_NotFound(t *testing.T) {
	resolver := newTestResolver(newFakeStoreRepo(), newFakeSessionRepo())

	_, err := resolver.Resolve(context.Background(), "tenant-1", "unknown.myshopify.com")
	assert.ErrorIs(t, err, store.ErrCredentialNotFound)
}

func TestCredentialResolver_Resolve_EmptyDomain(t *testing.T) {
	resolver := newTestResolver(newFakeStoreRepo(), newFakeSessionRepo())

	_, err := resolver.Resolve(context.Background(), "tenant-1", "")
	assert.ErrorIs(t, err, store.ErrInvalidDomain)
}
