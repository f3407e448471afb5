package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portal/backend/internal/domain/store"
)

func TestGormStoreRepository_SaveAndFind(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	s, err := store.NewStore("Shop A", "shop-a.myshopify.com")
	require.NoError(t, err)
	s.SetAccessToken("shpat_abc")
	_, err = s.AddUser("uid-1", store.StoreRoleOwner)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, s))

	found, err := repo.FindByDomain(ctx, "shop-a.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)
	assert.Equal(t, "shpat_abc", found.AccessToken)
	require.Len(t, found.Users, 1)
	assert.Equal(t, "uid-1", found.Users[0].TenantID)
}

func TestGormStoreRepository_SaveUpdatesExisting(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	s, err := store.NewStore("Shop A", "shop-a.myshopify.com")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	s.SetAccessToken("shpat_new")
	s.SetFulfillmentService("fs-1", "loc-1")
	require.NoError(t, repo.Save(ctx, s))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "shpat_new", found.AccessToken)
	assert.Equal(t, "fs-1", found.FulfillmentServiceID)
	assert.Equal(t, "loc-1", found.LocationID)
}

func TestGormStoreRepository_FindByTenantAndDomain(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	s, err := store.NewStore("Shop A", "shop-a.myshopify.com")
	require.NoError(t, err)
	_, err = s.AddUser("uid-1", store.StoreRoleOwner)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	found, err := repo.FindByTenantAndDomain(ctx, "uid-1", "shop-a.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)

	// a tenant without membership cannot see the store
	_, err = repo.FindByTenantAndDomain(ctx, "uid-2", "shop-a.myshopify.com")
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestGormStoreRepository_FindByTenant(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	for _, domain := range []string{"shop-a.myshopify.com", "shop-b.myshopify.com"} {
		s, err := store.NewStore("", domain)
		require.NoError(t, err)
		_, err = s.AddUser("uid-1", store.StoreRoleMember)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, s))
	}

	stores, err := repo.FindByTenant(ctx, "uid-1")
	require.NoError(t, err)
	assert.Len(t, stores, 2)

	stores, err = repo.FindByTenant(ctx, "uid-2")
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestGormStoreRepository_FindByDomain_NotFound(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormStoreRepository(db)

	_, err := repo.FindByDomain(context.Background(), "missing.myshopify.com")
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestGormSessionRepository(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormSessionRepository(db)
	ctx := context.Background()

	first, err := store.NewSession("shop-a.myshopify.com", "shpat_old", "read_orders")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	// saving a newer session replaces the previous one for the domain
	second, err := store.NewSession("shop-a.myshopify.com", "shpat_new", "read_orders")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	found, err := repo.FindByDomain(ctx, "shop-a.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "shpat_new", found.AccessToken)

	require.NoError(t, repo.DeleteByDomain(ctx, "shop-a.myshopify.com"))
	_, err = repo.FindByDomain(ctx, "shop-a.myshopify.com")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
