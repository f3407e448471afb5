package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/domain/store"
)

func newCatalogProduct(t *testing.T, tenantID string) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(tenantID, "T-Shirt", "A plain shirt")
	require.NoError(t, err)

	variant, err := catalog.NewVariant(product.ID, "Small / Red", decimal.NewFromFloat(19.99))
	require.NoError(t, err)
	variant.SKU = "TS-S-RED"
	require.NoError(t, variant.AddOption("Size", "S"))
	require.NoError(t, variant.AddOption("Color", "Red"))
	product.Variants = []catalog.Variant{*variant}

	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newCatalogProduct(t, "uid-1")
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "T-Shirt", found.Name)
	assert.Equal(t, "uid-1", found.TenantID)
	require.Len(t, found.Variants, 1)
	assert.Equal(t, "TS-S-RED", found.Variants[0].SKU)
	assert.Len(t, found.Variants[0].Options, 2)
}

func TestGormProductRepository_FindByExternalID(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newCatalogProduct(t, "uid-1")
	product.ExternalProductID = "8091291091121"
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByExternalID(ctx, "uid-1", "8091291091121")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = repo.FindByExternalID(ctx, "uid-1", "404")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// other tenants cannot resolve the external id
	_, err = repo.FindByExternalID(ctx, "uid-2", "8091291091121")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindByTenant(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newCatalogProduct(t, "uid-1")))
	require.NoError(t, repo.Save(ctx, newCatalogProduct(t, "uid-1")))
	require.NoError(t, repo.Save(ctx, newCatalogProduct(t, "uid-2")))

	products, err := repo.FindByTenant(ctx, "uid-1")
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newCatalogProduct(t, "uid-1")
	require.NoError(t, repo.Save(ctx, product))
	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormVariantRepository_FindByExternalID(t *testing.T) {
	db := setupIngestorTestDB(t)
	productRepo := NewGormProductRepository(db)
	variantRepo := NewGormVariantRepository(db)
	ctx := context.Background()

	product := newCatalogProduct(t, "uid-1")
	product.Variants[0].ExternalVariantID = "44659919290545"
	require.NoError(t, productRepo.Save(ctx, product))

	found, err := variantRepo.FindByExternalID(ctx, "44659919290545")
	require.NoError(t, err)
	assert.Equal(t, product.Variants[0].ID, found.ID)

	_, err = variantRepo.FindByExternalID(ctx, "404")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormVariantRepository_FindByProducts(t *testing.T) {
	db := setupIngestorTestDB(t)
	productRepo := NewGormProductRepository(db)
	variantRepo := NewGormVariantRepository(db)
	ctx := context.Background()

	mine := newCatalogProduct(t, "uid-1")
	alsoMine := newCatalogProduct(t, "uid-1")
	foreign := newCatalogProduct(t, "uid-2")
	for _, p := range []*catalog.Product{mine, alsoMine, foreign} {
		require.NoError(t, productRepo.Save(ctx, p))
	}

	// Asking another tenant's id along with your own returns only your rows.
	variants, err := variantRepo.FindByProducts(ctx, "uid-1",
		[]uuid.UUID{mine.ID, alsoMine.ID, foreign.ID})
	require.NoError(t, err)
	require.Len(t, variants, 2)
	for _, v := range variants {
		assert.NotEqual(t, foreign.ID, v.ProductID)
		assert.NotEmpty(t, v.Options)
	}

	variants, err = variantRepo.FindByProducts(ctx, "uid-1", nil)
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestGormStoreVariantRepository_SaveBatch(t *testing.T) {
	db := setupIngestorTestDB(t)
	repo := NewGormStoreVariantRepository(db)
	ctx := context.Background()

	s, err := store.NewStore("Shop A", "shop-a.myshopify.com")
	require.NoError(t, err)

	product := newCatalogProduct(t, "uid-1")
	variantID := product.Variants[0].ID

	row := store.NewStoreVariant(s.ID, product.ID, variantID, "7", "70")
	row.Snapshot(decimal.NewFromFloat(19.99), true)
	require.NoError(t, repo.SaveBatch(ctx, []*store.StoreVariant{row}))

	// re-push updates the snapshot in place
	updated := store.NewStoreVariant(s.ID, product.ID, variantID, "7", "70")
	updated.Snapshot(decimal.NewFromFloat(24.99), false)
	require.NoError(t, repo.SaveBatch(ctx, []*store.StoreVariant{updated}))

	rows, err := repo.FindByStoreAndProduct(ctx, s.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "70", rows[0].ExternalVariantID)
	assert.True(t, rows[0].Price.Equal(decimal.NewFromFloat(24.99)))
	assert.False(t, rows[0].Available)

	byProducts, err := repo.FindByProducts(ctx, s.ID, []uuid.UUID{product.ID})
	require.NoError(t, err)
	assert.Len(t, byProducts, 1)
}
