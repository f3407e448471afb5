package catalog

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

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
	deleted  []uuid.UUID
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByExternalID(_ context.Context, tenantID, externalID string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && p.ExternalProductID == externalID {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByTenant(_ context.Context, tenantID string) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeLinkRepo struct {
	links []*store.StoreVariant
}

func (r *fakeLinkRepo) SaveBatch(_ context.Context, rows []*store.StoreVariant) error {
	r.links = append(r.links, rows...)
	return nil
}

func (r *fakeLinkRepo) FindByStoreAndProduct(_ context.Context, storeID, productID uuid.UUID) ([]*store.StoreVariant, error) {
	var out []*store.StoreVariant
	for _, l := range r.links {
		if l.StoreID == storeID && l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLinkRepo) FindByProducts(_ context.Context, storeID uuid.UUID, productIDs []uuid.UUID) ([]*store.StoreVariant, error) {
	wanted := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var out []*store.StoreVariant
	for _, l := range r.links {
		if l.StoreID == storeID && wanted[l.ProductID] {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeVariantRepo struct {
	variants []*catalog.Variant
	// owners maps product id to owning tenant for the batch lookup
	owners map[uuid.UUID]string
}

func (r *fakeVariantRepo) FindByExternalID(_ context.Context, externalID string) (*catalog.Variant, error) {
	for _, v := range r.variants {
		if v.ExternalVariantID == externalID {
			return v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeVariantRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]*catalog.Variant, error) {
	var out []*catalog.Variant
	for _, v := range r.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVariantRepo) FindByProducts(_ context.Context, tenantID string, productIDs []uuid.UUID) ([]*catalog.Variant, error) {
	wanted := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var out []*catalog.Variant
	for _, v := range r.variants {
		if wanted[v.ProductID] && r.owners[v.ProductID] == tenantID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newService() (*ProductServiceImpl, *fakeProductRepo, *fakeLinkRepo) {
	products := newFakeProductRepo()
	links := &fakeLinkRepo{}
	return NewProductService(products, &fakeVariantRepo{}, links), products, links
}

func shirtRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Shirt",
		Description: "A plain shirt",
		Vendor:      "Portal",
		ImageURL:    "https://cdn.example.com/shirt.png",
		Price:       decimal.RequireFromString("19.99"),
		Variants: []CreateVariantRequest{
			{
				Title: "Small", SKU: "SH-S", Stock: 3,
				Price:   decimal.RequireFromString("19.99"),
				Options: []VariantOptionRequest{{Name: "Size", Value: "Small"}},
			},
			{
				Title: "Large", SKU: "SH-L", Stock: 5,
				Price:   decimal.RequireFromString("21.99"),
				Options: []VariantOptionRequest{{Name: "Size", Value: "Large"}},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestProductService_Create(t *testing.T) {
	svc, repo, _ := newService()

	product, err := svc.Create(context.Background(), "tenant-1", shirtRequest())
	require.NoError(t, err)

	stored, ok := repo.products[product.ID]
	require.True(t, ok)
	assert.Equal(t, "Shirt", stored.Name)
	assert.Equal(t, "Portal", stored.Vendor)
	require.Len(t, stored.Variants, 2)
	assert.Equal(t, "SH-S", stored.Variants[0].SKU)
	assert.Equal(t, 5, stored.Variants[1].Stock)
	require.Len(t, stored.Variants[0].Options, 1)
	assert.Equal(t, "Small", stored.Variants[0].Options[0].Value)
	assert.False(t, stored.IsLinked())
}

func TestProductService_Create_InvalidName(t *testing.T) {
	svc, _, _ := newService()

	req := shirtRequest()
	req.Name = ""
	_, err := svc.Create(context.Background(), "tenant-1", req)
	assert.Error(t, err)
}

func TestProductService_Update(t *testing.T) {
	svc, _, _ := newService()
	product, err := svc.Create(context.Background(), "tenant-1", shirtRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "tenant-1", product.ID, UpdateProductRequest{
		Name:        "Premium Shirt",
		Description: "A nicer shirt",
		Vendor:      "Portal",
		Price:       decimal.RequireFromString("29.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Premium Shirt", updated.Name)
	assert.Equal(t, "29.99", updated.Price.String())
}

func TestProductService_Update_WrongTenant(t *testing.T) {
	svc, _, _ := newService()
	product, err := svc.Create(context.Background(), "tenant-1", shirtRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "tenant-2", product.ID, UpdateProductRequest{
		Name:  "Hijacked",
		Price: decimal.Zero,
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Get(context.Background(), "tenant-1", uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Delete(t *testing.T) {
	svc, repo, _ := newService()
	product, err := svc.Create(context.Background(), "tenant-1", shirtRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "tenant-1", product.ID))
	assert.Empty(t, repo.products)
}

func TestProductService_ListWithLinkage(t *testing.T) {
	svc, _, links := newService()
	pushed, err := svc.Create(context.Background(), "tenant-1", shirtRequest())
	require.NoError(t, err)
	local, err := svc.Create(context.Background(), "tenant-1", CreateProductRequest{
		Name:  "Mug",
		Price: decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)

	storeID := uuid.New()
	link := store.NewStoreVariant(storeID, pushed.ID, pushed.Variants[0].ID, "7", "70")
	link.Snapshot(decimal.RequireFromString("19.99"), true)
	require.NoError(t, links.SaveBatch(context.Background(), []*store.StoreVariant{link}))

	rows, err := svc.ListWithLinkage(context.Background(), "tenant-1", storeID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[uuid.UUID]ProductWithLinkage, len(rows))
	for _, row := range rows {
		byID[row.Product.ID] = row
	}
	require.Len(t, byID[pushed.ID].Links, 1)
	assert.Equal(t, "70", byID[pushed.ID].Links[0].ExternalVariantID)
	assert.Empty(t, byID[local.ID].Links)
}

func TestProductService_ListVariants(t *testing.T) {
	products := newFakeProductRepo()
	variants := &fakeVariantRepo{}
	svc := NewProductService(products, variants, &fakeLinkRepo{})

	created, err := svc.Create(context.Background(), "tenant-1", shirtRequest())
	require.NoError(t, err)
	for i := range created.Variants {
		variants.variants = append(variants.variants, &created.Variants[i])
	}

	rows, err := svc.ListVariants(context.Background(), "tenant-1", created.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Another tenant cannot enumerate the variants.
	_, err = svc.ListVariants(context.Background(), "tenant-2", created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_BatchVariants(t *testing.T) {
	products := newFakeProductRepo()
	variants := &fakeVariantRepo{owners: make(map[uuid.UUID]string)}
	svc := NewProductService(products, variants, &fakeLinkRepo{})

	shirt, err := svc.Create(context.Background(), "tenant-1", shirtRequest())
	require.NoError(t, err)
	mug, err := svc.Create(context.Background(), "tenant-1", CreateProductRequest{
		Name:  "Mug",
		Price: decimal.RequireFromString("9.99"),
		Variants: []CreateVariantRequest{
			{Title: "Default", SKU: "MU-1", Price: decimal.RequireFromString("9.99")},
		},
	})
	require.NoError(t, err)
	foreign, err := svc.Create(context.Background(), "tenant-2", shirtRequest())
	require.NoError(t, err)

	for _, p := range []*catalog.Product{shirt, mug, foreign} {
		variants.owners[p.ID] = p.TenantID
		for i := range p.Variants {
			variants.variants = append(variants.variants, &p.Variants[i])
		}
	}

	rows, err := svc.BatchVariants(context.Background(), "tenant-1",
		[]uuid.UUID{shirt.ID, mug.ID, foreign.ID})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, v := range rows {
		assert.NotEqual(t, foreign.ID, v.ProductID)
	}

	// An empty id list reads nothing.
	rows, err = svc.BatchVariants(context.Background(), "tenant-1", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
