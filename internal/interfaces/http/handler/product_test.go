package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/portal/backend/internal/application/catalog"
	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/interfaces/http/dto"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByExternalID(ctx context.Context, tenantID, externalID string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByTenant(ctx context.Context, tenantID string) ([]*catalog.Product, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStoreVariantRepository implements store.StoreVariantRepository for testing
type MockStoreVariantRepository struct {
	mock.Mock
}

func (m *MockStoreVariantRepository) SaveBatch(ctx context.Context, rows []*store.StoreVariant) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockStoreVariantRepository) FindByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) ([]*store.StoreVariant, error) {
	args := m.Called(ctx, storeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.StoreVariant), args.Error(1)
}

func (m *MockStoreVariantRepository) FindByProducts(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) ([]*store.StoreVariant, error) {
	args := m.Called(ctx, storeID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.StoreVariant), args.Error(1)
}

// MockVariantRepository implements catalog.VariantRepository for testing
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) FindByExternalID(ctx context.Context, externalID string) (*catalog.Variant, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*catalog.Variant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindByProducts(ctx context.Context, tenantID string, productIDs []uuid.UUID) ([]*catalog.Variant, error) {
	args := m.Called(ctx, tenantID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Variant), args.Error(1)
}

func newProductHandlerFixture() (*ProductHandler, *MockProductRepository, *MockStoreVariantRepository) {
	productRepo := new(MockProductRepository)
	linkRepo := new(MockStoreVariantRepository)
	service := catalogapp.NewProductService(productRepo, new(MockVariantRepository), linkRepo)
	return NewProductHandler(service), productRepo, linkRepo
}

func newTestContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", "tenant-1")
	c.Request = req
	return c, w
}

func TestProductHandler_Create(t *testing.T) {
	h, productRepo, _ := newProductHandlerFixture()

	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	body := dto.CreateProductRequest{
		Name:   "Shirt",
		Vendor: "Portal",
		Price:  decimal.RequireFromString("19.99"),
		Variants: []dto.CreateVariantRequest{
			{Title: "Small", SKU: "SH-S", Price: decimal.RequireFromString("19.99"), Stock: 3},
		},
	}
	c, w := newTestContext(t, http.MethodPost, "/api/v1/products", body)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Shirt", data["name"])
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	h, _, _ := newProductHandlerFixture()

	body := dto.CreateProductRequest{Price: decimal.RequireFromString("19.99")}
	c, w := newTestContext(t, http.MethodPost, "/api/v1/products", body)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Create_NoTenant(t *testing.T) {
	h, _, _ := newProductHandlerFixture()

	body := dto.CreateProductRequest{Name: "Shirt", Price: decimal.RequireFromString("19.99")}
	c, w := newTestContext(t, http.MethodPost, "/api/v1/products", body)
	c.Request.Header.Del("X-Tenant-ID")

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	h, productRepo, _ := newProductHandlerFixture()

	productID := uuid.New()
	productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/products/"+productID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: productID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	h, _, _ := newProductHandlerFixture()

	c, w := newTestContext(t, http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List(t *testing.T) {
	h, productRepo, _ := newProductHandlerFixture()

	product, err := catalog.NewProduct("tenant-1", "Shirt", "")
	require.NoError(t, err)
	product.SetPrice(decimal.RequireFromString("19.99"))
	productRepo.On("FindByTenant", mock.Anything, "tenant-1").Return([]*catalog.Product{product}, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/products", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Shirt", items[0].(map[string]interface{})["name"])
}

func TestProductHandler_List_WithLinkage(t *testing.T) {
	h, productRepo, linkRepo := newProductHandlerFixture()

	storeID := uuid.New()
	product, err := catalog.NewProduct("tenant-1", "Shirt", "")
	require.NoError(t, err)
	productRepo.On("FindByTenant", mock.Anything, "tenant-1").Return([]*catalog.Product{product}, nil)
	linkRepo.On("FindByProducts", mock.Anything, storeID, []uuid.UUID{product.ID}).
		Return([]*store.StoreVariant{}, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/products?store_id="+storeID.String(), nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	linkRepo.AssertExpectations(t)
}

func TestProductHandler_BatchVariants(t *testing.T) {
	variantRepo := new(MockVariantRepository)
	service := catalogapp.NewProductService(new(MockProductRepository), variantRepo, new(MockStoreVariantRepository))
	h := NewProductHandler(service)

	shirtID := uuid.New()
	mugID := uuid.New()
	shirtVariant, err := catalog.NewVariant(shirtID, "Small", decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	mugVariant, err := catalog.NewVariant(mugID, "Default", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	variantRepo.On("FindByProducts", mock.Anything, "tenant-1", []uuid.UUID{shirtID, mugID}).
		Return([]*catalog.Variant{shirtVariant, mugVariant}, nil)

	body := dto.BatchVariantsRequest{ProductIDs: []string{shirtID.String(), mugID.String()}}
	c, w := newTestContext(t, http.MethodPost, "/api/v1/products/variants", body)

	h.BatchVariants(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, shirtID.String(), first["product_id"])
	assert.Equal(t, "Small", first["title"])
	variantRepo.AssertExpectations(t)
}

func TestProductHandler_BatchVariants_InvalidID(t *testing.T) {
	h, _, _ := newProductHandlerFixture()

	body := map[string]interface{}{"productIds": []string{"not-a-uuid"}}
	c, w := newTestContext(t, http.MethodPost, "/api/v1/products/variants", body)

	h.BatchVariants(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_BatchVariants_EmptyList(t *testing.T) {
	h, _, _ := newProductHandlerFixture()

	body := dto.BatchVariantsRequest{ProductIDs: []string{}}
	c, w := newTestContext(t, http.MethodPost, "/api/v1/products/variants", body)

	h.BatchVariants(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Delete(t *testing.T) {
	h, productRepo, _ := newProductHandlerFixture()

	product, err := catalog.NewProduct("tenant-1", "Shirt", "")
	require.NoError(t, err)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Delete", mock.Anything, product.ID).Return(nil)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/products/"+product.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: product.ID.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	productRepo.AssertExpectations(t)
}
