// Package catalog exposes the product catalog use cases: authoring
// products with their variant trees and reading them back together with
// their storefront linkage state.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/domain/store"
)

// ProductServiceImpl handles product-related business operations
type ProductServiceImpl struct {
	productRepo catalog.ProductRepository
	variantRepo catalog.VariantRepository
	linkRepo    store.StoreVariantRepository
}

// NewProductService creates a new ProductServiceImpl
func NewProductService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	linkRepo store.StoreVariantRepository,
) *ProductServiceImpl {
	return &ProductServiceImpl{
		productRepo: productRepo,
		variantRepo: variantRepo,
		linkRepo:    linkRepo,
	}
}

// ---------------------------------------------------------------------------
// Authoring
// ---------------------------------------------------------------------------

// Create creates a new product together with its variants
func (s *ProductServiceImpl) Create(ctx context.Context, tenantID string, req CreateProductRequest) (*catalog.Product, error) {
	product, err := catalog.NewProduct(tenantID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	product.Vendor = req.Vendor
	if req.ImageURL != "" {
		product.SetImage(req.ImageURL)
	}
	if err := product.SetPrice(req.Price); err != nil {
		return nil, err
	}

	for _, vr := range req.Variants {
		variant, err := catalog.NewVariant(product.ID, vr.Title, vr.Price)
		if err != nil {
			return nil, err
		}
		variant.SKU = vr.SKU
		if err := variant.SetStock(vr.Stock); err != nil {
			return nil, err
		}
		for _, opt := range vr.Options {
			if err := variant.AddOption(opt.Name, opt.Value); err != nil {
				return nil, err
			}
		}
		product.Variants = append(product.Variants, *variant)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update updates a product's basic information. Products that are linked
// to a storefront keep their linkage; only local fields change.
func (s *ProductServiceImpl) Update(ctx context.Context, tenantID string, productID uuid.UUID, req UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.load(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	product.Vendor = req.Vendor
	product.SetImage(req.ImageURL)
	if err := product.SetPrice(req.Price); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product and its variants
func (s *ProductServiceImpl) Delete(ctx context.Context, tenantID string, productID uuid.UUID) error {
	if _, err := s.load(ctx, tenantID, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// Get returns one product with its variant tree
func (s *ProductServiceImpl) Get(ctx context.Context, tenantID string, productID uuid.UUID) (*catalog.Product, error) {
	return s.load(ctx, tenantID, productID)
}

// List returns all products of a tenant
func (s *ProductServiceImpl) List(ctx context.Context, tenantID string) ([]*catalog.Product, error) {
	return s.productRepo.FindByTenant(ctx, tenantID)
}

// ListVariants returns the variants of one product. Unlike Get, which
// loads the full aggregate, this reads the variant rows alone so storefront
// pushes can diff against linkage without materializing the product.
func (s *ProductServiceImpl) ListVariants(ctx context.Context, tenantID string, productID uuid.UUID) ([]*catalog.Variant, error) {
	if _, err := s.load(ctx, tenantID, productID); err != nil {
		return nil, err
	}
	return s.variantRepo.FindByProduct(ctx, productID)
}

// BatchVariants returns the variants of several products in one read, so
// a caller staging a multi-product push does not issue one query per
// product. Ids owned by another tenant are silently absent from the
// result rather than an error.
func (s *ProductServiceImpl) BatchVariants(ctx context.Context, tenantID string, productIDs []uuid.UUID) ([]*catalog.Variant, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	return s.variantRepo.FindByProducts(ctx, tenantID, productIDs)
}

// ListWithLinkage returns the tenant's products joined with their per-store
// variant linkage rows, so a caller can tell which variants are already
// pushed to the given store.
func (s *ProductServiceImpl) ListWithLinkage(ctx context.Context, tenantID string, storeID uuid.UUID) ([]ProductWithLinkage, error) {
	products, err := s.productRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	links, err := s.linkRepo.FindByProducts(ctx, storeID, ids)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID][]*store.StoreVariant, len(links))
	for _, link := range links {
		byProduct[link.ProductID] = append(byProduct[link.ProductID], link)
	}

	out := make([]ProductWithLinkage, 0, len(products))
	for _, p := range products {
		out = append(out, ProductWithLinkage{Product: p, Links: byProduct[p.ID]})
	}
	return out, nil
}

// load fetches a product and verifies tenant ownership. A product owned
// by another tenant is indistinguishable from a missing one.
func (s *ProductServiceImpl) load(ctx context.Context, tenantID string, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if product.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

// ---------------------------------------------------------------------------
// Requests and read models
// ---------------------------------------------------------------------------

// CreateProductRequest carries the fields for creating a product
type CreateProductRequest struct {
	Name        string
	Description string
	Vendor      string
	ImageURL    string
	Price       decimal.Decimal
	Variants    []CreateVariantRequest
}

// CreateVariantRequest carries the fields for one variant of a new product
type CreateVariantRequest struct {
	Title   string
	SKU     string
	Stock   int
	Price   decimal.Decimal
	Options []VariantOptionRequest
}

// VariantOptionRequest is one option name/value pair on a variant
type VariantOptionRequest struct {
	Name  string
	Value string
}

// UpdateProductRequest carries the fields for updating a product
type UpdateProductRequest struct {
	Name        string
	Description string
	Vendor      string
	ImageURL    string
	Price       decimal.Decimal
}

// ProductWithLinkage pairs a product with its storefront linkage rows
// for one store. Links is empty for products that were never pushed.
type ProductWithLinkage struct {
	Product *catalog.Product
	Links   []*store.StoreVariant
}
