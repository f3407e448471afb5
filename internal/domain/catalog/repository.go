package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence operations for products.
// Implementations load and save products together with their variants
// and variant options.
type ProductRepository interface {
	// Save persists a product and its variant tree
	Save(ctx context.Context, product *Product) error

	// FindByID retrieves a product by its internal id
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByExternalID retrieves a product by its external platform id
	FindByExternalID(ctx context.Context, tenantID, externalID string) (*Product, error)

	// FindByTenant retrieves all products belonging to a tenant
	FindByTenant(ctx context.Context, tenantID string) ([]*Product, error)

	// Delete removes a product and its variants
	Delete(ctx context.Context, id uuid.UUID) error
}

// VariantRepository defines read operations on variants that are needed
// outside of the product aggregate, such as order line linkage.
type VariantRepository interface {
	// FindByExternalID retrieves a variant by its external platform id
	FindByExternalID(ctx context.Context, externalID string) (*Variant, error)

	// FindByProduct retrieves all variants of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*Variant, error)

	// FindByProducts retrieves the variants of several products in one
	// read. Only variants of products owned by the tenant are returned.
	FindByProducts(ctx context.Context, tenantID string, productIDs []uuid.UUID) ([]*Variant, error)
}
