package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository and
// catalog.VariantRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// ---------------------------------------------------------------------------
// ProductRepository implementation
// ---------------------------------------------------------------------------

// Save persists a product and its variant tree
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)

	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&model).Error
}

// FindByID retrieves a product by its internal id
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Variants.Options").
		Preload("Variants").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID retrieves a product by its external platform id
func (r *GormProductRepository) FindByExternalID(ctx context.Context, tenantID, externalID string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Variants.Options").
		Preload("Variants").
		Where("tenant_id = ? AND external_product_id = ?", tenantID, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant retrieves all products belonging to a tenant
func (r *GormProductRepository) FindByTenant(ctx context.Context, tenantID string) ([]*catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Variants.Options").
		Preload("Variants").
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = productModels[i].ToDomain()
	}
	return products, nil
}

// Delete removes a product and its variants
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// ---------------------------------------------------------------------------
// VariantRepository implementation
// ---------------------------------------------------------------------------

// GormVariantRepository implements catalog.VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByExternalID retrieves a variant by its external platform id
func (r *GormVariantRepository) FindByExternalID(ctx context.Context, externalID string) (*catalog.Variant, error) {
	var model models.VariantModel
	if err := r.db.WithContext(ctx).
		Preload("Options").
		Where("external_variant_id = ?", externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct retrieves all variants of a product
func (r *GormVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*catalog.Variant, error) {
	var variantModels []models.VariantModel
	if err := r.db.WithContext(ctx).
		Preload("Options").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&variantModels).Error; err != nil {
		return nil, err
	}

	variants := make([]*catalog.Variant, len(variantModels))
	for i := range variantModels {
		variants[i] = variantModels[i].ToDomain()
	}
	return variants, nil
}

// FindByProducts retrieves the variants of several products in one read.
// The join against products keeps the lookup tenant-scoped: ids belonging
// to another tenant simply produce no rows.
func (r *GormVariantRepository) FindByProducts(ctx context.Context, tenantID string, productIDs []uuid.UUID) ([]*catalog.Variant, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var variantModels []models.VariantModel
	if err := r.db.WithContext(ctx).
		Preload("Options").
		Joins("JOIN products ON products.id = variants.product_id").
		Where("products.tenant_id = ? AND variants.product_id IN ?", tenantID, productIDs).
		Order("variants.product_id, variants.created_at ASC").
		Find(&variantModels).Error; err != nil {
		return nil, err
	}

	variants := make([]*catalog.Variant, len(variantModels))
	for i := range variantModels {
		variants[i] = variantModels[i].ToDomain()
	}
	return variants, nil
}

// Ensure GormVariantRepository implements catalog.VariantRepository
var _ catalog.VariantRepository = (*GormVariantRepository)(nil)
