package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
)

// GormStoreVariantRepository implements store.StoreVariantRepository using GORM
type GormStoreVariantRepository struct {
	db *gorm.DB
}

// NewGormStoreVariantRepository creates a new GormStoreVariantRepository
func NewGormStoreVariantRepository(db *gorm.DB) *GormStoreVariantRepository {
	return &GormStoreVariantRepository{db: db}
}

// SaveBatch persists linkage rows, updating on external variant id conflict
func (r *GormStoreVariantRepository) SaveBatch(ctx context.Context, rows []*store.StoreVariant) error {
	if len(rows) == 0 {
		return nil
	}

	rowModels := make([]models.StoreVariantModel, len(rows))
	for i, sv := range rows {
		rowModels[i].FromDomain(sv)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"external_product_id", "available", "price", "updated_at",
		}),
	}).Create(&rowModels).Error
}

// FindByStoreAndProduct retrieves linkage rows for one product in a store
func (r *GormStoreVariantRepository) FindByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) ([]*store.StoreVariant, error) {
	var rowModels []models.StoreVariantModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		Find(&rowModels).Error; err != nil {
		return nil, err
	}
	return toDomainStoreVariants(rowModels), nil
}

// FindByProducts retrieves linkage rows for a set of products in a store
func (r *GormStoreVariantRepository) FindByProducts(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) ([]*store.StoreVariant, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var rowModels []models.StoreVariantModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id IN ?", storeID, productIDs).
		Find(&rowModels).Error; err != nil {
		return nil, err
	}
	return toDomainStoreVariants(rowModels), nil
}

func toDomainStoreVariants(rowModels []models.StoreVariantModel) []*store.StoreVariant {
	rows := make([]*store.StoreVariant, len(rowModels))
	for i := range rowModels {
		rows[i] = rowModels[i].ToDomain()
	}
	return rows
}

// Ensure GormStoreVariantRepository implements store.StoreVariantRepository
var _ store.StoreVariantRepository = (*GormStoreVariantRepository)(nil)
