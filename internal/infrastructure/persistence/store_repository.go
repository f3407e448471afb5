package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
)

// GormStoreRepository implements store.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Save persists a store and its memberships
func (r *GormStoreRepository) Save(ctx context.Context, s *store.Store) error {
	var model models.StoreModel
	model.FromDomain(s)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "access_token", "fulfillment_service_id", "location_id", "updated_at",
			}),
		}).Omit("Users").Create(&model).Error; err != nil {
			return err
		}

		if len(model.Users) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "tenant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).Create(&model.Users).Error
	})
}

// FindByID retrieves a store by its internal id
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).Preload("Users").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrStoreNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDomain retrieves a store by its normalized domain
func (r *GormStoreRepository) FindByDomain(ctx context.Context, domain string) (*store.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).
		Preload("Users").
		Where("domain = ?", store.NormalizeDomain(domain)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrStoreNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenantAndDomain retrieves a store the tenant is a member of
func (r *GormStoreRepository) FindByTenantAndDomain(ctx context.Context, tenantID, domain string) (*store.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).
		Preload("Users").
		Joins("JOIN store_users ON store_users.store_id = stores.id").
		Where("store_users.tenant_id = ? AND stores.domain = ?", tenantID, store.NormalizeDomain(domain)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrStoreNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant retrieves all stores the tenant is a member of
func (r *GormStoreRepository) FindByTenant(ctx context.Context, tenantID string) ([]*store.Store, error) {
	var storeModels []models.StoreModel
	if err := r.db.WithContext(ctx).
		Preload("Users").
		Joins("JOIN store_users ON store_users.store_id = stores.id").
		Where("store_users.tenant_id = ?", tenantID).
		Order("stores.created_at ASC").
		Find(&storeModels).Error; err != nil {
		return nil, err
	}

	stores := make([]*store.Store, len(storeModels))
	for i := range storeModels {
		stores[i] = storeModels[i].ToDomain()
	}
	return stores, nil
}

// FindConnected retrieves all stores holding an access token. Used by the
// background sync scheduler; not part of the domain repository port.
func (r *GormStoreRepository) FindConnected(ctx context.Context) ([]*store.Store, error) {
	var storeModels []models.StoreModel
	if err := r.db.WithContext(ctx).
		Preload("Users").
		Where("access_token <> ''").
		Order("created_at ASC").
		Find(&storeModels).Error; err != nil {
		return nil, err
	}

	stores := make([]*store.Store, len(storeModels))
	for i := range storeModels {
		stores[i] = storeModels[i].ToDomain()
	}
	return stores, nil
}

// Ensure GormStoreRepository implements store.StoreRepository
var _ store.StoreRepository = (*GormStoreRepository)(nil)
