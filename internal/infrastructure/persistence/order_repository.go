package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portal/backend/internal/domain/order"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM. It only
// reads; imported orders are written by the ingestor's batch upsert.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByStore retrieves all orders of a store, newest first
func (r *GormOrderRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*order.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ?", storeID).
		Order("placed_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// FindByID retrieves one order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByStore returns the number of orders imported for a store
func (r *GormOrderRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("store_id = ?", storeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
