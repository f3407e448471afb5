// Package order exposes read access to orders imported from connected
// storefronts. Orders are written only by the pull path; this service
// scopes reads to the stores the tenant is a member of.
package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/portal/backend/internal/domain/order"
	"github.com/portal/backend/internal/domain/store"
)

// OrderServiceImpl handles order read operations
type OrderServiceImpl struct {
	orderRepo order.Repository
	storeRepo store.StoreRepository
}

// NewOrderService creates a new OrderServiceImpl
func NewOrderService(orderRepo order.Repository, storeRepo store.StoreRepository) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
		storeRepo: storeRepo,
	}
}

// ListOrders returns all imported orders of a store, newest first
func (s *OrderServiceImpl) ListOrders(ctx context.Context, tenantID, domain string) ([]*order.Order, error) {
	st, err := s.memberStore(ctx, tenantID, domain)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByStore(ctx, st.ID)
}

// CountOrders returns the number of imported orders for a store
func (s *OrderServiceImpl) CountOrders(ctx context.Context, tenantID, domain string) (int64, error) {
	st, err := s.memberStore(ctx, tenantID, domain)
	if err != nil {
		return 0, err
	}
	return s.orderRepo.CountByStore(ctx, st.ID)
}

// GetOrder returns one order with its items. The order's store must be
// one the tenant is a member of; otherwise the order does not exist from
// the caller's point of view.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, tenantID string, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	st, err := s.storeRepo.FindByID(ctx, o.StoreID)
	if err != nil {
		return nil, order.ErrOrderNotFound
	}
	if !st.HasUser(tenantID) {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderServiceImpl) memberStore(ctx context.Context, tenantID, domain string) (*store.Store, error) {
	return s.storeRepo.FindByTenantAndDomain(ctx, tenantID, store.NormalizeDomain(domain))
}
