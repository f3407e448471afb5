// Package order holds orders imported from external storefronts. Orders
// are created only by the pull path and never mutated outside a resync.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/shared"
)

// ErrOrderNotFound means no order matches the given id
var ErrOrderNotFound = errors.New("order: order not found")

// Order is a store-scoped order imported from the external platform.
// ExternalOrderID is the upsert key; Status is the platform's status
// string, stored verbatim. CustomerName and ShippingAddress are flattened
// to display text at write time.
type Order struct {
	shared.BaseEntity
	StoreID         uuid.UUID
	ExternalOrderID string
	Name            string
	Status          string
	TotalPrice      decimal.Decimal
	Currency        string
	CustomerName    string
	ShippingAddress string
	PlacedAt        time.Time
	Items           []OrderItem
}

// OrderItem is one order line. ProductID and VariantID are nil when the
// item references a product outside the internal catalog; partial linkage
// is expected.
type OrderItem struct {
	shared.BaseEntity
	OrderID        uuid.UUID
	ExternalItemID string
	Title          string
	Quantity       int
	UnitPrice      decimal.Decimal
	ProductID      *uuid.UUID
	VariantID      *uuid.UUID
}

// Repository defines read operations on imported orders. Writes happen
// only through the reconciliation engine's batch upsert.
type Repository interface {
	// FindByStore retrieves all orders of a store, newest first
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]*Order, error)

	// FindByID retrieves one order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// CountByStore returns the number of orders imported for a store
	CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}
