package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/shared"
)

// StoreVariant ties an internal variant to its external counterpart within
// one store. A row exists once the variant has been pushed; the external
// ids are stable foreign keys used to decide create vs. update on resync.
type StoreVariant struct {
	shared.BaseEntity
	StoreID           uuid.UUID
	ProductID         uuid.UUID
	VariantID         uuid.UUID
	ExternalProductID string
	ExternalVariantID string
	Available         bool
	Price             decimal.Decimal
}

// NewStoreVariant creates a linkage row for a pushed variant
func NewStoreVariant(storeID, productID, variantID uuid.UUID, externalProductID, externalVariantID string) *StoreVariant {
	return &StoreVariant{
		BaseEntity:        shared.NewBaseEntity(),
		StoreID:           storeID,
		ProductID:         productID,
		VariantID:         variantID,
		ExternalProductID: externalProductID,
		ExternalVariantID: externalVariantID,
		Available:         true,
	}
}

// Snapshot records the price and availability seen at push time
func (sv *StoreVariant) Snapshot(price decimal.Decimal, available bool) {
	sv.Price = price
	sv.Available = available
	sv.UpdatedAt = time.Now()
}
