package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/shared"
)

// Variant represents a purchasable variation of a product, such as a
// specific size and color combination. Variants that originated from a
// storefront pull carry the platform's variant id in ExternalVariantID.
type Variant struct {
	shared.BaseEntity
	ProductID         uuid.UUID
	Title             string
	SKU               string
	Stock             int
	Price             decimal.Decimal
	ExternalVariantID string
	Options           []VariantOption
}

// VariantOption is a single name/value pair on a variant, e.g. Size=M.
type VariantOption struct {
	shared.BaseEntity
	VariantID uuid.UUID
	Name      string
	Value     string
}

// OptionSet is the grouping of one option name across all variants of a
// product, e.g. Size with values S, M, L and the variant each belongs to.
type OptionSet struct {
	Name   string
	Values []OptionValue
}

// OptionValue is one value within an OptionSet together with the variant
// that carries it.
type OptionValue struct {
	VariantID uuid.UUID
	Value     string
}

// NewVariant creates a new variant for the given product
func NewVariant(productID uuid.UUID, title string, price decimal.Decimal) (*Variant, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Variant title is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}

	return &Variant{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Title:      title,
		Price:      price,
	}, nil
}

// AddOption appends an option pair to the variant
func (v *Variant) AddOption(name, value string) error {
	if name == "" || value == "" {
		return shared.NewDomainError("INVALID_OPTION", "Option name and value are required")
	}

	v.Options = append(v.Options, VariantOption{
		BaseEntity: shared.NewBaseEntity(),
		VariantID:  v.ID,
		Name:       name,
		Value:      value,
	})
	v.UpdatedAt = time.Now()

	return nil
}

// SetPrice updates the variant price
func (v *Variant) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}
	v.Price = price
	v.UpdatedAt = time.Now()
	return nil
}

// SetStock sets the on-hand stock level
func (v *Variant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	v.Stock = stock
	v.UpdatedAt = time.Now()
	return nil
}
