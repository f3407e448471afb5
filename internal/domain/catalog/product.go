package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/shared"
)

// Product represents a product in the internal catalog.
// It is the aggregate root for product-related operations and exists
// independently of any storefront connection; the external product id is
// only populated for products that originated from a storefront pull.
type Product struct {
	shared.TenantEntity
	Name              string
	Description       string
	Vendor            string
	ImageURL          string
	Price             decimal.Decimal
	ExternalProductID string
	Variants          []Variant
}

// NewProduct creates a new catalog product
func NewProduct(tenantID, name, description string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	return &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Description:  description,
		Price:        decimal.Zero,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()

	return nil
}

// SetImage sets the product image URL
func (p *Product) SetImage(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
}

// SetPrice sets the canonical product price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// IsLinked returns true if the product carries an external platform id
func (p *Product) IsLinked() bool {
	return p.ExternalProductID != ""
}

// OptionSets groups the option values of all variants by option name.
// Each set carries the distinct values and which variant each value
// belongs to, which is the shape the outbound push engine needs.
func (p *Product) OptionSets() []OptionSet {
	index := make(map[string]int)
	sets := make([]OptionSet, 0)

	for _, variant := range p.Variants {
		for _, opt := range variant.Options {
			i, ok := index[opt.Name]
			if !ok {
				i = len(sets)
				index[opt.Name] = i
				sets = append(sets, OptionSet{Name: opt.Name})
			}
			sets[i].Values = append(sets[i].Values, OptionValue{
				VariantID: variant.ID,
				Value:     opt.Value,
			})
		}
	}

	return sets
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
