package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
// ExternalProductID is a pointer so unlinked catalog products coexist with
// the unique index on the column.
type ProductModel struct {
	TenantModel
	Name              string          `gorm:"type:varchar(200);not null"`
	Description       string          `gorm:"type:text"`
	Vendor            string          `gorm:"type:varchar(100)"`
	ImageURL          string          `gorm:"type:text"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExternalProductID *string         `gorm:"type:varchar(64);uniqueIndex:idx_products_external_id"`
	Variants          []VariantModel  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		TenantEntity: m.ToDomainTenantEntity(),
		Name:         m.Name,
		Description:  m.Description,
		Vendor:       m.Vendor,
		ImageURL:     m.ImageURL,
		Price:        m.Price,
	}
	if m.ExternalProductID != nil {
		p.ExternalProductID = *m.ExternalProductID
	}
	p.Variants = make([]catalog.Variant, 0, len(m.Variants))
	for i := range m.Variants {
		p.Variants = append(p.Variants, *m.Variants[i].ToDomain())
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantEntity(p.TenantEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.Vendor = p.Vendor
	m.ImageURL = p.ImageURL
	m.Price = p.Price
	m.ExternalProductID = nil
	if p.ExternalProductID != "" {
		id := p.ExternalProductID
		m.ExternalProductID = &id
	}
	m.Variants = make([]VariantModel, 0, len(p.Variants))
	for i := range p.Variants {
		var vm VariantModel
		vm.FromDomain(&p.Variants[i])
		m.Variants = append(m.Variants, vm)
	}
}

// VariantModel is the persistence model for the Variant domain entity.
type VariantModel struct {
	BaseModel
	ProductID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	Title             string               `gorm:"type:varchar(200);not null"`
	SKU               string               `gorm:"type:varchar(100);index"`
	Stock             int                  `gorm:"not null;default:0"`
	Price             decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ExternalVariantID *string              `gorm:"type:varchar(64);uniqueIndex:idx_variants_external_id"`
	Options           []VariantOptionModel `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (VariantModel) TableName() string {
	return "variants"
}

// ToDomain converts the persistence model to a domain Variant entity.
func (m *VariantModel) ToDomain() *catalog.Variant {
	v := &catalog.Variant{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		Title:      m.Title,
		SKU:        m.SKU,
		Stock:      m.Stock,
		Price:      m.Price,
	}
	if m.ExternalVariantID != nil {
		v.ExternalVariantID = *m.ExternalVariantID
	}
	v.Options = make([]catalog.VariantOption, 0, len(m.Options))
	for _, om := range m.Options {
		v.Options = append(v.Options, catalog.VariantOption{
			BaseEntity: om.BaseModel.ToDomain(),
			VariantID:  om.VariantID,
			Name:       om.Name,
			Value:      om.Value,
		})
	}
	return v
}

// FromDomain populates the persistence model from a domain Variant entity.
func (m *VariantModel) FromDomain(v *catalog.Variant) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.ProductID = v.ProductID
	m.Title = v.Title
	m.SKU = v.SKU
	m.Stock = v.Stock
	m.Price = v.Price
	m.ExternalVariantID = nil
	if v.ExternalVariantID != "" {
		id := v.ExternalVariantID
		m.ExternalVariantID = &id
	}
	m.Options = make([]VariantOptionModel, 0, len(v.Options))
	for _, opt := range v.Options {
		var om VariantOptionModel
		om.FromDomainBaseEntity(opt.BaseEntity)
		om.VariantID = opt.VariantID
		om.Name = opt.Name
		om.Value = opt.Value
		m.Options = append(m.Options, om)
	}
}

// VariantOptionModel is the persistence model for one option pair.
type VariantOptionModel struct {
	BaseModel
	VariantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Value     string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (VariantOptionModel) TableName() string {
	return "variant_options"
}
