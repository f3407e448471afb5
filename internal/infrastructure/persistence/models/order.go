package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/order"
)

// OrderModel is the persistence model for an imported order.
type OrderModel struct {
	BaseModel
	StoreID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	ExternalOrderID string           `gorm:"type:varchar(64);not null;uniqueIndex:idx_orders_external_id"`
	Name            string           `gorm:"type:varchar(64)"`
	Status          string           `gorm:"type:varchar(64)"`
	TotalPrice      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Currency        string           `gorm:"type:varchar(8)"`
	CustomerName    string           `gorm:"type:varchar(200)"`
	ShippingAddress string           `gorm:"type:text"`
	PlacedAt        time.Time        `gorm:"index"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity:      m.BaseModel.ToDomain(),
		StoreID:         m.StoreID,
		ExternalOrderID: m.ExternalOrderID,
		Name:            m.Name,
		Status:          m.Status,
		TotalPrice:      m.TotalPrice,
		Currency:        m.Currency,
		CustomerName:    m.CustomerName,
		ShippingAddress: m.ShippingAddress,
		PlacedAt:        m.PlacedAt,
	}
	o.Items = make([]order.OrderItem, 0, len(m.Items))
	for _, im := range m.Items {
		o.Items = append(o.Items, order.OrderItem{
			BaseEntity:     im.BaseModel.ToDomain(),
			OrderID:        im.OrderID,
			ExternalItemID: im.ExternalItemID,
			Title:          im.Title,
			Quantity:       im.Quantity,
			UnitPrice:      im.UnitPrice,
			ProductID:      im.ProductID,
			VariantID:      im.VariantID,
		})
	}
	return o
}

// OrderItemModel is the persistence model for one imported order line.
type OrderItemModel struct {
	BaseModel
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExternalItemID string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_order_items_external_id"`
	Title          string          `gorm:"type:varchar(255)"`
	Quantity       int             `gorm:"not null;default:0"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProductID      *uuid.UUID      `gorm:"type:uuid;index"`
	VariantID      *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}
