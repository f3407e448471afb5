package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/order"
)

// OrderResponse is the public view of an imported order
type OrderResponse struct {
	ID              string              `json:"id"`
	ExternalOrderID string              `json:"external_order_id"`
	Name            string              `json:"name"`
	Status          string              `json:"status"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	Currency        string              `json:"currency"`
	CustomerName    string              `json:"customer_name,omitempty"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	PlacedAt        time.Time           `json:"placed_at"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one line of an imported order. ProductID and
// VariantID are present only when the line maps to the internal catalog.
type OrderItemResponse struct {
	ID             string          `json:"id"`
	ExternalItemID string          `json:"external_item_id"`
	Title          string          `json:"title"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ProductID      string          `json:"product_id,omitempty"`
	VariantID      string          `json:"variant_id,omitempty"`
}

// NewOrderResponse maps an order entity to its response shape
func NewOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		ir := OrderItemResponse{
			ID:             item.ID.String(),
			ExternalItemID: item.ExternalItemID,
			Title:          item.Title,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
		}
		if item.ProductID != nil {
			ir.ProductID = item.ProductID.String()
		}
		if item.VariantID != nil {
			ir.VariantID = item.VariantID.String()
		}
		items = append(items, ir)
	}

	return OrderResponse{
		ID:              o.ID.String(),
		ExternalOrderID: o.ExternalOrderID,
		Name:            o.Name,
		Status:          o.Status,
		TotalPrice:      o.TotalPrice,
		Currency:        o.Currency,
		CustomerName:    o.CustomerName,
		ShippingAddress: o.ShippingAddress,
		PlacedAt:        o.PlacedAt,
		Items:           items,
	}
}

// OrderCountResponse carries the imported order count for a store
type OrderCountResponse struct {
	Count int64 `json:"count"`
}

// NewOrderListResponse maps a list of orders
func NewOrderListResponse(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
