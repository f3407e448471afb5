package sync

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Pulled order entities
// ---------------------------------------------------------------------------

// Address is a shipping address as delivered by the platform.
type Address struct {
	Address1 string
	Address2 string
	City     string
	Province string
	Zip      string
	Country  string
}

// Flatten joins the non-empty address parts into a single display line.
// The flattening is lossy but sufficient for order display and matches how
// orders are stored.
func (a Address) Flatten() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Address1, a.Address2, a.City, a.Province, a.Zip, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Customer is the buyer as delivered by the platform.
type Customer struct {
	FirstName string
	LastName  string
	Email     string
}

// FullName joins first and last name, tolerating either being empty.
func (c Customer) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// PulledOrder is one order reconstructed from a bulk-export stream.
type PulledOrder struct {
	// GID is the platform global id, used for child attachment
	GID string
	// ExternalID is the trailing numeric id, the upsert key
	ExternalID string
	// Name is the platform order name, e.g. "#1001"
	Name string
	// Status is the platform's financial status, stored verbatim
	Status string
	// TotalPrice is the shop-money order total
	TotalPrice decimal.Decimal
	// Currency is the shop-money currency code
	Currency string
	// Customer is the buyer
	Customer Customer
	// ShippingAddress is the delivery address
	ShippingAddress Address
	// CreatedAt is when the order was placed on the platform
	CreatedAt time.Time
	// Items are the attached line items
	Items []PulledOrderItem
}

// PulledOrderItem is one order line reconstructed from the stream.
type PulledOrderItem struct {
	// ExternalID is the trailing numeric line-item id, the upsert key
	ExternalID string
	// Title is the product title at order time
	Title string
	// Quantity is the ordered quantity
	Quantity int
	// UnitPrice is the original unit price in shop money
	UnitPrice decimal.Decimal
	// ExternalProductID links to the platform product, may be empty
	ExternalProductID string
	// ExternalVariantID links to the platform variant, may be empty
	ExternalVariantID string
}

// ---------------------------------------------------------------------------
// OrderAccumulator
// ---------------------------------------------------------------------------

// OrderAccumulator reconstructs orders from a flat, parent-referencing
// record stream. It is owned by a single parse call and is not safe for
// concurrent use. Child records observed before their parent are buffered
// and re-attached at finalization, so record ordering in the stream does
// not cause data loss; children whose parent never appears are counted
// and dropped.
type OrderAccumulator struct {
	orders  map[string]*PulledOrder
	ordered []string
	pending map[string][]PulledOrderItem
}

// NewOrderAccumulator creates an empty accumulator
func NewOrderAccumulator() *OrderAccumulator {
	return &OrderAccumulator{
		orders:  make(map[string]*PulledOrder),
		pending: make(map[string][]PulledOrderItem),
	}
}

// AddOrder records a top-level order
func (a *OrderAccumulator) AddOrder(order PulledOrder) {
	if _, seen := a.orders[order.GID]; !seen {
		a.ordered = append(a.ordered, order.GID)
	}
	a.orders[order.GID] = &order
}

// AddItem attaches a line item to its parent order, buffering it when the
// parent has not been observed yet
func (a *OrderAccumulator) AddItem(parentGID string, item PulledOrderItem) {
	if parent, ok := a.orders[parentGID]; ok {
		parent.Items = append(parent.Items, item)
		return
	}
	a.pending[parentGID] = append(a.pending[parentGID], item)
}

// Finalize re-attaches buffered children and returns the completed batch.
// The accumulator must not be used after Finalize.
func (a *OrderAccumulator) Finalize() *OrderBatch {
	skipped := 0
	for parentGID, items := range a.pending {
		parent, ok := a.orders[parentGID]
		if !ok {
			skipped += len(items)
			continue
		}
		parent.Items = append(parent.Items, items...)
	}

	batch := &OrderBatch{
		Orders:       make([]*PulledOrder, 0, len(a.ordered)),
		SkippedItems: skipped,
	}
	for _, gid := range a.ordered {
		batch.Orders = append(batch.Orders, a.orders[gid])
	}
	return batch
}

// OrderBatch is the finalized output of one order-stream parse, handed to
// the reconciliation engine in a single call.
type OrderBatch struct {
	// Orders preserves the order in which parents appeared in the stream
	Orders []*PulledOrder
	// SkippedItems counts line items dropped because their parent order
	// never appeared in the stream
	SkippedItems int
}

// IsEmpty returns true when the batch contains no orders
func (b *OrderBatch) IsEmpty() bool {
	return len(b.Orders) == 0
}
