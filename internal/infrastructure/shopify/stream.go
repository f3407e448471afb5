package shopify

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/sync"
)

const (
	// maxLineSize bounds a single JSONL record
	maxLineSize = 1024 * 1024 // 1MB
)

// ---------------------------------------------------------------------------
// Wire records
// ---------------------------------------------------------------------------

// recordProbe reads only the discriminating fields of a JSONL record. The
// full decode is dispatched on the global id's type segment.
type recordProbe struct {
	ID       string `json:"id"`
	ParentID string `json:"__parentId"`
}

// moneySet is the platform's price envelope
type moneySet struct {
	ShopMoney struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"shopMoney"`
}

type orderRecord struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	DisplayFinancialStatus string `json:"displayFinancialStatus"`
	CreatedAt              time.Time `json:"createdAt"`
	Customer               *struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	} `json:"customer"`
	TotalPriceSet   *moneySet `json:"totalPriceSet"`
	ShippingAddress *struct {
		Address1 string `json:"address1"`
		Address2 string `json:"address2"`
		City     string `json:"city"`
		Province string `json:"province"`
		Zip      string `json:"zip"`
		Country  string `json:"country"`
	} `json:"shippingAddress"`
}

type lineItemRecord struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Quantity             int       `json:"quantity"`
	OriginalUnitPriceSet *moneySet `json:"originalUnitPriceSet"`
	Product              *struct {
		ID string `json:"id"`
	} `json:"product"`
	Variant *struct {
		ID string `json:"id"`
	} `json:"variant"`
}

type productRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Vendor      string `json:"vendor"`
}

type variantRecord struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	SKU               string `json:"sku"`
	Price             string `json:"price"`
	InventoryQuantity int    `json:"inventoryQuantity"`
}

type mediaImageRecord struct {
	Image *struct {
		URL string `json:"url"`
	} `json:"image"`
}

// ---------------------------------------------------------------------------
// Stream parsing
// ---------------------------------------------------------------------------

// ParseOrders streams a bulk-export download URL and reconstructs the order
// batch. The resource is a flat JSONL stream: each line carries a global id
// whose type segment decides the decode, and child lines reference their
// parent through __parentId. Lines that fail to decode are skipped with a
// warning rather than aborting the stream.
func (c *Client) ParseOrders(ctx context.Context, downloadURL string) (*sync.OrderBatch, error) {
	body, err := c.download(ctx, downloadURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	acc := sync.NewOrderAccumulator()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var probe recordProbe
		if err := json.Unmarshal(line, &probe); err != nil {
			c.logger.Warn("skipping malformed export record", zap.Error(err))
			continue
		}

		kind, externalID := sync.ParseGID(probe.ID)
		switch kind {
		case sync.RecordKindOrder:
			var rec orderRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				c.logger.Warn("skipping malformed order record", zap.Error(err))
				continue
			}
			acc.AddOrder(c.toPulledOrder(rec, externalID))

		case sync.RecordKindLineItem:
			var rec lineItemRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				c.logger.Warn("skipping malformed line item record", zap.Error(err))
				continue
			}
			acc.AddItem(probe.ParentID, c.toPulledOrderItem(rec, externalID))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("shopify: order stream read failed: %w", err)
	}

	return acc.Finalize(), nil
}

// ParseProducts streams a bulk-export download URL and reconstructs the
// product batch, attaching variants and the first media image per product.
func (c *Client) ParseProducts(ctx context.Context, downloadURL string) (*sync.ProductBatch, error) {
	body, err := c.download(ctx, downloadURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	acc := sync.NewProductAccumulator()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var probe recordProbe
		if err := json.Unmarshal(line, &probe); err != nil {
			c.logger.Warn("skipping malformed export record", zap.Error(err))
			continue
		}

		kind, externalID := sync.ParseGID(probe.ID)
		switch kind {
		case sync.RecordKindProduct:
			var rec productRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				c.logger.Warn("skipping malformed product record", zap.Error(err))
				continue
			}
			acc.AddProduct(sync.PulledProduct{
				GID:         rec.ID,
				ExternalID:  externalID,
				Title:       rec.Title,
				Description: rec.Description,
				Vendor:      rec.Vendor,
			})

		case sync.RecordKindProductVariant:
			var rec variantRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				c.logger.Warn("skipping malformed variant record", zap.Error(err))
				continue
			}
			acc.AddVariant(probe.ParentID, sync.PulledVariant{
				ExternalID:        externalID,
				Title:             rec.Title,
				SKU:               rec.SKU,
				Price:             parseAmount(rec.Price),
				InventoryQuantity: rec.InventoryQuantity,
			})

		case sync.RecordKindMediaImage:
			var rec mediaImageRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				c.logger.Warn("skipping malformed media record", zap.Error(err))
				continue
			}
			if rec.Image != nil {
				acc.AddImage(probe.ParentID, rec.Image.URL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("shopify: product stream read failed: %w", err)
	}

	return acc.Finalize(), nil
}

// ---------------------------------------------------------------------------
// Record conversion
// ---------------------------------------------------------------------------

func (c *Client) toPulledOrder(rec orderRecord, externalID string) sync.PulledOrder {
	order := sync.PulledOrder{
		GID:        rec.ID,
		ExternalID: externalID,
		Name:       rec.Name,
		Status:     rec.DisplayFinancialStatus,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.TotalPriceSet != nil {
		order.TotalPrice = parseAmount(rec.TotalPriceSet.ShopMoney.Amount)
		order.Currency = rec.TotalPriceSet.ShopMoney.CurrencyCode
	}
	if rec.Customer != nil {
		order.Customer = sync.Customer{
			FirstName: rec.Customer.FirstName,
			LastName:  rec.Customer.LastName,
			Email:     rec.Customer.Email,
		}
	}
	if rec.ShippingAddress != nil {
		order.ShippingAddress = sync.Address{
			Address1: rec.ShippingAddress.Address1,
			Address2: rec.ShippingAddress.Address2,
			City:     rec.ShippingAddress.City,
			Province: rec.ShippingAddress.Province,
			Zip:      rec.ShippingAddress.Zip,
			Country:  rec.ShippingAddress.Country,
		}
	}
	return order
}

func (c *Client) toPulledOrderItem(rec lineItemRecord, externalID string) sync.PulledOrderItem {
	item := sync.PulledOrderItem{
		ExternalID: externalID,
		Title:      rec.Title,
		Quantity:   rec.Quantity,
	}
	if rec.OriginalUnitPriceSet != nil {
		item.UnitPrice = parseAmount(rec.OriginalUnitPriceSet.ShopMoney.Amount)
	}
	if rec.Product != nil {
		item.ExternalProductID = sync.ExternalID(rec.Product.ID)
	}
	if rec.Variant != nil {
		item.ExternalVariantID = sync.ExternalID(rec.Variant.ID)
	}
	return item
}

// parseAmount converts a platform money string to a decimal. Absent or
// malformed amounts become zero rather than failing the record.
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Ensure Client implements the stream parsing port
var _ sync.StreamParser = (*Client)(nil)
