package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStreamServer serves a fixed JSONL body as a bulk-result download
func newStreamServer(t *testing.T, jsonl string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/jsonl")
		_, _ = w.Write([]byte(jsonl))
	}))
	t.Cleanup(server.Close)
	return server
}

// ---------------------------------------------------------------------------
// Order Stream Tests
// ---------------------------------------------------------------------------

func TestClient_ParseOrders(t *testing.T) {
	// The line item for order 1001 appears before its parent; the stream
	// parser must still attach it.
	jsonl := `{"id":"gid://shopify/LineItem/5001","__parentId":"gid://shopify/Order/1001","title":"Shirt","quantity":2,"originalUnitPriceSet":{"shopMoney":{"amount":"19.99","currencyCode":"USD"}},"product":{"id":"gid://shopify/Product/7"},"variant":{"id":"gid://shopify/ProductVariant/70"}}
{"id":"gid://shopify/Order/1001","name":"#1001","displayFinancialStatus":"PAID","createdAt":"2024-01-15T10:30:00Z","customer":{"firstName":"Jane","lastName":"Doe","email":"jane@example.com"},"totalPriceSet":{"shopMoney":{"amount":"39.98","currencyCode":"USD"}},"shippingAddress":{"address1":"1 Main St","city":"Springfield","country":"United States"}}
{"id":"gid://shopify/LineItem/5002","__parentId":"gid://shopify/Order/1001","title":"Sticker","quantity":1,"originalUnitPriceSet":{"shopMoney":{"amount":"0.00","currencyCode":"USD"}}}
`
	server := newStreamServer(t, jsonl)
	client, _ := newTestClient(t, http.NotFoundHandler())

	batch, err := client.ParseOrders(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, batch.Orders, 1)
	assert.Zero(t, batch.SkippedItems)

	order := batch.Orders[0]
	assert.Equal(t, "1001", order.ExternalID)
	assert.Equal(t, "#1001", order.Name)
	assert.Equal(t, "PAID", order.Status)
	assert.Equal(t, "39.98", order.TotalPrice.StringFixed(2))
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "Jane Doe", order.Customer.FullName())
	assert.Equal(t, "1 Main St, Springfield, United States", order.ShippingAddress.Flatten())

	require.Len(t, order.Items, 2)
	first := order.Items[0]
	assert.Equal(t, "5001", first.ExternalID)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "19.99", first.UnitPrice.StringFixed(2))
	assert.Equal(t, "7", first.ExternalProductID)
	assert.Equal(t, "70", first.ExternalVariantID)

	second := order.Items[1]
	assert.Equal(t, "5002", second.ExternalID)
	assert.Empty(t, second.ExternalProductID)
	assert.Empty(t, second.ExternalVariantID)
}

func TestClient_ParseOrders_OrphanItemSkipped(t *testing.T) {
	jsonl := `{"id":"gid://shopify/Order/1001","name":"#1001","displayFinancialStatus":"PAID"}
{"id":"gid://shopify/LineItem/5009","__parentId":"gid://shopify/Order/9999","title":"Ghost","quantity":1}
`
	server := newStreamServer(t, jsonl)
	client, _ := newTestClient(t, http.NotFoundHandler())

	batch, err := client.ParseOrders(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, batch.Orders, 1)
	assert.Empty(t, batch.Orders[0].Items)
	assert.Equal(t, 1, batch.SkippedItems)
}

func TestClient_ParseOrders_MalformedLineSkipped(t *testing.T) {
	jsonl := `not json at all
{"id":"gid://shopify/Order/1001","name":"#1001","displayFinancialStatus":"PENDING"}
`
	server := newStreamServer(t, jsonl)
	client, _ := newTestClient(t, http.NotFoundHandler())

	batch, err := client.ParseOrders(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, batch.Orders, 1)
}

func TestClient_ParseOrders_DownloadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client, _ := newTestClient(t, http.NotFoundHandler())
	_, err := client.ParseOrders(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

// ---------------------------------------------------------------------------
// Product Stream Tests
// ---------------------------------------------------------------------------

func TestClient_ParseProducts(t *testing.T) {
	// The first variant precedes its parent product; the media image uses a
	// MediaImage global id and attaches through __parentId.
	jsonl := `{"id":"gid://shopify/ProductVariant/70","__parentId":"gid://shopify/Product/7","title":"Small","sku":"SH-S","price":"19.99","inventoryQuantity":3}
{"id":"gid://shopify/Product/7","title":"Shirt","description":"A shirt","vendor":"Portal"}
{"id":"gid://shopify/ProductVariant/71","__parentId":"gid://shopify/Product/7","title":"Large","sku":"SH-L","price":"21.99","inventoryQuantity":5}
{"id":"gid://shopify/MediaImage/900","__parentId":"gid://shopify/Product/7","image":{"url":"https://cdn.example.com/shirt.png"}}
`
	server := newStreamServer(t, jsonl)
	client, _ := newTestClient(t, http.NotFoundHandler())

	batch, err := client.ParseProducts(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, batch.Products, 1)
	assert.Zero(t, batch.SkippedVariants)

	product := batch.Products[0]
	assert.Equal(t, "7", product.ExternalID)
	assert.Equal(t, "Shirt", product.Title)
	assert.Equal(t, "A shirt", product.Description)
	assert.Equal(t, "Portal", product.Vendor)
	assert.Equal(t, "https://cdn.example.com/shirt.png", product.ImageURL)

	require.Len(t, product.Variants, 2)
	assert.Equal(t, "71", product.Variants[0].ExternalID) // in-order variant attaches first
	assert.Equal(t, "70", product.Variants[1].ExternalID) // buffered variant re-attaches at finalize
	assert.Equal(t, "19.99", product.Variants[1].Price.StringFixed(2))
	assert.Equal(t, 3, product.Variants[1].InventoryQuantity)
}

func TestClient_ParseProducts_OrphanVariantSkipped(t *testing.T) {
	jsonl := `{"id":"gid://shopify/Product/7","title":"Shirt","vendor":"Portal"}
{"id":"gid://shopify/ProductVariant/99","__parentId":"gid://shopify/Product/404","title":"Ghost","price":"1.00"}
`
	server := newStreamServer(t, jsonl)
	client, _ := newTestClient(t, http.NotFoundHandler())

	batch, err := client.ParseProducts(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, batch.Products, 1)
	assert.Empty(t, batch.Products[0].Variants)
	assert.Equal(t, 1, batch.SkippedVariants)
}

func TestClient_ParseProducts_VariantNotMistakenForProduct(t *testing.T) {
	// A stream of only variants must never produce a product: the type
	// segment is matched exactly, not by substring.
	jsonl := `{"id":"gid://shopify/ProductVariant/70","__parentId":"gid://shopify/Product/7","title":"Small","price":"19.99"}
`
	server := newStreamServer(t, jsonl)
	client, _ := newTestClient(t, http.NotFoundHandler())

	batch, err := client.ParseProducts(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, batch.Products)
	assert.Equal(t, 1, batch.SkippedVariants)
}
