package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/store"
)

// ---------------------------------------------------------------------------
// Platform Errors
// ---------------------------------------------------------------------------

// FieldError is one field-level error reported by the platform.
type FieldError struct {
	Field   string
	Message string
}

// PlatformError aggregates the field-level errors of one rejected platform
// request into a single error. Partial success is never reported.
type PlatformError struct {
	Operation string
	Errors    []FieldError
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
			continue
		}
		msgs = append(msgs, fe.Message)
	}
	return fmt.Sprintf("sync: %s rejected by platform: %s", e.Operation, strings.Join(msgs, "; "))
}

// ---------------------------------------------------------------------------
// Bulk export ports
// ---------------------------------------------------------------------------

// BulkClient drives the platform's asynchronous bulk-export mechanism.
// Submit issues the export request; Poll blocks until the current job
// reaches a terminal state or the bounded retry policy gives up, then
// returns the transient download URL.
type BulkClient interface {
	// SubmitOrdersExport starts a bulk export of orders with customers,
	// shipping addresses and line items
	SubmitOrdersExport(ctx context.Context, creds store.Credentials) (jobID string, err error)

	// SubmitProductsExport starts a bulk export of products with media and
	// variants, filtered to the configured vendor tag
	SubmitProductsExport(ctx context.Context, creds store.Credentials) (jobID string, err error)

	// Poll waits for the store's current bulk job to finish and returns its
	// download URL. Returns JobFailedError on FAILED, ErrPollTimeout when
	// the bounded polling window is exhausted.
	Poll(ctx context.Context, creds store.Credentials) (downloadURL string, err error)
}

// StreamParser consumes a bulk-export download URL as a line stream and
// reconstructs typed batches. The resource is finite and not restartable;
// reparsing requires a fresh download URL.
type StreamParser interface {
	// ParseOrders streams the resource and finalizes it into an order batch
	ParseOrders(ctx context.Context, downloadURL string) (*OrderBatch, error)

	// ParseProducts streams the resource and finalizes it into a product batch
	ParseProducts(ctx context.Context, downloadURL string) (*ProductBatch, error)
}

// ---------------------------------------------------------------------------
// Outbound push port
// ---------------------------------------------------------------------------

// ProductPush is the external "create product" request shape.
type ProductPush struct {
	// ExternalProductID is set when the product already exists on the
	// platform. The update path is not implemented; callers receive
	// ErrUpdateNotSupported.
	ExternalProductID string
	Title             string
	Description       string
	Vendor            string
	ImageURL          string
	// Options are the flattened option definitions, in declaration order
	Options []PushOption
}

// PushOption is one option definition with its distinct values in order.
type PushOption struct {
	Name   string
	Values []string
}

// VariantPush is one variant in a batch-create request.
type VariantPush struct {
	// VariantID is the internal variant id, echoed back in CreatedVariant
	VariantID uuid.UUID
	SKU       string
	Price     decimal.Decimal
	// OptionValues are the variant's values, aligned with ProductPush.Options
	OptionValues []string
}

// CreatedVariant pairs an internal variant with its platform-assigned id.
type CreatedVariant struct {
	VariantID         uuid.UUID
	ExternalVariantID string
}

// ProductPusher creates products and variants on the external platform.
type ProductPusher interface {
	// EnsureFulfillmentService registers a fulfillment service for the
	// store if none exists and returns its platform ids. Idempotent.
	EnsureFulfillmentService(ctx context.Context, creds store.Credentials, name string) (serviceID, locationID string, err error)

	// CreateProduct creates the product and returns its external id.
	// Platform field errors surface as a single PlatformError.
	CreateProduct(ctx context.Context, creds store.Credentials, push ProductPush) (externalProductID string, err error)

	// CreateVariants batch-creates variants against an external product id
	CreateVariants(ctx context.Context, creds store.Credentials, externalProductID string, variants []VariantPush) ([]CreatedVariant, error)
}

// ---------------------------------------------------------------------------
// Ingestor port
// ---------------------------------------------------------------------------

// IngestSummary reports what one transactional upsert batch did, including
// rows skipped as orphans so partial attachment is visible to callers
// instead of being a log-only side channel.
type IngestSummary struct {
	// ProductsUpserted is the number of product rows written
	ProductsUpserted int
	// VariantsUpserted is the number of variant rows written
	VariantsUpserted int
	// OrdersUpserted is the number of order rows written
	OrdersUpserted int
	// ItemsUpserted is the number of order item rows written
	ItemsUpserted int
	// SkippedOrphans counts rows skipped for unresolved parent references
	SkippedOrphans int
}

// Ingestor writes finalized batches to the relational store. Each call is
// one transaction; any row failure other than an orphan skip rolls back
// the whole batch.
type Ingestor interface {
	// UpsertProducts reconciles a product batch into the catalog for the
	// given tenant and store domain
	UpsertProducts(ctx context.Context, tenantID, domain string, batch *ProductBatch) (*IngestSummary, error)

	// UpsertOrders reconciles an order batch into the store's orders
	UpsertOrders(ctx context.Context, tenantID, domain string, batch *OrderBatch) (*IngestSummary, error)
}
