package shopify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Fulfillment service
// ---------------------------------------------------------------------------

// EnsureFulfillmentService returns the platform ids of the store's
// fulfillment service with the given name, registering it when absent.
// Existing services are matched by name so repeated calls are idempotent.
func (c *Client) EnsureFulfillmentService(ctx context.Context, creds store.Credentials, name string) (string, string, error) {
	var existing shopFulfillmentServicesData
	if err := c.execute(ctx, creds, shopFulfillmentServicesQuery, nil, &existing); err != nil {
		return "", "", err
	}
	for _, svc := range existing.Shop.FulfillmentServices {
		if svc.ServiceName == name {
			return svc.ID, locationID(svc), nil
		}
	}

	var data fulfillmentServiceCreateData
	vars := map[string]any{"name": name}
	if err := c.execute(ctx, creds, fulfillmentServiceCreateMutation, vars, &data); err != nil {
		return "", "", err
	}
	if err := platformError("fulfillmentServiceCreate", data.FulfillmentServiceCreate.UserErrors); err != nil {
		return "", "", err
	}

	svc := data.FulfillmentServiceCreate.FulfillmentService
	if svc == nil {
		return "", "", fmt.Errorf("shopify: fulfillment service creation returned no service")
	}

	c.logger.Info("fulfillment service registered",
		zap.String("domain", creds.Domain),
		zap.String("service_id", svc.ID))
	return svc.ID, locationID(*svc), nil
}

func locationID(svc fulfillmentServiceNode) string {
	if svc.Location == nil {
		return ""
	}
	return svc.Location.ID
}

// ---------------------------------------------------------------------------
// Product creation
// ---------------------------------------------------------------------------

// CreateProduct creates the product with its option definitions and returns
// the platform product id. Pushing a product that already carries an
// external id returns ErrUpdateNotSupported; the update path is not
// implemented.
func (c *Client) CreateProduct(ctx context.Context, creds store.Credentials, push sync.ProductPush) (string, error) {
	if push.ExternalProductID != "" {
		return "", sync.ErrUpdateNotSupported
	}

	input := map[string]any{
		"title":           push.Title,
		"descriptionHtml": push.Description,
		"vendor":          push.Vendor,
	}
	if len(push.Options) > 0 {
		names := make([]string, 0, len(push.Options))
		for _, opt := range push.Options {
			names = append(names, opt.Name)
		}
		input["options"] = names
	}

	vars := map[string]any{"input": input}
	if push.ImageURL != "" {
		vars["media"] = []map[string]any{{
			"originalSource":   push.ImageURL,
			"mediaContentType": "IMAGE",
		}}
	}

	var data productCreateData
	if err := c.execute(ctx, creds, productCreateMutation, vars, &data); err != nil {
		return "", err
	}
	if err := platformError("productCreate", data.ProductCreate.UserErrors); err != nil {
		return "", err
	}
	if data.ProductCreate.Product == nil {
		return "", fmt.Errorf("shopify: product creation returned no product")
	}

	externalID := sync.ExternalID(data.ProductCreate.Product.ID)
	c.logger.Info("product created on platform",
		zap.String("domain", creds.Domain),
		zap.String("external_product_id", externalID))
	return externalID, nil
}

// CreateVariants batch-creates variants against an external product id and
// pairs each internal variant with its platform-assigned id. The platform
// returns created variants in request order.
func (c *Client) CreateVariants(ctx context.Context, creds store.Credentials, externalProductID string, variants []sync.VariantPush) ([]sync.CreatedVariant, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	inputs := make([]map[string]any, 0, len(variants))
	for _, v := range variants {
		input := map[string]any{
			"price":   v.Price.String(),
			"options": v.OptionValues,
		}
		if v.SKU != "" {
			input["sku"] = v.SKU
		}
		inputs = append(inputs, input)
	}

	vars := map[string]any{
		"productId": fmt.Sprintf("gid://shopify/Product/%s", externalProductID),
		"variants":  inputs,
	}

	var data productVariantsBulkCreateData
	if err := c.execute(ctx, creds, productVariantsBulkCreateMutation, vars, &data); err != nil {
		return nil, err
	}
	if err := platformError("productVariantsBulkCreate", data.ProductVariantsBulkCreate.UserErrors); err != nil {
		return nil, err
	}

	created := data.ProductVariantsBulkCreate.ProductVariants
	if len(created) != len(variants) {
		return nil, fmt.Errorf("shopify: expected %d created variants, platform returned %d", len(variants), len(created))
	}

	result := make([]sync.CreatedVariant, 0, len(variants))
	for i, v := range variants {
		result = append(result, sync.CreatedVariant{
			VariantID:         v.VariantID,
			ExternalVariantID: sync.ExternalID(created[i].ID),
		})
	}
	return result, nil
}

// platformError folds mutation userErrors into a single PlatformError
func platformError(operation string, errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	fieldErrs := make([]sync.FieldError, 0, len(errs))
	for _, e := range errs {
		field := ""
		if len(e.Field) > 0 {
			field = e.Field[len(e.Field)-1]
		}
		fieldErrs = append(fieldErrs, sync.FieldError{Field: field, Message: e.Message})
	}
	return &sync.PlatformError{Operation: operation, Errors: fieldErrs}
}

// Ensure Client implements the outbound push port
var _ sync.ProductPusher = (*Client)(nil)
