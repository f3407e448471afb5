package shopify

import "encoding/json"

// ---------------------------------------------------------------------------
// GraphQL envelope
// ---------------------------------------------------------------------------

// graphQLRequest is the admin API request envelope
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse is the admin API response envelope
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// graphQLError is one top-level GraphQL error
type graphQLError struct {
	Message string `json:"message"`
}

// userError is one field-level mutation error
type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// ---------------------------------------------------------------------------
// Bulk operation payloads
// ---------------------------------------------------------------------------

// bulkOperationNode is the platform's view of one bulk job
type bulkOperationNode struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ErrorCode string `json:"errorCode"`
	URL       string `json:"url"`
}

// bulkOperationRunData is the data payload of a bulkOperationRunQuery mutation
type bulkOperationRunData struct {
	BulkOperationRunQuery struct {
		BulkOperation *bulkOperationNode `json:"bulkOperation"`
		UserErrors    []userError        `json:"userErrors"`
	} `json:"bulkOperationRunQuery"`
}

// currentBulkOperationData is the data payload of a currentBulkOperation query
type currentBulkOperationData struct {
	CurrentBulkOperation *bulkOperationNode `json:"currentBulkOperation"`
}

// ---------------------------------------------------------------------------
// Push mutation payloads
// ---------------------------------------------------------------------------

// fulfillmentServiceNode is one registered fulfillment service
type fulfillmentServiceNode struct {
	ID          string `json:"id"`
	ServiceName string `json:"serviceName"`
	Location    *struct {
		ID string `json:"id"`
	} `json:"location"`
}

// shopFulfillmentServicesData is the data payload of the shop services query
type shopFulfillmentServicesData struct {
	Shop struct {
		FulfillmentServices []fulfillmentServiceNode `json:"fulfillmentServices"`
	} `json:"shop"`
}

// fulfillmentServiceCreateData is the data payload of fulfillmentServiceCreate
type fulfillmentServiceCreateData struct {
	FulfillmentServiceCreate struct {
		FulfillmentService *fulfillmentServiceNode `json:"fulfillmentService"`
		UserErrors         []userError             `json:"userErrors"`
	} `json:"fulfillmentServiceCreate"`
}

// productCreateData is the data payload of a productCreate mutation
type productCreateData struct {
	ProductCreate struct {
		Product *struct {
			ID string `json:"id"`
		} `json:"product"`
		UserErrors []userError `json:"userErrors"`
	} `json:"productCreate"`
}

// productVariantsBulkCreateData is the data payload of productVariantsBulkCreate
type productVariantsBulkCreateData struct {
	ProductVariantsBulkCreate struct {
		ProductVariants []struct {
			ID  string `json:"id"`
			SKU string `json:"sku"`
		} `json:"productVariants"`
		UserErrors []userError `json:"userErrors"`
	} `json:"productVariantsBulkCreate"`
}
