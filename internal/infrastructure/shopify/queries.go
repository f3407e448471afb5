package shopify

// GraphQL documents for the admin API. Bulk export queries are embedded in
// the bulkOperationRunQuery mutation between triple quotes, as the platform
// requires.

// ordersBulkQuery exports all orders with customer, shipping address and
// line items. Line items carry the owning product and variant global ids so
// pulled orders can be linked back to the catalog.
const ordersBulkQuery = `
mutation {
  bulkOperationRunQuery(
    query: """
    {
      orders {
        edges {
          node {
            id
            name
            displayFinancialStatus
            createdAt
            customer {
              firstName
              lastName
              email
            }
            totalPriceSet {
              shopMoney {
                amount
                currencyCode
              }
            }
            shippingAddress {
              address1
              address2
              city
              province
              zip
              country
            }
            lineItems {
              edges {
                node {
                  id
                  title
                  quantity
                  originalUnitPriceSet {
                    shopMoney {
                      amount
                      currencyCode
                    }
                  }
                  product {
                    id
                  }
                  variant {
                    id
                  }
                }
              }
            }
          }
        }
      }
    }
    """
  ) {
    bulkOperation {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

// productsBulkQueryTemplate exports products restricted to one vendor tag,
// with their media images and variants. The vendor is interpolated into the
// search query at submission time.
const productsBulkQueryTemplate = `
mutation {
  bulkOperationRunQuery(
    query: """
    {
      products(query: "vendor:%s") {
        edges {
          node {
            id
            title
            description
            vendor
            media(first: 10) {
              edges {
                node {
                  ... on MediaImage {
                    id
                    image {
                      url
                    }
                  }
                }
              }
            }
            variants {
              edges {
                node {
                  id
                  title
                  sku
                  price
                  inventoryQuantity
                }
              }
            }
          }
        }
      }
    }
    """
  ) {
    bulkOperation {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

// currentBulkOperationQuery reads the store's single in-flight bulk job
const currentBulkOperationQuery = `
{
  currentBulkOperation {
    id
    status
    errorCode
    url
  }
}`

// shopFulfillmentServicesQuery lists the store's registered services
const shopFulfillmentServicesQuery = `
{
  shop {
    fulfillmentServices {
      id
      serviceName
      location {
        id
      }
    }
  }
}`

// fulfillmentServiceCreateMutation registers a fulfillment service
const fulfillmentServiceCreateMutation = `
mutation fulfillmentServiceCreate($name: String!) {
  fulfillmentServiceCreate(name: $name, trackingSupport: true, inventoryManagement: false) {
    fulfillmentService {
      id
      serviceName
      location {
        id
      }
    }
    userErrors {
      field
      message
    }
  }
}`

// productCreateMutation creates a product with its option definitions
const productCreateMutation = `
mutation productCreate($input: ProductInput!, $media: [CreateMediaInput!]) {
  productCreate(input: $input, media: $media) {
    product {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

// productVariantsBulkCreateMutation batch-creates variants on a product
const productVariantsBulkCreateMutation = `
mutation productVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkCreate(productId: $productId, variants: $variants) {
    productVariants {
      id
      sku
    }
    userErrors {
      field
      message
    }
  }
}`
