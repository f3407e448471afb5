package dto

import (
	"github.com/shopspring/decimal"

	appcatalog "github.com/portal/backend/internal/application/catalog"
	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/store"
)

// CreateProductRequest binds the create-product payload
type CreateProductRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Vendor      string                 `json:"vendor"`
	ImageURL    string                 `json:"image_url"`
	Price       decimal.Decimal        `json:"price"`
	Variants    []CreateVariantRequest `json:"variants"`
}

// CreateVariantRequest binds one variant of a create-product payload
type CreateVariantRequest struct {
	Title   string                 `json:"title" binding:"required"`
	SKU     string                 `json:"sku"`
	Stock   int                    `json:"stock"`
	Price   decimal.Decimal        `json:"price"`
	Options []VariantOptionRequest `json:"options"`
}

// VariantOptionRequest binds one option name/value pair
type VariantOptionRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// BatchVariantsRequest binds the product id list for a batch variant
// lookup. The field name matches the storefront client's payload.
type BatchVariantsRequest struct {
	ProductIDs []string `json:"productIds" binding:"required,min=1,dive,uuid"`
}

// UpdateProductRequest binds the update-product payload
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Vendor      string          `json:"vendor"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
}

// ToCreateInput converts the request to the application layer's input
func (r CreateProductRequest) ToCreateInput() appcatalog.CreateProductRequest {
	variants := make([]appcatalog.CreateVariantRequest, 0, len(r.Variants))
	for _, v := range r.Variants {
		options := make([]appcatalog.VariantOptionRequest, 0, len(v.Options))
		for _, opt := range v.Options {
			options = append(options, appcatalog.VariantOptionRequest{Name: opt.Name, Value: opt.Value})
		}
		variants = append(variants, appcatalog.CreateVariantRequest{
			Title:   v.Title,
			SKU:     v.SKU,
			Stock:   v.Stock,
			Price:   v.Price,
			Options: options,
		})
	}
	return appcatalog.CreateProductRequest{
		Name:        r.Name,
		Description: r.Description,
		Vendor:      r.Vendor,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
		Variants:    variants,
	}
}

// ToUpdateInput converts the request to the application layer's input
func (r UpdateProductRequest) ToUpdateInput() appcatalog.UpdateProductRequest {
	return appcatalog.UpdateProductRequest{
		Name:        r.Name,
		Description: r.Description,
		Vendor:      r.Vendor,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
	}
}

// ProductResponse is the public view of a catalog product
type ProductResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Vendor            string            `json:"vendor,omitempty"`
	ImageURL          string            `json:"image_url,omitempty"`
	Price             decimal.Decimal   `json:"price"`
	ExternalProductID string            `json:"external_product_id,omitempty"`
	Linked            bool              `json:"linked"`
	Variants          []VariantResponse `json:"variants"`
	TimestampResponse
}

// VariantResponse is the public view of a product variant
type VariantResponse struct {
	ID                string                  `json:"id"`
	ProductID         string                  `json:"product_id"`
	Title             string                  `json:"title"`
	SKU               string                  `json:"sku,omitempty"`
	Stock             int                     `json:"stock"`
	Price             decimal.Decimal         `json:"price"`
	ExternalVariantID string                  `json:"external_variant_id,omitempty"`
	Options           []VariantOptionResponse `json:"options,omitempty"`
}

// VariantOptionResponse is one option name/value pair on a variant
type VariantOptionResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StoreVariantLinkResponse is one storefront linkage row of a product
type StoreVariantLinkResponse struct {
	VariantID         string          `json:"variant_id"`
	ExternalProductID string          `json:"external_product_id"`
	ExternalVariantID string          `json:"external_variant_id"`
	Available         bool            `json:"available"`
	Price             decimal.Decimal `json:"price"`
}

// ProductWithLinkageResponse pairs a product with its linkage rows
type ProductWithLinkageResponse struct {
	ProductResponse
	Links []StoreVariantLinkResponse `json:"links"`
}

// NewProductResponse maps a product entity to its response shape
func NewProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, newVariantResponse(&p.Variants[i]))
	}
	return ProductResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		Description:       p.Description,
		Vendor:            p.Vendor,
		ImageURL:          p.ImageURL,
		Price:             p.Price,
		ExternalProductID: p.ExternalProductID,
		Linked:            p.IsLinked(),
		Variants:          variants,
		TimestampResponse: TimestampResponse{
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
	}
}

func newVariantResponse(v *catalog.Variant) VariantResponse {
	options := make([]VariantOptionResponse, 0, len(v.Options))
	for _, opt := range v.Options {
		options = append(options, VariantOptionResponse{Name: opt.Name, Value: opt.Value})
	}
	return VariantResponse{
		ID:                v.ID.String(),
		ProductID:         v.ProductID.String(),
		Title:             v.Title,
		SKU:               v.SKU,
		Stock:             v.Stock,
		Price:             v.Price,
		ExternalVariantID: v.ExternalVariantID,
		Options:           options,
	}
}

// NewVariantListResponse maps standalone variant rows
func NewVariantListResponse(variants []*catalog.Variant) []VariantResponse {
	out := make([]VariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, newVariantResponse(v))
	}
	return out
}

// NewProductListResponse maps a list of products
func NewProductListResponse(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// NewProductWithLinkageResponse maps a product together with its linkage rows
func NewProductWithLinkageResponse(p *catalog.Product, links []*store.StoreVariant) ProductWithLinkageResponse {
	linkResponses := make([]StoreVariantLinkResponse, 0, len(links))
	for _, link := range links {
		linkResponses = append(linkResponses, StoreVariantLinkResponse{
			VariantID:         link.VariantID.String(),
			ExternalProductID: link.ExternalProductID,
			ExternalVariantID: link.ExternalVariantID,
			Available:         link.Available,
			Price:             link.Price,
		})
	}
	return ProductWithLinkageResponse{
		ProductResponse: NewProductResponse(p),
		Links:           linkResponses,
	}
}
