package sync

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// Pulled product entities
// ---------------------------------------------------------------------------

// PulledProduct is one product reconstructed from a bulk-export stream.
type PulledProduct struct {
	// GID is the platform global id, used for child attachment
	GID string
	// ExternalID is the trailing numeric id, the upsert key
	ExternalID string
	// Title is the product title
	Title string
	// Description is the plain-text product description
	Description string
	// Vendor is the platform vendor tag
	Vendor string
	// ImageURL is the first media image attached to the product
	ImageURL string
	// Variants are the attached variants
	Variants []PulledVariant
}

// PulledVariant is one variant reconstructed from the stream.
type PulledVariant struct {
	// ExternalID is the trailing numeric variant id, the upsert key
	ExternalID string
	// Title is the variant title, e.g. "Small / Red"
	Title string
	// SKU is the merchant SKU
	SKU string
	// Price is the variant price
	Price decimal.Decimal
	// InventoryQuantity is the available stock reported by the platform
	InventoryQuantity int
}

// ---------------------------------------------------------------------------
// ProductAccumulator
// ---------------------------------------------------------------------------

// ProductAccumulator reconstructs products from a flat record stream,
// with the same buffering semantics as OrderAccumulator: out-of-order
// children are held until finalization, and children with no parent in
// the stream are counted and dropped. Image records attach the first
// image URL observed for each product.
type ProductAccumulator struct {
	products map[string]*PulledProduct
	ordered  []string
	pending  map[string][]PulledVariant
	images   map[string]string
}

// NewProductAccumulator creates an empty accumulator
func NewProductAccumulator() *ProductAccumulator {
	return &ProductAccumulator{
		products: make(map[string]*PulledProduct),
		pending:  make(map[string][]PulledVariant),
		images:   make(map[string]string),
	}
}

// AddProduct records a top-level product
func (a *ProductAccumulator) AddProduct(product PulledProduct) {
	if _, seen := a.products[product.GID]; !seen {
		a.ordered = append(a.ordered, product.GID)
	}
	a.products[product.GID] = &product
}

// AddVariant attaches a variant to its parent product, buffering it when
// the parent has not been observed yet
func (a *ProductAccumulator) AddVariant(parentGID string, variant PulledVariant) {
	if parent, ok := a.products[parentGID]; ok {
		parent.Variants = append(parent.Variants, variant)
		return
	}
	a.pending[parentGID] = append(a.pending[parentGID], variant)
}

// AddImage records an image URL for its parent product. Only the first
// image per product is kept.
func (a *ProductAccumulator) AddImage(parentGID, url string) {
	if url == "" {
		return
	}
	if _, ok := a.images[parentGID]; !ok {
		a.images[parentGID] = url
	}
}

// Finalize re-attaches buffered children, associates images, and returns
// the completed batch. The accumulator must not be used after Finalize.
func (a *ProductAccumulator) Finalize() *ProductBatch {
	skipped := 0
	for parentGID, variants := range a.pending {
		parent, ok := a.products[parentGID]
		if !ok {
			skipped += len(variants)
			continue
		}
		parent.Variants = append(parent.Variants, variants...)
	}
	for parentGID, url := range a.images {
		if parent, ok := a.products[parentGID]; ok {
			parent.ImageURL = url
		}
	}

	batch := &ProductBatch{
		Products:        make([]*PulledProduct, 0, len(a.ordered)),
		SkippedVariants: skipped,
	}
	for _, gid := range a.ordered {
		batch.Products = append(batch.Products, a.products[gid])
	}
	return batch
}

// ProductBatch is the finalized output of one product-stream parse.
type ProductBatch struct {
	// Products preserves the order in which parents appeared in the stream
	Products []*PulledProduct
	// SkippedVariants counts variants dropped because their parent product
	// never appeared in the stream
	SkippedVariants int
}

// IsEmpty returns true when the batch contains no products
func (b *ProductBatch) IsEmpty() bool {
	return len(b.Products) == 0
}
