package sync

import "strings"

// ---------------------------------------------------------------------------
// RecordKind represents the type of a bulk-export record
// ---------------------------------------------------------------------------

// RecordKind represents the type of a record in a bulk-export stream.
// The platform tags each JSONL record with a global id of the form
// gid://shopify/{Type}/{numeric id}; the type segment is the discriminator.
type RecordKind string

const (
	// RecordKindOrder is a top-level order record
	RecordKindOrder RecordKind = "Order"
	// RecordKindLineItem is an order line item, parented to an order
	RecordKindLineItem RecordKind = "LineItem"
	// RecordKindProduct is a top-level product record
	RecordKindProduct RecordKind = "Product"
	// RecordKindProductVariant is a variant, parented to a product
	RecordKindProductVariant RecordKind = "ProductVariant"
	// RecordKindMediaImage is a product image, parented to a product
	RecordKindMediaImage RecordKind = "MediaImage"
	// RecordKindUnknown is any record type the pipeline does not consume
	RecordKindUnknown RecordKind = "Unknown"
)

// IsValid returns true if the kind is one the pipeline consumes
func (k RecordKind) IsValid() bool {
	switch k {
	case RecordKindOrder, RecordKindLineItem, RecordKindProduct,
		RecordKindProductVariant, RecordKindMediaImage:
		return true
	default:
		return false
	}
}

// String returns the string representation of RecordKind
func (k RecordKind) String() string {
	return string(k)
}

// IsParent returns true for record kinds that own child records
func (k RecordKind) IsParent() bool {
	return k == RecordKindOrder || k == RecordKindProduct
}

// ---------------------------------------------------------------------------
// GID parsing
// ---------------------------------------------------------------------------

// ParseGID splits a platform global id into its record kind and the
// trailing numeric id. The kind is matched on the exact type segment, not
// by substring, so ProductVariant is never misread as Product. An id that
// does not look like a global id yields RecordKindUnknown and the input
// unchanged, which keeps the tail usable as an opaque external id.
func ParseGID(gid string) (RecordKind, string) {
	const prefix = "gid://"
	if !strings.HasPrefix(gid, prefix) {
		return RecordKindUnknown, gid
	}

	parts := strings.Split(gid[len(prefix):], "/")
	// namespace/Type/id
	if len(parts) < 3 {
		return RecordKindUnknown, gid
	}

	kind := RecordKind(parts[len(parts)-2])
	tail := parts[len(parts)-1]
	if !kind.IsValid() {
		return RecordKindUnknown, tail
	}
	return kind, tail
}

// ExternalID returns just the trailing id portion of a global id.
func ExternalID(gid string) string {
	_, tail := ParseGID(gid)
	return tail
}
