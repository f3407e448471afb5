package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGID(t *testing.T) {
	tests := []struct {
		gid      string
		kind     RecordKind
		tail     string
	}{
		{"gid://shopify/Order/5479150518321", RecordKindOrder, "5479150518321"},
		{"gid://shopify/LineItem/13531640365105", RecordKindLineItem, "13531640365105"},
		{"gid://shopify/Product/8091291091121", RecordKindProduct, "8091291091121"},
		{"gid://shopify/ProductVariant/44659919290545", RecordKindProductVariant, "44659919290545"},
		{"gid://shopify/MediaImage/33809188749489", RecordKindMediaImage, "33809188749489"},
		{"gid://shopify/Customer/123", RecordKindUnknown, "123"},
		{"5479150518321", RecordKindUnknown, "5479150518321"},
		{"gid://shopify", RecordKindUnknown, "gid://shopify"},
		{"", RecordKindUnknown, ""},
	}

	for _, tt := range tests {
		kind, tail := ParseGID(tt.gid)
		assert.Equal(t, tt.kind, kind, "gid: %q", tt.gid)
		assert.Equal(t, tt.tail, tail, "gid: %q", tt.gid)
	}
}

func TestParseGID_VariantNotMistakenForProduct(t *testing.T) {
	kind, _ := ParseGID("gid://shopify/ProductVariant/1")
	assert.Equal(t, RecordKindProductVariant, kind)
	assert.NotEqual(t, RecordKindProduct, kind)
}

func TestRecordKind_IsParent(t *testing.T) {
	assert.True(t, RecordKindOrder.IsParent())
	assert.True(t, RecordKindProduct.IsParent())
	assert.False(t, RecordKindLineItem.IsParent())
	assert.False(t, RecordKindProductVariant.IsParent())
	assert.False(t, RecordKindMediaImage.IsParent())
}

func TestExternalID(t *testing.T) {
	assert.Equal(t, "42", ExternalID("gid://shopify/Order/42"))
	assert.Equal(t, "plain", ExternalID("plain"))
}
