package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/domain/sync"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
)

// GormIngestor implements sync.Ingestor. Each Upsert call runs inside one
// database transaction: rows are written with multi-row upserts keyed by
// their external ids, so re-running a pull against an unchanged dataset is
// idempotent. Any failure other than an orphan skip rolls the whole batch
// back.
type GormIngestor struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormIngestor creates a new GormIngestor
func NewGormIngestor(db *gorm.DB, logger *zap.Logger) *GormIngestor {
	return &GormIngestor{db: db, logger: logger}
}

// ---------------------------------------------------------------------------
// Product reconciliation
// ---------------------------------------------------------------------------

// UpsertProducts reconciles a product batch into the catalog for the given
// tenant and store domain. Conflicting products are updated in place with
// their internal ids kept stable; variants whose parent product cannot be
// resolved are skipped with a warning, never failing the batch.
func (g *GormIngestor) UpsertProducts(ctx context.Context, tenantID, domain string, batch *sync.ProductBatch) (*sync.IngestSummary, error) {
	summary := &sync.IngestSummary{SkippedOrphans: batch.SkippedVariants}
	if batch.IsEmpty() {
		return summary, nil
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRows := make([]models.ProductModel, 0, len(batch.Products))
		externalIDs := make([]string, 0, len(batch.Products))
		for _, p := range batch.Products {
			id := p.ExternalID
			var row models.ProductModel
			row.FromDomainTenantEntity(shared.NewTenantEntity(tenantID))
			row.Name = p.Title
			row.Description = p.Description
			row.Vendor = p.Vendor
			row.ImageURL = p.ImageURL
			row.ExternalProductID = &id
			productRows = append(productRows, row)
			externalIDs = append(externalIDs, id)
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "vendor", "image_url", "updated_at",
			}),
		}).Omit("Variants").Create(&productRows).Error; err != nil {
			return err
		}
		summary.ProductsUpserted = len(productRows)

		// Re-read the surviving internal ids: inserts got fresh uuids,
		// conflicts kept the pre-existing row's id.
		productIDs, err := g.externalProductIDMap(tx, externalIDs)
		if err != nil {
			return err
		}

		variantRows := make([]models.VariantModel, 0)
		for _, p := range batch.Products {
			internalID, ok := productIDs[p.ExternalID]
			if !ok {
				g.logger.Warn("skipping variants of unresolved product",
					zap.String("external_product_id", p.ExternalID),
					zap.Int("variants", len(p.Variants)))
				summary.SkippedOrphans += len(p.Variants)
				continue
			}
			for _, v := range p.Variants {
				externalVariantID := v.ExternalID
				var row models.VariantModel
				row.FromDomainBaseEntity(shared.NewBaseEntity())
				row.ProductID = internalID
				row.Title = v.Title
				row.SKU = v.SKU
				row.Stock = v.InventoryQuantity
				row.Price = v.Price
				row.ExternalVariantID = &externalVariantID
				variantRows = append(variantRows, row)
			}
		}

		if len(variantRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "external_variant_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"title", "sku", "stock", "price", "product_id", "updated_at",
				}),
			}).Omit("Options").Create(&variantRows).Error; err != nil {
				return err
			}
		}
		summary.VariantsUpserted = len(variantRows)

		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ---------------------------------------------------------------------------
// Order reconciliation
// ---------------------------------------------------------------------------

// UpsertOrders reconciles an order batch into the store's orders. The store
// is resolved from tenant and domain first and the whole operation fails
// fast with store.ErrStoreNotFound when no store matches. Line items with
// unresolvable product or variant references keep null linkage.
func (g *GormIngestor) UpsertOrders(ctx context.Context, tenantID, domain string, batch *sync.OrderBatch) (*sync.IngestSummary, error) {
	summary := &sync.IngestSummary{SkippedOrphans: batch.SkippedItems}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var storeModel models.StoreModel
		if err := tx.
			Joins("JOIN store_users ON store_users.store_id = stores.id").
			Where("store_users.tenant_id = ? AND stores.domain = ?", tenantID, store.NormalizeDomain(domain)).
			First(&storeModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrStoreNotFound
			}
			return err
		}

		if batch.IsEmpty() {
			return nil
		}

		orderRows := make([]models.OrderModel, 0, len(batch.Orders))
		externalOrderIDs := make([]string, 0, len(batch.Orders))
		for _, o := range batch.Orders {
			var row models.OrderModel
			row.FromDomainBaseEntity(shared.NewBaseEntity())
			row.StoreID = storeModel.ID
			row.ExternalOrderID = o.ExternalID
			row.Name = o.Name
			row.Status = o.Status
			row.TotalPrice = o.TotalPrice
			row.Currency = o.Currency
			row.CustomerName = o.Customer.FullName()
			row.ShippingAddress = o.ShippingAddress.Flatten()
			row.PlacedAt = o.CreatedAt
			orderRows = append(orderRows, row)
			externalOrderIDs = append(externalOrderIDs, o.ExternalID)
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "status", "total_price", "currency",
				"customer_name", "shipping_address", "placed_at", "updated_at",
			}),
		}).Omit("Items").Create(&orderRows).Error; err != nil {
			return err
		}
		summary.OrdersUpserted = len(orderRows)

		orderIDs, err := g.externalOrderIDMap(tx, externalOrderIDs)
		if err != nil {
			return err
		}
		productIDs, variantIDs, err := g.itemLinkageMaps(tx, batch)
		if err != nil {
			return err
		}

		itemRows := make([]models.OrderItemModel, 0)
		for _, o := range batch.Orders {
			orderID, ok := orderIDs[o.ExternalID]
			if !ok {
				g.logger.Warn("skipping items of unresolved order",
					zap.String("external_order_id", o.ExternalID),
					zap.Int("items", len(o.Items)))
				summary.SkippedOrphans += len(o.Items)
				continue
			}
			for _, item := range o.Items {
				var row models.OrderItemModel
				row.FromDomainBaseEntity(shared.NewBaseEntity())
				row.OrderID = orderID
				row.ExternalItemID = item.ExternalID
				row.Title = item.Title
				row.Quantity = item.Quantity
				row.UnitPrice = item.UnitPrice
				if id, ok := productIDs[item.ExternalProductID]; ok {
					pid := id
					row.ProductID = &pid
				}
				if id, ok := variantIDs[item.ExternalVariantID]; ok {
					vid := id
					row.VariantID = &vid
				}
				itemRows = append(itemRows, row)
			}
		}

		if len(itemRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "external_item_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"order_id", "title", "quantity", "unit_price",
					"product_id", "variant_id", "updated_at",
				}),
			}).Create(&itemRows).Error; err != nil {
				return err
			}
		}
		summary.ItemsUpserted = len(itemRows)

		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ---------------------------------------------------------------------------
// Lookup helpers
// ---------------------------------------------------------------------------

func (g *GormIngestor) externalProductIDMap(tx *gorm.DB, externalIDs []string) (map[string]uuid.UUID, error) {
	if len(externalIDs) == 0 {
		return map[string]uuid.UUID{}, nil
	}

	var rows []struct {
		ID                uuid.UUID
		ExternalProductID string
	}
	if err := tx.Model(&models.ProductModel{}).
		Select("id", "external_product_id").
		Where("external_product_id IN ?", externalIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	ids := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		ids[row.ExternalProductID] = row.ID
	}
	return ids, nil
}

func (g *GormIngestor) externalOrderIDMap(tx *gorm.DB, externalIDs []string) (map[string]uuid.UUID, error) {
	if len(externalIDs) == 0 {
		return map[string]uuid.UUID{}, nil
	}

	var rows []struct {
		ID              uuid.UUID
		ExternalOrderID string
	}
	if err := tx.Model(&models.OrderModel{}).
		Select("id", "external_order_id").
		Where("external_order_id IN ?", externalIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	ids := make(map[string]uuid.UUID, len(rows))
	for _, row := range rows {
		ids[row.ExternalOrderID] = row.ID
	}
	return ids, nil
}

// itemLinkageMaps resolves the external product and variant ids referenced
// by the batch's line items to internal ids. Misses are simply absent from
// the maps; the caller stores null linkage for them.
func (g *GormIngestor) itemLinkageMaps(tx *gorm.DB, batch *sync.OrderBatch) (map[string]uuid.UUID, map[string]uuid.UUID, error) {
	productExternalIDs := make([]string, 0)
	variantExternalIDs := make([]string, 0)
	seenProducts := make(map[string]bool)
	seenVariants := make(map[string]bool)
	for _, o := range batch.Orders {
		for _, item := range o.Items {
			if item.ExternalProductID != "" && !seenProducts[item.ExternalProductID] {
				seenProducts[item.ExternalProductID] = true
				productExternalIDs = append(productExternalIDs, item.ExternalProductID)
			}
			if item.ExternalVariantID != "" && !seenVariants[item.ExternalVariantID] {
				seenVariants[item.ExternalVariantID] = true
				variantExternalIDs = append(variantExternalIDs, item.ExternalVariantID)
			}
		}
	}

	productIDs, err := g.externalProductIDMap(tx, productExternalIDs)
	if err != nil {
		return nil, nil, err
	}

	variantIDs := make(map[string]uuid.UUID)
	if len(variantExternalIDs) > 0 {
		var rows []struct {
			ID                uuid.UUID
			ExternalVariantID string
		}
		if err := tx.Model(&models.VariantModel{}).
			Select("id", "external_variant_id").
			Where("external_variant_id IN ?", variantExternalIDs).
			Scan(&rows).Error; err != nil {
			return nil, nil, err
		}
		for _, row := range rows {
			variantIDs[row.ExternalVariantID] = row.ID
		}
	}

	return productIDs, variantIDs, nil
}

// Ensure GormIngestor implements sync.Ingestor
var _ sync.Ingestor = (*GormIngestor)(nil)
