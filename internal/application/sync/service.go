package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/catalog"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/domain/sync"
)

// SyncServiceImpl sequences the pull and push pipelines. Each operation is
// a linear flow: resolve credentials, drive the platform ports, hand the
// result to the ingestor, and report a SyncResult.
type SyncServiceImpl struct {
	resolver    store.CredentialResolver
	bulk        sync.BulkClient
	parser      sync.StreamParser
	ingestor    sync.Ingestor
	pusher      sync.ProductPusher
	storeRepo   store.StoreRepository
	productRepo catalog.ProductRepository
	linkRepo    store.StoreVariantRepository
	// serviceName is the fulfillment service registered per store
	serviceName string
	logger      *zap.Logger
}

// NewSyncService creates a new SyncServiceImpl
func NewSyncService(
	resolver store.CredentialResolver,
	bulk sync.BulkClient,
	parser sync.StreamParser,
	ingestor sync.Ingestor,
	pusher sync.ProductPusher,
	storeRepo store.StoreRepository,
	productRepo catalog.ProductRepository,
	linkRepo store.StoreVariantRepository,
	serviceName string,
	logger *zap.Logger,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		resolver:    resolver,
		bulk:        bulk,
		parser:      parser,
		ingestor:    ingestor,
		pusher:      pusher,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		linkRepo:    linkRepo,
		serviceName: serviceName,
		logger:      logger,
	}
}

// ---------------------------------------------------------------------------
// Pull Operations
// ---------------------------------------------------------------------------

// PullOrders imports all orders of the store into the internal order store.
// A bulk export that completes with no matching records yields an empty
// successful result.
func (s *SyncServiceImpl) PullOrders(ctx context.Context, tenantID, domain string) (*sync.SyncResult, error) {
	started := time.Now()
	domain = store.NormalizeDomain(domain)

	creds, err := s.resolver.Resolve(ctx, tenantID, domain)
	if err != nil {
		return nil, err
	}

	jobID, err := s.bulk.SubmitOrdersExport(ctx, *creds)
	if err != nil {
		return nil, err
	}
	s.logger.Info("orders export submitted",
		zap.String("tenant_id", tenantID),
		zap.String("domain", domain),
		zap.String("job_id", jobID))

	downloadURL, err := s.bulk.Poll(ctx, *creds)
	if err != nil {
		if errors.Is(err, sync.ErrMissingDownloadURL) {
			return s.emptyResult(sync.SyncOperationPullOrders, domain, started), nil
		}
		return nil, err
	}

	batch, err := s.parser.ParseOrders(ctx, downloadURL)
	if err != nil {
		return nil, err
	}

	summary, err := s.ingestor.UpsertOrders(ctx, tenantID, domain, batch)
	if err != nil {
		return nil, err
	}

	result := &sync.SyncResult{
		Operation:       sync.SyncOperationPullOrders,
		Domain:          domain,
		Pulled:          len(batch.Orders),
		Summary:         summary,
		SkippedChildren: batch.SkippedItems,
		StartedAt:       started,
		Duration:        time.Since(started),
	}
	s.logger.Info("orders pull finished",
		zap.String("tenant_id", tenantID),
		zap.String("domain", domain),
		zap.Int("orders", summary.OrdersUpserted),
		zap.Int("items", summary.ItemsUpserted),
		zap.Int("skipped_orphans", summary.SkippedOrphans),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// PullProducts imports the store's vendor-tagged products into the catalog.
func (s *SyncServiceImpl) PullProducts(ctx context.Context, tenantID, domain string) (*sync.SyncResult, error) {
	started := time.Now()
	domain = store.NormalizeDomain(domain)

	creds, err := s.resolver.Resolve(ctx, tenantID, domain)
	if err != nil {
		return nil, err
	}

	jobID, err := s.bulk.SubmitProductsExport(ctx, *creds)
	if err != nil {
		return nil, err
	}
	s.logger.Info("products export submitted",
		zap.String("tenant_id", tenantID),
		zap.String("domain", domain),
		zap.String("job_id", jobID))

	downloadURL, err := s.bulk.Poll(ctx, *creds)
	if err != nil {
		if errors.Is(err, sync.ErrMissingDownloadURL) {
			return s.emptyResult(sync.SyncOperationPullProducts, domain, started), nil
		}
		return nil, err
	}

	batch, err := s.parser.ParseProducts(ctx, downloadURL)
	if err != nil {
		return nil, err
	}

	summary, err := s.ingestor.UpsertProducts(ctx, tenantID, domain, batch)
	if err != nil {
		return nil, err
	}

	result := &sync.SyncResult{
		Operation:       sync.SyncOperationPullProducts,
		Domain:          domain,
		Pulled:          len(batch.Products),
		Summary:         summary,
		SkippedChildren: batch.SkippedVariants,
		StartedAt:       started,
		Duration:        time.Since(started),
	}
	s.logger.Info("products pull finished",
		zap.String("tenant_id", tenantID),
		zap.String("domain", domain),
		zap.Int("products", summary.ProductsUpserted),
		zap.Int("variants", summary.VariantsUpserted),
		zap.Int("skipped_orphans", summary.SkippedOrphans),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (s *SyncServiceImpl) emptyResult(op sync.SyncOperation, domain string, started time.Time) *sync.SyncResult {
	return &sync.SyncResult{
		Operation: op,
		Domain:    domain,
		Summary:   &sync.IngestSummary{},
		StartedAt: started,
		Duration:  time.Since(started),
	}
}

// ---------------------------------------------------------------------------
// Push Operation
// ---------------------------------------------------------------------------

// PushProduct exports one catalog product with its variants to the store.
// The fulfillment service is registered once per store and its platform ids
// persisted on the store row. Writing the external linkage rows afterwards
// is best-effort: a failure is logged and the push still succeeds, because
// the product already exists on the platform.
func (s *SyncServiceImpl) PushProduct(ctx context.Context, tenantID, domain string, productID uuid.UUID) (*sync.SyncResult, error) {
	started := time.Now()
	domain = store.NormalizeDomain(domain)

	creds, err := s.resolver.Resolve(ctx, tenantID, domain)
	if err != nil {
		return nil, err
	}

	st, err := s.storeRepo.FindByTenantAndDomain(ctx, tenantID, domain)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	if product.IsLinked() {
		return nil, sync.ErrUpdateNotSupported
	}

	if !st.HasFulfillmentService() {
		serviceID, locationID, err := s.pusher.EnsureFulfillmentService(ctx, *creds, s.serviceName)
		if err != nil {
			return nil, err
		}
		st.SetFulfillmentService(serviceID, locationID)
		if err := s.storeRepo.Save(ctx, st); err != nil {
			return nil, err
		}
	}

	optionSets := product.OptionSets()
	externalProductID, err := s.pusher.CreateProduct(ctx, *creds, buildProductPush(product, optionSets))
	if err != nil {
		return nil, err
	}

	created, err := s.pusher.CreateVariants(ctx, *creds, externalProductID, buildVariantPushes(product, optionSets))
	if err != nil {
		return nil, err
	}

	if err := s.saveLinkage(ctx, st, product, externalProductID, created); err != nil {
		s.logger.Error("failed to persist store variant linkage",
			zap.String("tenant_id", tenantID),
			zap.String("domain", domain),
			zap.String("external_product_id", externalProductID),
			zap.Error(err))
	}

	result := &sync.SyncResult{
		Operation:         sync.SyncOperationPushProduct,
		Domain:            domain,
		ExternalProductID: externalProductID,
		StartedAt:         started,
		Duration:          time.Since(started),
	}
	s.logger.Info("product pushed",
		zap.String("tenant_id", tenantID),
		zap.String("domain", domain),
		zap.String("product_id", productID.String()),
		zap.String("external_product_id", externalProductID),
		zap.Int("variants", len(created)),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// saveLinkage writes one store_variants row per created variant
func (s *SyncServiceImpl) saveLinkage(ctx context.Context, st *store.Store, product *catalog.Product, externalProductID string, created []sync.CreatedVariant) error {
	if len(created) == 0 {
		return nil
	}

	priceByVariant := make(map[uuid.UUID]catalog.Variant, len(product.Variants))
	for _, v := range product.Variants {
		priceByVariant[v.ID] = v
	}

	rows := make([]*store.StoreVariant, 0, len(created))
	for _, cv := range created {
		row := store.NewStoreVariant(st.ID, product.ID, cv.VariantID, externalProductID, cv.ExternalVariantID)
		if v, ok := priceByVariant[cv.VariantID]; ok {
			row.Snapshot(v.Price, true)
		}
		rows = append(rows, row)
	}
	return s.linkRepo.SaveBatch(ctx, rows)
}

// ---------------------------------------------------------------------------
// Push shaping
// ---------------------------------------------------------------------------

// buildProductPush maps a catalog product onto the platform create shape,
// flattening option sets to name + distinct values in first-seen order.
func buildProductPush(product *catalog.Product, sets []catalog.OptionSet) sync.ProductPush {
	options := make([]sync.PushOption, 0, len(sets))
	for _, set := range sets {
		seen := make(map[string]bool)
		values := make([]string, 0, len(set.Values))
		for _, v := range set.Values {
			if !seen[v.Value] {
				seen[v.Value] = true
				values = append(values, v.Value)
			}
		}
		options = append(options, sync.PushOption{Name: set.Name, Values: values})
	}

	return sync.ProductPush{
		Title:       product.Name,
		Description: product.Description,
		Vendor:      product.Vendor,
		ImageURL:    product.ImageURL,
		Options:     options,
	}
}

// buildVariantPushes maps each variant's option values onto the declared
// option order, so the platform receives values aligned with the product's
// option definitions.
func buildVariantPushes(product *catalog.Product, sets []catalog.OptionSet) []sync.VariantPush {
	pushes := make([]sync.VariantPush, 0, len(product.Variants))
	for _, v := range product.Variants {
		byName := make(map[string]string, len(v.Options))
		for _, opt := range v.Options {
			byName[opt.Name] = opt.Value
		}

		values := make([]string, 0, len(sets))
		for _, set := range sets {
			if val, ok := byName[set.Name]; ok {
				values = append(values, val)
			}
		}

		pushes = append(pushes, sync.VariantPush{
			VariantID:    v.ID,
			SKU:          v.SKU,
			Price:        v.Price,
			OptionValues: values,
		})
	}
	return pushes
}
