package sync

import (
	"errors"
	"time"
)

// ErrUpdateNotSupported is returned when a push targets a product that
// already carries an external product id. Only the create path is
// implemented; the update path is a documented gap.
var ErrUpdateNotSupported = errors.New("sync: updating an already-pushed product is not supported")

// ---------------------------------------------------------------------------
// SyncOperation represents the kind of sync run
// ---------------------------------------------------------------------------

// SyncOperation represents the kind of sync run
type SyncOperation string

const (
	// SyncOperationPullOrders imports orders from the platform
	SyncOperationPullOrders SyncOperation = "PULL_ORDERS"
	// SyncOperationPullProducts imports products from the platform
	SyncOperationPullProducts SyncOperation = "PULL_PRODUCTS"
	// SyncOperationPushProduct exports one product to the platform
	SyncOperationPushProduct SyncOperation = "PUSH_PRODUCT"
)

// IsValid returns true if the operation is valid
func (o SyncOperation) IsValid() bool {
	switch o {
	case SyncOperationPullOrders, SyncOperationPullProducts, SyncOperationPushProduct:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncOperation
func (o SyncOperation) String() string {
	return string(o)
}

// ---------------------------------------------------------------------------
// SyncResult
// ---------------------------------------------------------------------------

// SyncResult is the outcome of one completed sync run.
type SyncResult struct {
	// Operation is the kind of run
	Operation SyncOperation
	// Domain is the storefront domain the run targeted
	Domain string
	// Pulled is the number of parent records reconstructed from the stream
	Pulled int
	// Summary is the ingest outcome; nil for push runs
	Summary *IngestSummary
	// SkippedChildren counts stream children dropped for missing parents
	SkippedChildren int
	// ExternalProductID is set for push runs
	ExternalProductID string
	// StartedAt is when the run began
	StartedAt time.Time
	// Duration is the wall-clock length of the run
	Duration time.Duration
}
