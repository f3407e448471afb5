package dto

import (
	"time"

	"github.com/portal/backend/internal/domain/sync"
)

// SyncRequest binds the pull/push trigger payload
type SyncRequest struct {
	Domain string `json:"domain" binding:"required"`
}

// PushProductRequest binds the push-product trigger payload
type PushProductRequest struct {
	Domain    string `json:"domain" binding:"required"`
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// IngestSummaryResponse reports what a pull run wrote
type IngestSummaryResponse struct {
	ProductsUpserted int `json:"products_upserted"`
	VariantsUpserted int `json:"variants_upserted"`
	OrdersUpserted   int `json:"orders_upserted"`
	ItemsUpserted    int `json:"items_upserted"`
	SkippedOrphans   int `json:"skipped_orphans"`
}

// SyncResultResponse is the outcome of a sync run
type SyncResultResponse struct {
	Operation         string                 `json:"operation"`
	Domain            string                 `json:"domain"`
	Pulled            int                    `json:"pulled"`
	SkippedChildren   int                    `json:"skipped_children,omitempty"`
	ExternalProductID string                 `json:"external_product_id,omitempty"`
	Summary           *IngestSummaryResponse `json:"summary,omitempty"`
	StartedAt         time.Time              `json:"started_at"`
	DurationMillis    int64                  `json:"duration_ms"`
}

// NewSyncResultResponse maps a sync result to its response shape
func NewSyncResultResponse(r *sync.SyncResult) SyncResultResponse {
	resp := SyncResultResponse{
		Operation:         string(r.Operation),
		Domain:            r.Domain,
		Pulled:            r.Pulled,
		SkippedChildren:   r.SkippedChildren,
		ExternalProductID: r.ExternalProductID,
		StartedAt:         r.StartedAt,
		DurationMillis:    r.Duration.Milliseconds(),
	}
	if r.Summary != nil {
		resp.Summary = &IngestSummaryResponse{
			ProductsUpserted: r.Summary.ProductsUpserted,
			VariantsUpserted: r.Summary.VariantsUpserted,
			OrdersUpserted:   r.Summary.OrdersUpserted,
			ItemsUpserted:    r.Summary.ItemsUpserted,
			SkippedOrphans:   r.Summary.SkippedOrphans,
		}
	}
	return resp
}
