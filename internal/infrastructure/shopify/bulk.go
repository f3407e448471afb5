package shopify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Bulk export submission
// ---------------------------------------------------------------------------

// SubmitOrdersExport starts a bulk export of orders with customers, shipping
// addresses and line items
func (c *Client) SubmitOrdersExport(ctx context.Context, creds store.Credentials) (string, error) {
	return c.submitBulkQuery(ctx, creds, ordersBulkQuery)
}

// SubmitProductsExport starts a bulk export of products filtered to the
// configured vendor tag, with media and variants
func (c *Client) SubmitProductsExport(ctx context.Context, creds store.Credentials) (string, error) {
	return c.submitBulkQuery(ctx, creds, fmt.Sprintf(productsBulkQueryTemplate, c.vendor))
}

// submitBulkQuery runs one bulkOperationRunQuery mutation and returns the
// accepted job id. Field-level rejections surface as SubmissionError.
func (c *Client) submitBulkQuery(ctx context.Context, creds store.Credentials, mutation string) (string, error) {
	var data bulkOperationRunData
	if err := c.execute(ctx, creds, mutation, nil, &data); err != nil {
		return "", err
	}

	if errs := data.BulkOperationRunQuery.UserErrors; len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Message)
		}
		return "", &sync.SubmissionError{Messages: msgs}
	}

	op := data.BulkOperationRunQuery.BulkOperation
	if op == nil || op.ID == "" {
		return "", fmt.Errorf("shopify: bulk submission returned no operation id")
	}

	c.logger.Info("bulk export submitted",
		zap.String("domain", creds.Domain),
		zap.String("job_id", op.ID))
	return op.ID, nil
}

// ---------------------------------------------------------------------------
// Bulk job polling
// ---------------------------------------------------------------------------

// Poll waits for the store's current bulk job to reach a terminal state and
// returns its download URL. The wait is bounded by the configured poll
// interval and max attempts; exhausting the window returns ErrPollTimeout
// while the external job may still finish later.
func (c *Client) Poll(ctx context.Context, creds store.Credentials) (string, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= c.pollMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		job, err := c.currentBulkOperation(ctx, creds)
		if err != nil {
			return "", err
		}

		if !job.Status.IsTerminal() {
			c.logger.Debug("bulk job still running",
				zap.String("domain", creds.Domain),
				zap.String("job_id", job.ID),
				zap.String("status", job.Status.String()),
				zap.Int("attempt", attempt))
			continue
		}
		return job.Result()
	}
	return "", sync.ErrPollTimeout
}

// currentBulkOperation reads the store's single in-flight bulk job
func (c *Client) currentBulkOperation(ctx context.Context, creds store.Credentials) (*sync.BulkJob, error) {
	var data currentBulkOperationData
	if err := c.execute(ctx, creds, currentBulkOperationQuery, nil, &data); err != nil {
		return nil, err
	}

	op := data.CurrentBulkOperation
	if op == nil {
		return nil, sync.ErrJobNotFound
	}
	return &sync.BulkJob{
		ID:        op.ID,
		Status:    sync.BulkJobStatus(op.Status),
		ErrorCode: op.ErrorCode,
		URL:       op.URL,
	}, nil
}

// Ensure Client implements the bulk export port
var _ sync.BulkClient = (*Client)(nil)
