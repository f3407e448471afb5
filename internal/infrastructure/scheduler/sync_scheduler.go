// Package scheduler runs periodic background order pulls for every
// connected store, so catalogs stay warm without a tenant clicking sync.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	domainstore "github.com/portal/backend/internal/domain/store"
	domainsync "github.com/portal/backend/internal/domain/sync"
)

// OrderPuller runs one order import for a store
type OrderPuller interface {
	PullOrders(ctx context.Context, tenantID, domain string) (*domainsync.SyncResult, error)
}

// StoreSource lists the stores eligible for background syncing
type StoreSource interface {
	FindConnected(ctx context.Context) ([]*domainstore.Store, error)
}

// Config holds sync scheduler settings
type Config struct {
	Enabled bool
	// Interval is the pause between full passes over the connected stores
	Interval time.Duration
	// RunTimeout bounds one store's pull, including bulk job polling
	RunTimeout time.Duration
}

// DefaultConfig returns the default sync scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Interval:   30 * time.Minute,
		RunTimeout: 5 * time.Minute,
	}
}

// SyncScheduler periodically pulls orders for every connected store.
// Stores are processed sequentially; the platform throttles bulk
// operations per shop anyway, so there is nothing to gain from fan-out.
type SyncScheduler struct {
	config Config
	puller OrderPuller
	stores StoreSource
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSyncScheduler creates a new SyncScheduler
func NewSyncScheduler(config Config, puller OrderPuller, stores StoreSource, logger *zap.Logger) *SyncScheduler {
	return &SyncScheduler{
		config: config,
		puller: puller,
		stores: stores,
		logger: logger.Named("sync-scheduler"),
	}
}

// Start launches the background loop. Calling Start on a running
// scheduler is a no-op.
func (s *SyncScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.isRunning = true

	s.wg.Add(1)
	go s.loop(loopCtx)

	s.logger.Info("sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("run_timeout", s.config.RunTimeout),
	)
}

// Stop cancels the loop and waits for an in-flight pass to finish or the
// given context to expire.
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.cancel()
	s.isRunning = false
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("sync scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SyncScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runPass(ctx)
		}
	}
}

// runPass pulls orders once for every connected store. Failures are
// logged and do not stop the pass; the next tick retries naturally.
func (s *SyncScheduler) runPass(ctx context.Context) {
	stores, err := s.stores.FindConnected(ctx)
	if err != nil {
		s.logger.Error("failed to list connected stores", zap.Error(err))
		return
	}

	for _, st := range stores {
		if ctx.Err() != nil {
			return
		}

		tenantID := st.OwnerTenantID()
		if tenantID == "" {
			s.logger.Warn("store has no owner, skipping", zap.String("domain", st.Domain))
			continue
		}

		runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
		result, err := s.puller.PullOrders(runCtx, tenantID, st.Domain)
		cancel()
		if err != nil {
			s.logger.Warn("background order pull failed",
				zap.String("domain", st.Domain),
				zap.Error(err))
			continue
		}

		s.logger.Info("background order pull finished",
			zap.String("domain", st.Domain),
			zap.Int("pulled", result.Pulled),
			zap.Duration("duration", result.Duration))
	}
}
