package store

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepository defines the persistence operations for store connections.
type StoreRepository interface {
	// Save persists a store and its memberships
	Save(ctx context.Context, s *Store) error

	// FindByID retrieves a store by its internal id
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindByDomain retrieves a store by its normalized domain
	FindByDomain(ctx context.Context, domain string) (*Store, error)

	// FindByTenantAndDomain retrieves a store the tenant is a member of
	FindByTenantAndDomain(ctx context.Context, tenantID, domain string) (*Store, error)

	// FindByTenant retrieves all stores the tenant is a member of
	FindByTenant(ctx context.Context, tenantID string) ([]*Store, error)
}

// SessionRepository defines persistence for pending installation sessions.
type SessionRepository interface {
	// Save persists a session, replacing any prior session for the domain
	Save(ctx context.Context, session *Session) error

	// FindByDomain retrieves the most recent session for a domain
	FindByDomain(ctx context.Context, domain string) (*Session, error)

	// DeleteByDomain removes sessions for a domain after store promotion
	DeleteByDomain(ctx context.Context, domain string) error
}

// StoreVariantRepository defines persistence for external variant linkage.
type StoreVariantRepository interface {
	// SaveBatch persists linkage rows, updating on external variant id conflict
	SaveBatch(ctx context.Context, rows []*StoreVariant) error

	// FindByStoreAndProduct retrieves linkage rows for one product in a store
	FindByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) ([]*StoreVariant, error)

	// FindByProducts retrieves linkage rows for a set of products in a store
	FindByProducts(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) ([]*StoreVariant, error)
}
