package store

import (
	"errors"
	"strings"
	"time"

	"github.com/portal/backend/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Store Errors
// ---------------------------------------------------------------------------

var (
	// Store errors
	ErrStoreNotFound      = errors.New("store: store not found")
	ErrStoreAlreadyExists = errors.New("store: store already exists for domain")
	ErrInvalidDomain      = errors.New("store: invalid store domain")

	// Credential errors
	ErrCredentialNotFound = errors.New("store: credential not found")
	ErrSessionNotFound    = errors.New("store: session not found")

	// Membership errors
	ErrInvalidRole         = errors.New("store: invalid store role")
	ErrMemberAlreadyExists = errors.New("store: user is already a member of store")
	ErrMemberNotFound      = errors.New("store: user is not a member of store")
)

// ---------------------------------------------------------------------------
// Roles
// ---------------------------------------------------------------------------

// StoreRole represents the role of a user within a store
type StoreRole string

const (
	// StoreRoleOwner can manage the store connection and its members
	StoreRoleOwner StoreRole = "OWNER"
	// StoreRoleMember can run syncs and read store data
	StoreRoleMember StoreRole = "MEMBER"
)

// IsValid returns true if the role is valid
func (r StoreRole) IsValid() bool {
	switch r {
	case StoreRoleOwner, StoreRoleMember:
		return true
	default:
		return false
	}
}

// String returns the string representation of StoreRole
func (r StoreRole) String() string {
	return string(r)
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

// Store is a tenant-scoped connection to one external storefront domain.
// The domain is unique across the system; multiple tenants may share the
// same store through StoreUser memberships.
type Store struct {
	shared.BaseEntity
	Name   string
	Domain string
	// AccessToken is the stored credential for the storefront admin API.
	// Empty until the installation flow completes.
	AccessToken string
	// FulfillmentServiceID and LocationID are assigned by the platform the
	// first time a fulfillment service is registered for this store.
	FulfillmentServiceID string
	LocationID           string
	Users                []StoreUser
}

// StoreUser links a tenant account to a store with a role.
type StoreUser struct {
	shared.BaseEntity
	StoreID  string
	TenantID string
	Role     StoreRole
}

// NewStore creates a store connection for the given storefront domain
func NewStore(name, domain string) (*Store, error) {
	domain = NormalizeDomain(domain)
	if domain == "" {
		return nil, ErrInvalidDomain
	}
	if name == "" {
		name = domain
	}

	return &Store{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Domain:     domain,
	}, nil
}

// SetAccessToken stores the credential obtained from the platform
func (s *Store) SetAccessToken(token string) {
	s.AccessToken = token
	s.UpdatedAt = time.Now()
}

// SetFulfillmentService records the platform-assigned fulfillment service
// registration. Once set the ids are stable and must not be overwritten.
func (s *Store) SetFulfillmentService(serviceID, locationID string) {
	if s.FulfillmentServiceID != "" {
		return
	}
	s.FulfillmentServiceID = serviceID
	s.LocationID = locationID
	s.UpdatedAt = time.Now()
}

// HasFulfillmentService returns true once a fulfillment service is registered
func (s *Store) HasFulfillmentService() bool {
	return s.FulfillmentServiceID != ""
}

// AddUser adds a tenant to the store with the given role
func (s *Store) AddUser(tenantID string, role StoreRole) (*StoreUser, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	for _, u := range s.Users {
		if u.TenantID == tenantID {
			return nil, ErrMemberAlreadyExists
		}
	}

	user := StoreUser{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    s.ID.String(),
		TenantID:   tenantID,
		Role:       role,
	}
	s.Users = append(s.Users, user)
	s.UpdatedAt = time.Now()

	return &user, nil
}

// OwnerTenantID returns the tenant that connected the store, or "" when
// the store has no owner membership.
func (s *Store) OwnerTenantID() string {
	for _, u := range s.Users {
		if u.Role == StoreRoleOwner {
			return u.TenantID
		}
	}
	return ""
}

// HasUser returns true if the tenant is a member of the store
func (s *Store) HasUser(tenantID string) bool {
	for _, u := range s.Users {
		if u.TenantID == tenantID {
			return true
		}
	}
	return false
}

// NormalizeDomain lower-cases a storefront domain and strips any scheme
// and trailing slash, so "https://Shop-A.myshopify.com/" and
// "shop-a.myshopify.com" resolve to the same store.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimSuffix(domain, "/")
}
