package dto

import (
	"github.com/portal/backend/internal/domain/store"
)

// ConnectStoreRequest binds the connect-store payload. AccessToken is
// optional; without it the store must complete the OAuth exchange.
type ConnectStoreRequest struct {
	Name        string `json:"name"`
	Domain      string `json:"domain" binding:"required"`
	AccessToken string `json:"access_token"`
}

// ExchangeTokenRequest binds the OAuth callback payload
type ExchangeTokenRequest struct {
	Domain string `json:"domain" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// AddMemberRequest binds the add-member payload
type AddMemberRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=OWNER MEMBER"`
}

// StoreResponse is the public view of a store connection. The access
// token never leaves the server; Connected reports whether one is held.
type StoreResponse struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Domain                string `json:"domain"`
	Connected             bool   `json:"connected"`
	HasFulfillmentService bool   `json:"has_fulfillment_service"`
	TimestampResponse
}

// NewStoreResponse maps a store entity to its response shape
func NewStoreResponse(s *store.Store) StoreResponse {
	return StoreResponse{
		ID:                    s.ID.String(),
		Name:                  s.Name,
		Domain:                s.Domain,
		Connected:             s.AccessToken != "",
		HasFulfillmentService: s.HasFulfillmentService(),
		TimestampResponse: TimestampResponse{
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		},
	}
}

// NewStoreListResponse maps a list of stores
func NewStoreListResponse(stores []*store.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, NewStoreResponse(s))
	}
	return out
}
