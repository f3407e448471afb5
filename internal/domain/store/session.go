package store

import (
	"time"

	"github.com/portal/backend/internal/domain/shared"
)

// Session is a pending installation session for a storefront domain.
// The OAuth callback writes one before a Store row exists; the credential
// resolver falls back to it when the store has no stored token yet.
type Session struct {
	shared.BaseEntity
	Domain      string
	AccessToken string
	Scope       string
	ExpiresAt   *time.Time
}

// NewSession records the credential obtained during installation
func NewSession(domain, accessToken, scope string) (*Session, error) {
	domain = NormalizeDomain(domain)
	if domain == "" {
		return nil, ErrInvalidDomain
	}
	if accessToken == "" {
		return nil, ErrCredentialNotFound
	}

	return &Session{
		BaseEntity:  shared.NewBaseEntity(),
		Domain:      domain,
		AccessToken: accessToken,
		Scope:       scope,
	}, nil
}

// IsExpired returns true if the session carries an expiry in the past
func (s *Session) IsExpired() bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(time.Now())
}
