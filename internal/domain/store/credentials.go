package store

import "context"

// Credentials is what the platform client needs to act on behalf of a store.
type Credentials struct {
	// Domain is the normalized storefront domain
	Domain string
	// AccessToken is the admin API credential
	AccessToken string
}

// CredentialResolver looks up the credential for a tenant + storefront
// domain. Implementations check the store record first and fall back to a
// pending installation session; ErrCredentialNotFound means the store must
// be re-authorized and the caller must not retry.
type CredentialResolver interface {
	Resolve(ctx context.Context, tenantID, domain string) (*Credentials, error)
}
