package walletauth

import (
	"context"
	"errors"
)

// ErrCredentialNotFound is returned by LoadCredential when no cached
// credential exists for the address.
var ErrCredentialNotFound = errors.New("no cached credential for address")

// CredentialCache stores bearer credentials between logins so repeated
// history queries do not force a new wallet signature every time. Entries
// are expected to expire with the credential itself.
type CredentialCache interface {
	// SaveCredential stores the credential under its address.
	SaveCredential(ctx context.Context, cred Credential) error

	// LoadCredential returns the cached credential for address, or
	// ErrCredentialNotFound.
	LoadCredential(ctx context.Context, address string) (Credential, error)
}

// nopCredentialCache is the default cache: it never hits and drops saves.
type nopCredentialCache struct{}

func (nopCredentialCache) SaveCredential(ctx context.Context, cred Credential) error {
	return nil
}

func (nopCredentialCache) LoadCredential(ctx context.Context, address string) (Credential, error) {
	return Credential{}, ErrCredentialNotFound
}
