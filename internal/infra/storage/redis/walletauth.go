package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adawatch/adawatch/internal/walletauth"

	redis "github.com/redis/go-redis/v9"
)

// credentialKeyPrefix is the base key prefix for cached wallet credentials.
const credentialKeyPrefix = "wallet:credential"

// credentialKey returns the Redis key holding the credential for an address.
//
// Format: "wallet:credential:{address}"
func credentialKey(address string) string {
	return fmt.Sprintf("%s:%s", credentialKeyPrefix, address)
}

// credentialPayload is the stored encoding of a walletauth.Credential.
type credentialPayload struct {
	Token        string `json:"token"`
	Address      string `json:"address"`
	StakeAddress string `json:"stake_address"`
}

// SaveCredential implements walletauth.CredentialCache. The entry expires
// after the configured TTL so a stale bearer token never outlives its
// server-side session by much.
func (c *client) SaveCredential(ctx context.Context, cred walletauth.Credential) error {
	payload, err := json.Marshal(credentialPayload{
		Token:        cred.Token,
		Address:      cred.Address,
		StakeAddress: cred.StakeAddress,
	})
	if err != nil {
		return err
	}

	return c.conn.Set(ctx, credentialKey(cred.Address), payload, c.credentialTTL).Err()
}

// LoadCredential implements walletauth.CredentialCache.
func (c *client) LoadCredential(ctx context.Context, address string) (walletauth.Credential, error) {
	raw, err := c.conn.Get(ctx, credentialKey(address)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return walletauth.Credential{}, walletauth.ErrCredentialNotFound
		}

		return walletauth.Credential{}, err
	}

	var payload credentialPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return walletauth.Credential{}, err
	}

	return walletauth.Credential{
		Token:        payload.Token,
		Address:      payload.Address,
		StakeAddress: payload.StakeAddress,
	}, nil
}

var _ walletauth.CredentialCache = (*client)(nil)
