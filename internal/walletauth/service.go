// Package walletauth runs the challenge/verify handshake that turns a
// wallet signature into a bearer credential. It requests a one-time message
// for an address, has the injected wallet capability sign it, and submits
// the signature for verification. Nothing here touches the live feed; a
// failed handshake is reported to the caller and nowhere else.
package walletauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/adawatch/adawatch/internal/pkg/logger"
	"github.com/adawatch/adawatch/internal/pkg/validator"
)

// Service exposes the wallet login flow.
type Service interface {
	// Login obtains a bearer credential for address, reusing a cached one
	// when available. The wallet is only asked to sign when no cached
	// credential exists.
	Login(ctx context.Context, address string) (Credential, error)
}

// loginInput shapes the validation of Login parameters.
type loginInput struct {
	Address string `validate:"required"`
}

type service struct {
	exchanger Exchanger
	signer    WalletSigner
	cache     CredentialCache
}

var _ Service = (*service)(nil)

// Login implements Service.
func (s *service) Login(ctx context.Context, address string) (Credential, error) {
	if err := validator.Validate(loginInput{Address: address}); err != nil {
		return Credential{}, err
	}

	cred, err := s.cache.LoadCredential(ctx, address)
	if err == nil {
		logger.Debug(ctx, "reusing cached credential", "wallet.address", address)
		return cred, nil
	}
	if !errors.Is(err, ErrCredentialNotFound) {
		// A broken cache must not block the handshake.
		logger.Warn(ctx, "credential cache lookup failed", "wallet.address", address, "error", err)
	}

	challenge, err := s.exchanger.CreateChallenge(ctx, address)
	if err != nil {
		return Credential{}, fmt.Errorf("create challenge: %w", err)
	}

	signature, err := s.signer.SignMessage(ctx, address, challenge.Message)
	if err != nil {
		return Credential{}, fmt.Errorf("sign challenge: %w", err)
	}

	token, err := s.exchanger.VerifySignature(ctx, VerifyRequest{
		Address:      address,
		StakeAddress: signature.StakeAddress,
		Signature:    signature.Signature,
		Key:          signature.Key,
	})
	if err != nil {
		return Credential{}, fmt.Errorf("verify signature: %w", err)
	}

	cred = Credential{
		Token:        token,
		Address:      address,
		StakeAddress: signature.StakeAddress,
	}

	if err := s.cache.SaveCredential(ctx, cred); err != nil {
		logger.Warn(ctx, "credential cache save failed", "wallet.address", address, "error", err)
	}

	return cred, nil
}

// config collects construction options.
type config struct {
	cache CredentialCache
}

// Option adjusts service construction.
type Option func(*config)

// WithCredentialCache plugs in a credential cache. Without it every Login
// performs the full handshake.
func WithCredentialCache(c CredentialCache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

// New builds the walletauth service around the remote exchanger and the
// injected wallet signer.
func New(exchanger Exchanger, signer WalletSigner, opts ...Option) *service {
	cfg := config{
		cache: nopCredentialCache{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		exchanger: exchanger,
		signer:    signer,
		cache:     cfg.cache,
	}
}
