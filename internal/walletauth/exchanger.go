package walletauth

import (
	"context"
	"errors"
)

// ErrChallengeExpired is returned by VerifySignature when the challenge was
// not answered within the server's validity window and a new one must be
// requested.
var ErrChallengeExpired = errors.New("challenge expired")

// ErrSignatureRejected is returned by VerifySignature when the remote
// verifier rejects the signature for the challenge message.
var ErrSignatureRejected = errors.New("signature rejected")

// VerifyRequest carries everything the remote verifier needs to exchange a
// signed challenge for a bearer credential.
type VerifyRequest struct {
	Address      string
	StakeAddress string
	Signature    string
	Key          string
}

// Exchanger is the remote side of the challenge/verify handshake. The
// signature verification itself happens there; failures surface as
// ErrChallengeExpired, ErrSignatureRejected or a transport error.
type Exchanger interface {
	// CreateChallenge requests a fresh one-time message for address.
	CreateChallenge(ctx context.Context, address string) (Challenge, error)

	// VerifySignature submits the signed challenge and returns the bearer
	// token on success.
	VerifySignature(ctx context.Context, req VerifyRequest) (string, error)
}
