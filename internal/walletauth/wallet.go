package walletauth

import "context"

// Challenge is the one-time message the viewer API hands out for an address.
// The wallet signs Message; Nonce only identifies the challenge in logs.
type Challenge struct {
	Message string
	Nonce   string
}

// Signature is the wallet's answer to a challenge: the signature over the
// message plus the CIP-30 key material the verifier needs. The cryptography
// itself is owned by the wallet; this package only moves the values.
type Signature struct {
	Signature    string // hex-encoded signature over the challenge message
	Key          string // hex-encoded COSE key material
	StakeAddress string // optional stake address the wallet vouches for
}

// WalletSigner is the injected wallet capability used to answer challenges.
type WalletSigner interface {
	// SignMessage asks the wallet holding address to sign message.
	SignMessage(ctx context.Context, address, message string) (Signature, error)
}

// Credential is the bearer token obtained from a successful handshake. It
// authorizes the historical queries and nothing else.
type Credential struct {
	Token        string
	Address      string
	StakeAddress string
}
