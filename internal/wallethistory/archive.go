package wallethistory

import (
	"context"

	"github.com/adawatch/adawatch/internal/walletauth"
)

// Transaction is one historical transaction involving the wallet, as served
// by the archive. Fees stay a string in the archive's smallest-unit decimal
// encoding; this layer does not do arithmetic on them.
type Transaction struct {
	TxHash      string
	Block       string
	BlockHeight uint64
	BlockTime   uint64
	Slot        uint64
	Index       uint32
	Fees        string
}

// Summary is the archive's aggregate view of a wallet.
type Summary struct {
	Address          string
	StakeAddress     string
	Balance          string
	TransactionCount int
}

// Archive is the historical-data collaborator. Every call is authorized by
// the bearer credential from the walletauth handshake; the live feed is
// never involved.
type Archive interface {
	// Transactions fetches one page of the wallet's past transactions.
	Transactions(ctx context.Context, cred walletauth.Credential, address string, page, size int) ([]Transaction, error)

	// Summary fetches the wallet's balance and transaction count.
	Summary(ctx context.Context, cred walletauth.Credential, address string) (Summary, error)
}
