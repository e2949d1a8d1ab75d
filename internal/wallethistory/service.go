// Package wallethistory serves the authenticated "my activity" queries:
// pages of a wallet's past transactions and its summary. It is a thin layer
// over the archive collaborator; failures here reach only the requesting
// view and never touch the live reconciliation engine.
package wallethistory

import (
	"context"
	"fmt"

	"github.com/adawatch/adawatch/internal/pkg/validator"
	"github.com/adawatch/adawatch/internal/walletauth"
)

const (
	// defaultPage is used when the caller passes a non-positive page.
	defaultPage = 1

	// defaultPageSize is used when the caller passes a non-positive size.
	defaultPageSize = 10
)

// TransactionPage is one page of historical transactions plus its paging
// metadata.
type TransactionPage struct {
	Transactions []Transaction
	Page         int
	Total        int
}

// Service exposes the historical wallet queries.
type Service interface {
	// Transactions returns one page of the wallet's past transactions.
	// Non-positive page or size values fall back to 1 and 10.
	Transactions(ctx context.Context, cred walletauth.Credential, address string, page, size int) (TransactionPage, error)

	// Summary returns the wallet's balance, stake address and transaction
	// count. The stake address comes from the credential when the archive
	// does not know one.
	Summary(ctx context.Context, cred walletauth.Credential, address string) (Summary, error)
}

// queryInput shapes the validation shared by both queries.
type queryInput struct {
	Token   string `validate:"required"`
	Address string `validate:"required"`
}

type service struct {
	archive Archive
}

var _ Service = (*service)(nil)

// Transactions implements Service.
func (s *service) Transactions(ctx context.Context, cred walletauth.Credential, address string, page, size int) (TransactionPage, error) {
	if err := validator.Validate(queryInput{Token: cred.Token, Address: address}); err != nil {
		return TransactionPage{}, err
	}

	if page < 1 {
		page = defaultPage
	}
	if size < 1 {
		size = defaultPageSize
	}

	transactions, err := s.archive.Transactions(ctx, cred, address, page, size)
	if err != nil {
		return TransactionPage{}, fmt.Errorf("fetch transactions: %w", err)
	}

	return TransactionPage{
		Transactions: transactions,
		Page:         page,
		Total:        len(transactions),
	}, nil
}

// Summary implements Service.
func (s *service) Summary(ctx context.Context, cred walletauth.Credential, address string) (Summary, error) {
	if err := validator.Validate(queryInput{Token: cred.Token, Address: address}); err != nil {
		return Summary{}, err
	}

	summary, err := s.archive.Summary(ctx, cred, address)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch summary: %w", err)
	}

	if summary.StakeAddress == "" {
		summary.StakeAddress = cred.StakeAddress
	}

	return summary, nil
}

// New builds the wallethistory service over the archive collaborator.
func New(archive Archive) *service {
	return &service{
		archive: archive,
	}
}
