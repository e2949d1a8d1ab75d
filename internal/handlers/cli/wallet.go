package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/adawatch/adawatch/internal/walletauth"
	"github.com/adawatch/adawatch/internal/wallethistory"

	"github.com/urfave/cli/v3"
)

// walletLoginCommand returns a CLI command that performs the wallet
// challenge/verify handshake and prints the resulting credential.
//
// Usage example:
//
//	adawatch login --address addr1qxy...
func walletLoginCommand(wa walletauth.Service) *cli.Command {
	return &cli.Command{
		Name:        "login",
		Description: "Obtain a bearer credential for a wallet via the challenge/verify handshake.",
		Usage:       "Runs the signature handshake for the given address and prints the credential.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet payment address to authenticate",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cred, err := wa.Login(ctx, c.String("address"))
			if err != nil {
				return err
			}

			return printJSON(cred)
		},
	}
}

// walletHistoryCommand returns a CLI command that fetches one page of a
// wallet's historical transactions. It logs in first, reusing a cached
// credential when one exists.
//
// Usage example:
//
//	adawatch history --address addr1qxy... --page 1 --count 10
func walletHistoryCommand(wa walletauth.Service, wh wallethistory.Service) *cli.Command {
	return &cli.Command{
		Name:        "history",
		Description: "Fetch one page of a wallet's past transactions from the archive.",
		Usage:       "Authenticates the wallet and prints the requested transaction page.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet payment address to query",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number, starting at 1",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Transactions per page",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			address := c.String("address")

			cred, err := wa.Login(ctx, address)
			if err != nil {
				return err
			}

			page, err := wh.Transactions(ctx, cred, address, c.Int("page"), c.Int("count"))
			if err != nil {
				return err
			}

			return printJSON(page)
		},
	}
}

// walletSummaryCommand returns a CLI command that fetches a wallet's
// balance, stake address and transaction count.
//
// Usage example:
//
//	adawatch summary --address addr1qxy...
func walletSummaryCommand(wa walletauth.Service, wh wallethistory.Service) *cli.Command {
	return &cli.Command{
		Name:        "summary",
		Description: "Fetch a wallet's balance and transaction count from the archive.",
		Usage:       "Authenticates the wallet and prints its summary.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet payment address to query",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			address := c.String("address")

			cred, err := wa.Login(ctx, address)
			if err != nil {
				return err
			}

			summary, err := wh.Summary(ctx, cred, address)
			if err != nil {
				return err
			}

			return printJSON(summary)
		},
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
