package cli

import (
	"context"
	"os"

	"github.com/adawatch/adawatch/internal/liveview"
	"github.com/adawatch/adawatch/internal/walletauth"
	"github.com/adawatch/adawatch/internal/wallethistory"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the adawatch CLI application.
//
// It registers all available commands, including:
//
//   - `start`: Runs the live feed reconciliation pipeline.
//   - `login`: Performs the wallet challenge/verify handshake.
//   - `history`: Fetches one page of a wallet's past transactions.
//   - `summary`: Fetches a wallet's balance and transaction count.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - lv: The liveview service driving the reconciliation pipeline.
//   - wa: The walletauth service used by the authenticated commands.
//   - wh: The wallethistory service serving the historical queries.
func Run(ctx context.Context, lv liveview.Service, wa walletauth.Service, wh wallethistory.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "adawatch",
		Description:           "Command-line interface for the live Cardano feed reconciler and wallet queries.",
		Usage:                 "adawatch [command] [flags]",
		Commands: []*cli.Command{
			startPipelineCommand(lv),
			walletLoginCommand(wa),
			walletHistoryCommand(wa, wh),
			walletSummaryCommand(wa, wh),
		},
	}

	return app.Run(ctx, os.Args)
}
