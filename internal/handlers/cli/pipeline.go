package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adawatch/adawatch/internal/liveview"
	"github.com/adawatch/adawatch/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// overviewInterval paces the periodic pipeline overview log.
const overviewInterval = 10 * time.Second

// startPipelineCommand returns a CLI command that starts the live feed
// reconciliation pipeline: connecting to the feed, classifying events and
// folding them into the in-memory store.
//
// Usage example:
//
//	adawatch start
//
// The process runs indefinitely until it receives an interrupt (SIGINT or SIGTERM).
func startPipelineCommand(lv liveview.Service) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the live feed pipeline: connects, classifies events and reconciles them in memory.",
		Usage:       "Initializes and runs the full pipeline. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			if err := lv.Start(ctx); err != nil {
				return err
			}
			defer lv.Close()

			go logOverview(ctx, lv)

			<-quit
			return nil
		},
	}
}

// logOverview periodically reports the reconciled state so an operator can
// follow the pipeline without a UI attached.
func logOverview(ctx context.Context, lv liveview.Service) {
	ticker := time.NewTicker(overviewInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store := lv.Store()

			fields := []any{
				"feed.connected", lv.Connected(),
				"store.groups", len(store.Groups()),
				"store.recent_blocks", len(store.RecentBlocks()),
				"store.recent_transactions", len(store.RecentTransactions()),
			}
			if stats, ok := store.Stats(); ok {
				fields = append(fields,
					"feed.total_events", stats.TotalEvents,
					"feed.last_block_number", stats.LastBlockNumber,
					"feed.last_slot", stats.LastSlot,
				)
			}

			logger.Info(ctx, "pipeline overview", fields...)
		}
	}
}
