package main

import (
	"context"
	"log"

	"github.com/adawatch/adawatch/internal/config"
	"github.com/adawatch/adawatch/internal/feedstream"
	"github.com/adawatch/adawatch/internal/handlers/cli"
	"github.com/adawatch/adawatch/internal/infra/archive"
	"github.com/adawatch/adawatch/internal/infra/extsigner"
	"github.com/adawatch/adawatch/internal/infra/feedsocket"
	"github.com/adawatch/adawatch/internal/infra/storage/redis"
	"github.com/adawatch/adawatch/internal/liveview"
	"github.com/adawatch/adawatch/internal/pkg/logger"
	"github.com/adawatch/adawatch/internal/pkg/telemetry"
	"github.com/adawatch/adawatch/internal/reconcile"
	"github.com/adawatch/adawatch/internal/walletauth"
	"github.com/adawatch/adawatch/internal/wallethistory"
)

const serviceName = "adawatch"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("init telemetry: %v", err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	// Live pipeline: websocket transport -> feed stream -> store.
	transport := feedsocket.NewTransport(cfg.FeedURL)
	stream := feedstream.New(transport,
		feedstream.WithReconnectDelay(cfg.FeedReconnectDelay),
		feedstream.WithConnectivityHandler(func(ctx context.Context, connected bool) {
			logger.Info(ctx, "feed connectivity changed", "feed.connected", connected)
		}),
	)
	store := reconcile.New(reconcile.WithMaxResidentGroups(cfg.MaxResidentGroups))
	lv := liveview.New(stream, store)

	// Wallet flows: archive client + external signer, with an optional
	// Redis-backed credential cache.
	archiveClient := archive.NewClient(cfg.ViewerAPIBaseURL)
	signer := extsigner.New(cfg.WalletSignCommand)

	var authOpts []walletauth.Option
	if cfg.RedisAddr != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal(ctx, "failed to connect to redis", "error", err)
		}
		defer redisClient.Close()

		authOpts = append(authOpts, walletauth.WithCredentialCache(redisClient))
	}

	wa := walletauth.New(archiveClient, signer, authOpts...)
	wh := wallethistory.New(archiveClient)

	if err := cli.Run(ctx, lv, wa, wh); err != nil {
		logger.Fatal(ctx, "command failed", "error", err)
	}
}
