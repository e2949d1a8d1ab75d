package cli

import (
	"context"
	"testing"

	"github.com/adawatch/adawatch/internal/pkg/logger"
	"github.com/adawatch/adawatch/internal/reconcile"
	"github.com/adawatch/adawatch/internal/walletauth"
	"github.com/adawatch/adawatch/internal/wallethistory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}

	m.Run()
}

type fakeLiveview struct {
	store    *reconcile.Store
	startErr error
	started  bool
	closed   bool
}

func (f *fakeLiveview) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	f.started = true
	return nil
}

func (f *fakeLiveview) Connected() bool { return f.started }

func (f *fakeLiveview) Store() *reconcile.Store { return f.store }

func (f *fakeLiveview) Close() { f.closed = true }

type fakeWalletauth struct {
	cred       walletauth.Credential
	err        error
	gotAddress string
}

func (f *fakeWalletauth) Login(ctx context.Context, address string) (walletauth.Credential, error) {
	f.gotAddress = address
	return f.cred, f.err
}

type fakeWallethistory struct {
	page    wallethistory.TransactionPage
	summary wallethistory.Summary
	err     error

	gotCred    walletauth.Credential
	gotAddress string
	gotPage    int
	gotSize    int
}

func (f *fakeWallethistory) Transactions(ctx context.Context, cred walletauth.Credential, address string, page, size int) (wallethistory.TransactionPage, error) {
	f.gotCred, f.gotAddress, f.gotPage, f.gotSize = cred, address, page, size
	return f.page, f.err
}

func (f *fakeWallethistory) Summary(ctx context.Context, cred walletauth.Credential, address string) (wallethistory.Summary, error) {
	f.gotCred, f.gotAddress = cred, address
	return f.summary, f.err
}

func runCommand(t *testing.T, cmd *cli.Command, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Commands: []*cli.Command{cmd},
	}

	return app.Run(context.Background(), append([]string{"adawatch"}, args...))
}

func TestStartPipelineCommand(t *testing.T) {
	t.Run("carries the expected metadata", func(t *testing.T) {
		cmd := startPipelineCommand(&fakeLiveview{})

		assert.Equal(t, "start", cmd.Name)
		assert.Empty(t, cmd.Flags)
		assert.NotNil(t, cmd.Action)
	})

	t.Run("propagates a pipeline start failure", func(t *testing.T) {
		lv := &fakeLiveview{startErr: assert.AnError}

		err := runCommand(t, startPipelineCommand(lv), "start")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestWalletLoginCommand(t *testing.T) {
	t.Run("logs in with the flag address", func(t *testing.T) {
		wa := &fakeWalletauth{cred: walletauth.Credential{Token: "bearer-token"}}

		err := runCommand(t, walletLoginCommand(wa), "login", "--address", "addr1qxy")
		require.NoError(t, err)

		assert.Equal(t, "addr1qxy", wa.gotAddress)
	})

	t.Run("requires the address flag", func(t *testing.T) {
		err := runCommand(t, walletLoginCommand(&fakeWalletauth{}), "login")

		assert.Error(t, err)
	})

	t.Run("propagates login failures", func(t *testing.T) {
		wa := &fakeWalletauth{err: walletauth.ErrSignatureRejected}

		err := runCommand(t, walletLoginCommand(wa), "login", "--address", "addr1qxy")
		assert.ErrorIs(t, err, walletauth.ErrSignatureRejected)
	})
}

func TestWalletHistoryCommand(t *testing.T) {
	t.Run("authenticates and forwards the paging flags", func(t *testing.T) {
		wa := &fakeWalletauth{cred: walletauth.Credential{Token: "bearer-token"}}
		wh := &fakeWallethistory{}

		err := runCommand(t, walletHistoryCommand(wa, wh),
			"history", "--address", "addr1qxy", "--page", "3", "--count", "25")
		require.NoError(t, err)

		assert.Equal(t, "bearer-token", wh.gotCred.Token)
		assert.Equal(t, "addr1qxy", wh.gotAddress)
		assert.Equal(t, 3, wh.gotPage)
		assert.Equal(t, 25, wh.gotSize)
	})

	t.Run("defaults to the first page of ten", func(t *testing.T) {
		wh := &fakeWallethistory{}

		err := runCommand(t, walletHistoryCommand(&fakeWalletauth{}, wh),
			"history", "--address", "addr1qxy")
		require.NoError(t, err)

		assert.Equal(t, 1, wh.gotPage)
		assert.Equal(t, 10, wh.gotSize)
	})

	t.Run("stops when login fails", func(t *testing.T) {
		wa := &fakeWalletauth{err: assert.AnError}
		wh := &fakeWallethistory{}

		err := runCommand(t, walletHistoryCommand(wa, wh), "history", "--address", "addr1qxy")
		require.ErrorIs(t, err, assert.AnError)

		assert.Empty(t, wh.gotAddress, "the archive must not be queried without a credential")
	})
}

func TestWalletSummaryCommand(t *testing.T) {
	t.Run("authenticates and queries the summary", func(t *testing.T) {
		wa := &fakeWalletauth{cred: walletauth.Credential{Token: "bearer-token"}}
		wh := &fakeWallethistory{summary: wallethistory.Summary{Balance: "42"}}

		err := runCommand(t, walletSummaryCommand(wa, wh), "summary", "--address", "addr1qxy")
		require.NoError(t, err)

		assert.Equal(t, "bearer-token", wh.gotCred.Token)
		assert.Equal(t, "addr1qxy", wh.gotAddress)
	})

	t.Run("propagates archive failures", func(t *testing.T) {
		wh := &fakeWallethistory{err: assert.AnError}

		err := runCommand(t, walletSummaryCommand(&fakeWalletauth{}, wh), "summary", "--address", "addr1qxy")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
