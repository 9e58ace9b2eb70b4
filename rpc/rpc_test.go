// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/programs/counter"
	"github.com/ava-labs/countervm/runtime"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/trace"
)

func newTestNode(t *testing.T) (*ledger.Ledger, string) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	l, err := ledger.New(
		context.Background(),
		logging.NoLog{},
		ledger.NewConfig(),
		state.NewMemoryDatabase(),
		trace.Noop("test"),
		registry,
	)
	require.NoError(err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s := server.New(logging.NoLog{}, listener, server.NewHTTPConfig(), []string{"*"}, time.Second)
	require.NoError(Register(s, NewJSONRPCServer(logging.NoLog{}, trace.Noop("test"), l), registry))

	done := make(chan error, 1)
	go func() {
		done <- s.Dispatch()
	}()
	t.Cleanup(func() {
		require.NoError(s.Shutdown())
		require.NoError(<-done)
	})
	return l, "http://" + listener.Addr().String()
}

func build(t *testing.T, l *ledger.Ledger) {
	_, err := l.BuildBlock(context.Background())
	require.NoError(t, err)
}

func TestClientRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	l, uri := newTestNode(t)
	cli := NewJSONRPCClient(uri)

	ok, err := cli.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	blockhash, err := cli.LatestBlockhash(ctx)
	require.NoError(err)
	require.Equal(l.LatestBlockhash(), blockhash)

	key, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	airdropID, err := cli.RequestAirdrop(ctx, key.Address(), consts.LamportsPerCoin)
	require.NoError(err)

	status, err := cli.TxStatus(ctx, airdropID)
	require.NoError(err)
	require.Equal(ledger.Pending, status.State)

	build(t, l)
	status, err = cli.TxStatus(ctx, airdropID)
	require.NoError(err)
	require.Equal(ledger.Succeeded, status.State)

	balance, err := cli.Balance(ctx, key.Address())
	require.NoError(err)
	require.Equal(consts.LamportsPerCoin, balance)

	space := uint64(counter.StateLen)
	minBalance, err := cli.MinimumBalanceForRentExemption(ctx, space)
	require.NoError(err)
	require.Equal(l.MinimumBalanceForRentExemption(space), minBalance)

	counterKey, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	blockhash, err = cli.LatestBlockhash(ctx)
	require.NoError(err)
	tx := chain.NewTx(blockhash, key.Address(),
		runtime.NewCreateAccountInstruction(key.Address(), counterKey.Address(), minBalance, space, l.CounterProgramID()),
		counter.NewInitializeInstruction(l.CounterProgramID(), counterKey.Address()),
		counter.NewIncrementInstruction(l.CounterProgramID(), counterKey.Address()),
	)
	require.NoError(tx.Sign(key, counterKey))
	txID, err := cli.SubmitTx(ctx, tx)
	require.NoError(err)
	expectedID, err := tx.ID()
	require.NoError(err)
	require.Equal(expectedID, txID)

	_, err = cli.SubmitTx(ctx, tx)
	require.ErrorIs(err, ledger.ErrDuplicateTransaction)

	build(t, l)
	status, err = cli.TxStatus(ctx, txID)
	require.NoError(err)
	require.NoError(status.Err())

	a, err := cli.Account(ctx, counterKey.Address())
	require.NoError(err)
	require.Equal(l.CounterProgramID(), a.Owner)
	s, err := counter.Unpack(a.Data)
	require.NoError(err)
	require.Equal(uint32(1), s.Count)
}

func TestClientErrors(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	l, uri := newTestNode(t)
	cli := NewJSONRPCClient(uri)

	_, err := cli.TxStatus(ctx, ids.GenerateTestID())
	require.ErrorIs(err, ledger.ErrTxNotFound)

	key, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	_, err = cli.RequestAirdrop(ctx, key.Address(), ledger.NewConfig().FaucetLamports+1)
	require.ErrorIs(err, ledger.ErrAirdropTooLarge)

	tx := chain.NewTx(ids.GenerateTestID(), key.Address(),
		runtime.NewTransferInstruction(key.Address(), l.Faucet(), 1),
	)
	require.NoError(tx.Sign(key))
	_, err = cli.SubmitTx(ctx, tx)
	require.ErrorIs(err, ledger.ErrBlockhashNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	require := require.New(t)

	_, uri := newTestNode(t)
	resp, err := http.Get(uri + MetricsEndpoint)
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusOK, resp.StatusCode)
	require.Contains(string(body), "blocks_built")
}
