// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package driver

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/runtime"
)

var (
	_ Client = (*ledger.Local)(nil)
	_ Client = (*rpc.JSONRPCClient)(nil)
)

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_client.go . Client

// Client is the ledger as seen by the driver.
type Client interface {
	LatestBlockhash(ctx context.Context) (ids.ID, error)
	Balance(ctx context.Context, addr codec.Address) (uint64, error)
	Account(ctx context.Context, addr codec.Address) (*runtime.Account, error)
	MinimumBalanceForRentExemption(ctx context.Context, space uint64) (uint64, error)
	RequestAirdrop(ctx context.Context, to codec.Address, lamports uint64) (ids.ID, error)
	SubmitTx(ctx context.Context, tx *chain.Transaction) (ids.ID, error)
	TxStatus(ctx context.Context, txID ids.ID) (*ledger.Status, error)
}
