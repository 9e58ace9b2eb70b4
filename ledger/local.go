// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/runtime"
)

// Local serves the client API from an in-process ledger.
type Local struct {
	l *Ledger
}

func NewLocal(l *Ledger) *Local {
	return &Local{l: l}
}

func (c *Local) LatestBlockhash(context.Context) (ids.ID, error) {
	return c.l.LatestBlockhash(), nil
}

func (c *Local) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	return c.l.GetBalance(ctx, addr)
}

func (c *Local) Account(ctx context.Context, addr codec.Address) (*runtime.Account, error) {
	return c.l.GetAccount(ctx, addr)
}

func (c *Local) MinimumBalanceForRentExemption(_ context.Context, space uint64) (uint64, error) {
	return c.l.MinimumBalanceForRentExemption(space), nil
}

func (c *Local) RequestAirdrop(ctx context.Context, to codec.Address, lamports uint64) (ids.ID, error) {
	return c.l.RequestAirdrop(ctx, to, lamports)
}

func (c *Local) SubmitTx(ctx context.Context, tx *chain.Transaction) (ids.ID, error) {
	return c.l.Submit(ctx, tx)
}

func (c *Local) TxStatus(_ context.Context, id ids.ID) (*Status, error) {
	return c.l.Status(id)
}
