// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrBlockhashNotFound    = errors.New("blockhash not found")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrMempoolFull          = errors.New("mempool full")
	ErrTxNotFound           = errors.New("transaction not found")
	ErrAirdropTooLarge      = errors.New("airdrop exceeds faucet limit")
	ErrInvalidGenesis       = errors.New("invalid genesis")
	ErrInvalidConfig        = errors.New("invalid config")
	ErrBlockExecution       = errors.New("block execution failed")
)
