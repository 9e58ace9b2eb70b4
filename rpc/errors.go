// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"fmt"
	"strings"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/runtime"
)

// knownErrors are the rejections a client may want to match with
// errors.Is after they crossed the wire as plain messages.
var knownErrors = []error{
	ledger.ErrBlockhashNotFound,
	ledger.ErrDuplicateTransaction,
	ledger.ErrMempoolFull,
	ledger.ErrTxNotFound,
	ledger.ErrAirdropTooLarge,
	chain.ErrTransactionTooBig,
	chain.ErrNoInstructions,
	chain.ErrExtraBytes,
	runtime.ErrInvalidAccountState,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, known := range knownErrors {
		if strings.Contains(msg, known.Error()) {
			return fmt.Errorf("%w: %w", known, err)
		}
	}
	return err
}
