// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "errors"

var (
	ErrDuplicateProgram    = errors.New("program already registered")
	ErrInsufficientFee     = errors.New("fee payer cannot cover transaction fee")
	ErrInvalidAccountState = errors.New("invalid account record")
)
