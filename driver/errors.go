// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package driver

import "errors"

var (
	ErrInvalidKeyFile     = errors.New("invalid key file")
	ErrConfirmTimeout     = errors.New("transaction not confirmed in time")
	ErrTransactionDropped = errors.New("transaction dropped")
	ErrNoPayer            = errors.New("payer not established")
	ErrInvalidCounter     = errors.New("account is not a counter")
)
