// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrInputEmpty    = errors.New("input is empty")
	ErrInvalidChoice = errors.New("invalid choice")
	ErrAborted       = errors.New("aborted")
)
