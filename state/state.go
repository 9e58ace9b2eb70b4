// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "context"

// Immutable reads account state. Reading a missing key returns
// database.ErrNotFound.
type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

// Mutable buffers or applies writes. Remove of a missing key is not an
// error.
type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}
