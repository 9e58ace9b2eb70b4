// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"

	"github.com/ava-labs/countervm/codec"
)

// Program is native logic deployed under a fixed identity. The host calls
// Process once per instruction addressed to ID.
type Program interface {
	ID() codec.Address
	Process(ctx context.Context, c *Context) error
}
