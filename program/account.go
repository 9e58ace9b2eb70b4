// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	"github.com/ava-labs/countervm/codec"
)

// AccountInfo is the view of an account handed to a program. Data is the
// account's mutable buffer; its length is fixed by the allocator.
type AccountInfo struct {
	Address    codec.Address
	Owner      codec.Address
	Lamports   uint64
	Data       []byte
	Executable bool

	IsSigner   bool
	IsWritable bool
}

// Context is a single instruction invocation.
type Context struct {
	// ProgramID is the identity of the program being executed.
	ProgramID codec.Address
	Accounts  []*AccountInfo
	Data      []byte

	next int
}

// NextAccount returns the next account in the invocation's account list.
func (c *Context) NextAccount() (*AccountInfo, error) {
	if c.next >= len(c.Accounts) {
		return nil, fmt.Errorf("%w: requested account %d of %d", ErrNotEnoughAccountKeys, c.next, len(c.Accounts))
	}
	a := c.Accounts[c.next]
	c.next++
	return a, nil
}

// Remaining returns the number of accounts not yet extracted.
func (c *Context) Remaining() int {
	return len(c.Accounts) - c.next
}
