// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/near/borsh-go"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/program"
	"github.com/ava-labs/countervm/state"
)

// Account is the persisted record of an address.
type Account struct {
	Owner      codec.Address `json:"owner"`
	Lamports   uint64        `json:"lamports"`
	Data       []byte        `json:"data"`
	Executable bool          `json:"executable"`
}

// Empty reports whether a is indistinguishable from an address that was
// never written.
func (a *Account) Empty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && !a.Executable && a.Owner == SystemProgramID
}

func (a *Account) info(addr codec.Address) *program.AccountInfo {
	return &program.AccountInfo{
		Address:    addr,
		Owner:      a.Owner,
		Lamports:   a.Lamports,
		Data:       bytes.Clone(a.Data),
		Executable: a.Executable,
	}
}

func (a *Account) clone() *Account {
	c := *a
	c.Data = bytes.Clone(a.Data)
	return &c
}

func newAccount() *Account {
	return &Account{Owner: SystemProgramID}
}

// GetAccount returns the record stored for addr. Addresses that were never
// written read as an empty system-owned account.
func GetAccount(ctx context.Context, im state.Immutable, addr codec.Address) (*Account, error) {
	v, err := im.GetValue(ctx, state.AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return newAccount(), nil
	}
	if err != nil {
		return nil, err
	}
	a := new(Account)
	if err := borsh.Deserialize(a, v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAccountState, addr, err)
	}
	return a, nil
}

// PutAccount stores a. Empty accounts are removed.
func PutAccount(ctx context.Context, mu state.Mutable, addr codec.Address, a *Account) error {
	k := state.AccountKey(addr)
	if a.Empty() {
		return mu.Remove(ctx, k)
	}
	v, err := borsh.Serialize(*a)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, k, v)
}
