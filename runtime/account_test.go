// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
)

var _ state.Mutable = memoryStorage(nil)

// memoryStorage is a map-backed [state.Mutable] that copies values in and
// out.
type memoryStorage map[string][]byte

func (m memoryStorage) GetValue(_ context.Context, key []byte) ([]byte, error) {
	v, ok := m[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m memoryStorage) Insert(_ context.Context, key []byte, value []byte) error {
	m[string(key)] = slices.Clone(value)
	return nil
}

func (m memoryStorage) Remove(_ context.Context, key []byte) error {
	delete(m, string(key))
	return nil
}

func TestAccountStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	mu := memoryStorage{}
	addr := codec.CreateAddress(codec.ED25519ID, ids.GenerateTestID())

	a, err := GetAccount(ctx, mu, addr)
	require.NoError(err)
	require.True(a.Empty())
	require.Equal(SystemProgramID, a.Owner)

	owner := codec.CreateAddress(codec.ProgramID, ids.GenerateTestID())
	stored := &Account{Owner: owner, Lamports: 10, Data: []byte{1, 0, 0, 0, 0}}
	require.NoError(PutAccount(ctx, mu, addr, stored))
	require.Len(mu, 1)

	a, err = GetAccount(ctx, state.Immutable(mu), addr)
	require.NoError(err)
	require.Equal(stored, a)

	// Writing an empty account deletes the record.
	require.NoError(PutAccount(ctx, mu, addr, newAccount()))
	require.Empty(mu)
}

func TestCorruptAccount(t *testing.T) {
	addr := codec.CreateAddress(codec.ED25519ID, ids.GenerateTestID())
	im := memoryStorage{string(state.AccountKey(addr)): {1, 2, 3}}

	_, err := GetAccount(context.Background(), im, addr)
	require.ErrorIs(t, err, ErrInvalidAccountState)
}
