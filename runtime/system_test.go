// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/program"
)

func TestMinimumBalance(t *testing.T) {
	require := require.New(t)

	rent := DefaultRent()
	require.Equal(uint64(128*3_480*2), rent.MinimumBalance(0))
	require.Equal(uint64(925_680), rent.MinimumBalance(5))
}

func TestParseSystemInstruction(t *testing.T) {
	require := require.New(t)

	owner := codec.CreateAddress(codec.ProgramID, ids.ID{3})
	ix := NewCreateAccountInstruction(codec.EmptyAddress, codec.EmptyAddress, 10, 5, owner)
	parsed, err := ParseSystemInstruction(ix.Data)
	require.NoError(err)
	require.Equal(&SystemInstruction{Kind: SystemCreateAccount, Lamports: 10, Space: 5, Owner: owner}, parsed)

	_, err = ParseSystemInstruction(ix.Data[1:])
	require.ErrorIs(err, program.ErrInvalidInstructionData)
}

func TestSystemProgram(t *testing.T) {
	var (
		owner      = codec.CreateAddress(codec.ProgramID, ids.ID{3})
		rent       = DefaultRent()
		minBalance = rent.MinimumBalance(5)
	)
	wallet := func(lamports uint64, signer bool) *program.AccountInfo {
		return &program.AccountInfo{
			Address:    codec.CreateAddress(codec.ED25519ID, ids.GenerateTestID()),
			Owner:      SystemProgramID,
			Lamports:   lamports,
			IsSigner:   signer,
			IsWritable: true,
		}
	}

	tests := []struct {
		name     string
		ix       *SystemInstruction
		accounts []*program.AccountInfo
		err      error
		check    func(*require.Assertions, []*program.AccountInfo)
	}{
		{
			name:     "create account",
			ix:       &SystemInstruction{Kind: SystemCreateAccount, Lamports: minBalance, Space: 5, Owner: owner},
			accounts: []*program.AccountInfo{wallet(minBalance*2, true), wallet(0, true)},
			check: func(require *require.Assertions, accounts []*program.AccountInfo) {
				require.Equal(minBalance, accounts[0].Lamports)
				require.Equal(minBalance, accounts[1].Lamports)
				require.Equal(owner, accounts[1].Owner)
				require.Equal(make([]byte, 5), accounts[1].Data)
			},
		},
		{
			name:     "create below rent exemption",
			ix:       &SystemInstruction{Kind: SystemCreateAccount, Lamports: minBalance - 1, Space: 5, Owner: owner},
			accounts: []*program.AccountInfo{wallet(minBalance*2, true), wallet(0, true)},
			err:      program.ErrInsufficientFundsForRent,
		},
		{
			name:     "create without funds",
			ix:       &SystemInstruction{Kind: SystemCreateAccount, Lamports: minBalance, Space: 5, Owner: owner},
			accounts: []*program.AccountInfo{wallet(minBalance-1, true), wallet(0, true)},
			err:      program.ErrInsufficientFunds,
		},
		{
			name:     "create existing account",
			ix:       &SystemInstruction{Kind: SystemCreateAccount, Lamports: minBalance, Space: 5, Owner: owner},
			accounts: []*program.AccountInfo{wallet(minBalance*2, true), wallet(1, true)},
			err:      program.ErrAccountAlreadyInUse,
		},
		{
			name:     "create unsigned account",
			ix:       &SystemInstruction{Kind: SystemCreateAccount, Lamports: minBalance, Space: 5, Owner: owner},
			accounts: []*program.AccountInfo{wallet(minBalance*2, true), wallet(0, false)},
			err:      program.ErrMissingRequiredSignature,
		},
		{
			name:     "create too large",
			ix:       &SystemInstruction{Kind: SystemCreateAccount, Lamports: minBalance, Space: MaxPermittedDataLength + 1, Owner: owner},
			accounts: []*program.AccountInfo{wallet(minBalance*2, true), wallet(0, true)},
			err:      program.ErrInvalidArgument,
		},
		{
			name:     "transfer",
			ix:       &SystemInstruction{Kind: SystemTransfer, Lamports: 7},
			accounts: []*program.AccountInfo{wallet(10, true), wallet(1, false)},
			check: func(require *require.Assertions, accounts []*program.AccountInfo) {
				require.Equal(uint64(3), accounts[0].Lamports)
				require.Equal(uint64(8), accounts[1].Lamports)
			},
		},
		{
			name:     "transfer unsigned",
			ix:       &SystemInstruction{Kind: SystemTransfer, Lamports: 7},
			accounts: []*program.AccountInfo{wallet(10, false), wallet(1, false)},
			err:      program.ErrMissingRequiredSignature,
		},
		{
			name:     "transfer missing account",
			ix:       &SystemInstruction{Kind: SystemTransfer, Lamports: 7},
			accounts: []*program.AccountInfo{wallet(10, true)},
			err:      program.ErrNotEnoughAccountKeys,
		},
		{
			name:     "unknown kind",
			ix:       &SystemInstruction{Kind: 9},
			accounts: []*program.AccountInfo{wallet(10, true), wallet(1, false)},
			err:      program.ErrInvalidInstructionData,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			data := newSystemInstruction(tt.ix).Data
			err := NewSystemProgram(logging.NoLog{}, rent).Process(context.Background(), &program.Context{
				ProgramID: SystemProgramID,
				Accounts:  tt.accounts,
				Data:      data,
			})
			require.ErrorIs(err, tt.err)
			if tt.check != nil {
				tt.check(require, tt.accounts)
			}
		})
	}
}
