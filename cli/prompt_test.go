// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/ledger"
)

func TestValidateBool(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{input: "y"},
		{input: "N"},
		{input: "", err: ErrInputEmpty},
		{input: "yes", err: ErrInvalidChoice},
	}
	for _, tt := range tests {
		require.ErrorIs(t, validateBool(tt.input), tt.err)
	}
}

func TestAddressArg(t *testing.T) {
	require := require.New(t)

	addr, err := AddressArg("counter", []string{" " + ledger.DefaultCounterProgramID.String()})
	require.NoError(err)
	require.Equal(ledger.DefaultCounterProgramID, addr)

	_, err = AddressArg("counter", []string{""})
	require.ErrorIs(err, ErrInputEmpty)

	_, err = AddressArg("counter", []string{"0x1234"})
	require.ErrorIs(err, codec.ErrInvalidAddress)

	require.NoError(ConfirmOverwrite("id.json", true))
}
