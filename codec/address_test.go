// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	addrID := ids.GenerateTestID()

	addr := CreateAddress(ProgramID, addrID)
	require.Equal(ProgramID, addr.TypeID())
	require.Equal(addrID, addr.ID())

	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(ED25519ID, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)
	require.True(strings.HasPrefix(string(addrJSONBytes), `"0x`))

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestToAddress(t *testing.T) {
	addr := CreateAddress(SystemID, ids.GenerateTestID())

	tests := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{
			name:  "with prefix",
			input: addr.String(),
		},
		{
			name:  "without prefix",
			input: strings.TrimPrefix(addr.String(), "0x"),
		},
		{
			name:        "short",
			input:       "0x0102",
			expectedErr: ErrInvalidAddress,
		},
		{
			name:        "not hex",
			input:       "0xzz",
			expectedErr: ErrInvalidAddress,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			parsed, err := ToAddress(tt.input)
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr == nil {
				require.Equal(addr, parsed)
			}
		})
	}
}
