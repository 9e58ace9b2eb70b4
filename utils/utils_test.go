// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/consts"
)

func TestParseBalance(t *testing.T) {
	tests := []struct {
		input    string
		expected uint64
		err      error
	}{
		{input: "1", expected: consts.LamportsPerCoin},
		{input: "0.1", expected: 100_000_000},
		{input: "0.000000001", expected: 1},
		{input: "2.5", expected: 2_500_000_000},
		{input: "-1", err: ErrInvalidBalance},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)

			lamports, err := ParseBalance(tt.input)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.expected, lamports)
		})
	}

	_, err := ParseBalance("coins")
	require.Error(t, err)
}

func TestFormatBalance(t *testing.T) {
	require := require.New(t)

	require.Equal("1.000000000", FormatBalance(consts.LamportsPerCoin))
	require.Equal("0.000925680", FormatBalance(925_680))
}

func TestRecent(t *testing.T) {
	require := require.New(t)

	r, err := NewRecent[int](2)
	require.NoError(err)

	_, ok := r.Last()
	require.False(ok)

	var evicted []int
	for _, v := range []int{1, 2, 2, 3, 4} {
		if e, ok := r.Insert(v); ok {
			evicted = append(evicted, e)
		}
	}
	last, ok := r.Last()
	require.True(ok)
	require.Equal(4, last)
	require.Equal([]int{3, 4}, r.Items())
	require.Equal([]int{1, 2}, evicted)
	require.Equal(2, r.Len())
	require.True(r.Contains(3))
	require.False(r.Contains(1))

	_, err = NewRecent[int](0)
	require.ErrorIs(err, ErrInvalidWindow)
}
