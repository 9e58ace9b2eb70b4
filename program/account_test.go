// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextAccount(t *testing.T) {
	require := require.New(t)

	first := &AccountInfo{Lamports: 1}
	second := &AccountInfo{Lamports: 2}
	c := &Context{Accounts: []*AccountInfo{first, second}}

	a, err := c.NextAccount()
	require.NoError(err)
	require.Same(first, a)
	require.Equal(1, c.Remaining())

	a, err = c.NextAccount()
	require.NoError(err)
	require.Same(second, a)

	_, err = c.NextAccount()
	require.ErrorIs(err, ErrNotEnoughAccountKeys)
	require.Zero(c.Remaining())
}

func TestErrorCodes(t *testing.T) {
	require := require.New(t)

	for e := range errorNames {
		parsed, ok := FromCode(e.Code())
		require.True(ok)
		require.Equal(e, parsed)
	}

	_, ok := FromCode(0)
	require.False(ok)
	require.Equal("program error 999", Error(999).Error())

	wrapped := fmt.Errorf("%w: count is 0", ErrInvalidArgument)
	require.ErrorIs(wrapped, ErrInvalidArgument)
	require.False(errors.Is(wrapped, ErrArithmeticOverflow))
}
