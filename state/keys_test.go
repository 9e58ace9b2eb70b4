// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddPermissions(t *testing.T) {
	require := require.New(t)

	keys := Keys{}
	keys.Add("a", Read)
	require.True(keys["a"].Has(Read))
	require.False(keys["a"].Has(Write))

	// Permissions are unioned, never downgraded.
	keys.Add("a", Write)
	keys.Add("a", Read)
	require.True(keys["a"].Has(Write))
	require.True(keys["a"].Has(All))

	require.True(None.Has(None))
	require.False(None.Has(Read))
}

func TestKeysSorted(t *testing.T) {
	require := require.New(t)

	keys := Keys{"c": Read, "a": Write, "b": Read}
	require.Equal([]string{"a", "b", "c"}, keys.Sorted())
}
