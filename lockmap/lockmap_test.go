// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	require := require.New(t)
	l := New(2)

	l.Lock("a")
	l.RLock("b")
	l.RLock("b")
	require.Equal(2, l.Locks())

	l.Unlock("a")
	require.Equal(1, l.Locks())
	l.RUnlock("b")
	l.RUnlock("b")
	require.Zero(l.Locks())
}

func TestWritersExclusive(t *testing.T) {
	require := require.New(t)
	l := New(1)

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("counter")
			defer l.Unlock("counter")
			counter++
		}()
	}
	wg.Wait()

	require.Equal(100, counter)
	require.Zero(l.Locks())
}

func TestUnlockUnknownPanics(t *testing.T) {
	require := require.New(t)
	l := New(0)
	require.Panics(func() { l.Unlock("missing") })
}
