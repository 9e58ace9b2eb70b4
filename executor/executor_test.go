// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"sync"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/state"
)

// Run several times to catch non-determinism
const numIterations = 10

type recorder struct {
	completed []int
	l         sync.Mutex
}

func (r *recorder) add(i int) {
	r.l.Lock()
	r.completed = append(r.completed, i)
	r.l.Unlock()
}

func uniqueKeys(n int, perm state.Permissions) state.Keys {
	s := make(state.Keys, n+1)
	for k := 0; k < n; k++ {
		s.Add(ids.GenerateTestID().String(), perm)
	}
	return s
}

type countingMetrics struct {
	blocked    int
	executable int
}

func (c *countingMetrics) RecordBlocked() {
	c.blocked++
}

func (c *countingMetrics) RecordExecutable() {
	c.executable++
}

func TestExecutorNoConflicts(t *testing.T) {
	require := require.New(t)

	var (
		r = &recorder{}
		m = &countingMetrics{}
		e = New(100, 4, m)
	)
	for i := 0; i < 100; i++ {
		ti := i
		e.Run(uniqueKeys(i+1, state.Write), func() error {
			r.add(ti)
			return nil
		})
	}
	require.NoError(e.Wait())
	require.Len(r.completed, 100)
	require.Equal(100, m.executable)
	require.Zero(m.blocked)
}

func TestExecutorSimpleConflict(t *testing.T) {
	for j := 0; j < numIterations; j++ {
		var (
			require     = require.New(t)
			conflictKey = ids.GenerateTestID().String()
			r           = &recorder{}
			e           = New(100, 4, nil)
			slow        = make(chan struct{})
		)
		for i := 0; i < 100; i++ {
			s := uniqueKeys(i+1, state.Write)
			if i%10 == 0 {
				s.Add(conflictKey, state.Write)
			}
			ti := i
			e.Run(s, func() error {
				if ti == 0 {
					<-slow
				}
				r.add(ti)
				return nil
			})
		}
		close(slow)
		require.NoError(e.Wait())

		var order []int
		for _, c := range r.completed {
			if c%10 == 0 {
				order = append(order, c)
			}
		}
		require.Equal([]int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}, order)
	}
}

// W->R->R->...W->R->R->...
func TestWriteThenReadRepeated(t *testing.T) {
	for j := 0; j < numIterations; j++ {
		var (
			require     = require.New(t)
			conflictKey = ids.GenerateTestID().String()
			r           = &recorder{}
			e           = New(100, 4, nil)
			slow        = make(chan struct{})
		)
		for i := 0; i < 100; i++ {
			s := uniqueKeys(i+1, state.Write)
			if i == 0 || i == 49 {
				s.Add(conflictKey, state.Write)
			} else {
				s.Add(conflictKey, state.Read)
			}
			ti := i
			e.Run(s, func() error {
				if ti == 0 {
					<-slow
				}
				r.add(ti)
				return nil
			})
		}
		close(slow)
		require.NoError(e.Wait())
		require.Len(r.completed, 100)
		require.Equal(0, r.completed[0])
		// 1..48 run in parallel
		require.Equal(49, r.completed[49])
	}
}

// R->R->W->R->W->R->R...
func TestReadThenWriteRepeated(t *testing.T) {
	for j := 0; j < numIterations; j++ {
		var (
			require     = require.New(t)
			conflictKey = ids.GenerateTestID().String()
			r           = &recorder{}
			e           = New(100, 4, nil)
			slow        = make(chan struct{})
		)
		for i := 0; i < 100; i++ {
			s := uniqueKeys(i+1, state.Write)
			if i == 10 || i == 12 {
				s.Add(conflictKey, state.Write)
			} else {
				s.Add(conflictKey, state.Read)
			}
			ti := i
			e.Run(s, func() error {
				if ti == 10 {
					<-slow
				}
				r.add(ti)
				return nil
			})
		}
		close(slow)
		require.NoError(e.Wait())
		require.Len(r.completed, 100)
		require.Equal([]int{10, 11, 12}, r.completed[10:13])
	}
}

func TestEarlyExit(t *testing.T) {
	var (
		require     = require.New(t)
		conflictKey = ids.GenerateTestID().String()
		r           = &recorder{}
		e           = New(500, 4, nil)
		terr        = errors.New("uh oh")
	)
	for i := 0; i < 500; i++ {
		s := uniqueKeys(1, state.Write)
		s.Add(conflictKey, state.Write)
		ti := i
		e.Run(s, func() error {
			r.add(ti)
			if ti == 200 {
				return terr
			}
			return nil
		})
	}
	require.ErrorIs(e.Wait(), terr)
	require.Len(r.completed, 201)
}

func TestStop(t *testing.T) {
	var (
		require     = require.New(t)
		conflictKey = ids.GenerateTestID().String()
		r           = &recorder{}
		e           = New(500, 4, nil)
	)
	for i := 0; i < 500; i++ {
		s := uniqueKeys(1, state.Read)
		s.Add(conflictKey, state.Write)
		ti := i
		e.Run(s, func() error {
			r.add(ti)
			if ti == 200 {
				e.Stop()
			}
			return nil
		})
	}
	require.ErrorIs(e.Wait(), ErrStopped)
	require.Len(r.completed, 201)
}

func TestTooManyTasks(t *testing.T) {
	require := require.New(t)

	e := New(1, 1, nil)
	e.Run(uniqueKeys(1, state.Write), func() error { return nil })
	e.Run(uniqueKeys(1, state.Write), func() error { return nil })
	require.ErrorContains(e.Wait(), "too many transactions")
}
