// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"sync"

	"go.uber.org/atomic"

	"github.com/ava-labs/countervm/state"
)

// Executor sequences the concurrent execution of
// tasks with arbitrary conflicts on-the-fly.
//
// A task that writes a key runs after every earlier task touching that key.
// A task that only reads a key runs after the last earlier writer of it, so
// readers of the same key may run concurrently. Tasks with no conflicts are
// executed immediately.
type Executor struct {
	metrics Metrics

	added int
	tasks []*task
	edges map[string]*edge
	sem   chan struct{}

	outstanding sync.WaitGroup

	err atomic.Error
}

// edge records who last touched a key.
type edge struct {
	writer  int // -1 until the key is written
	readers []int
}

// New creates a new [Executor] that runs at most [concurrency] tasks at a
// time. [metrics] may be nil.
func New(items, concurrency int, metrics Metrics) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{
		metrics: metrics,
		tasks:   make([]*task, items),
		edges:   make(map[string]*edge, items*2),
		sem:     make(chan struct{}, concurrency),
	}
}

type task struct {
	f func() error

	l        sync.Mutex
	waiters  []*sync.WaitGroup
	executed bool
}

// Run executes [f] after all previously enqueued [f] with
// overlapping [conflicts] are executed.
//
// Run is not safe to call concurrently.
func (e *Executor) Run(conflicts state.Keys, f func() error) {
	// Ensure too many transactions not enqueued
	if e.added >= len(e.tasks) {
		e.err.CompareAndSwap(nil, errors.New("too many transactions created"))
		return
	}

	// Generate task
	id := e.added
	e.added++
	t := &task{f: f}
	e.tasks[id] = t
	e.outstanding.Add(1)

	// Record dependencies
	deps := make(map[int]struct{})
	for k, perm := range conflicts {
		ed, ok := e.edges[k]
		if !ok {
			ed = &edge{writer: -1}
			e.edges[k] = ed
		}
		if perm.Has(state.Write) {
			if ed.writer >= 0 {
				deps[ed.writer] = struct{}{}
			}
			for _, r := range ed.readers {
				deps[r] = struct{}{}
			}
			ed.writer = id
			ed.readers = nil
			continue
		}
		if ed.writer >= 0 {
			deps[ed.writer] = struct{}{}
		}
		ed.readers = append(ed.readers, id)
	}
	wg := sync.WaitGroup{}
	for dep := range deps {
		dt := e.tasks[dep]
		dt.l.Lock()
		if !dt.executed {
			wg.Add(1)
			dt.waiters = append(dt.waiters, &wg)
		}
		dt.l.Unlock()
	}
	e.record(len(deps) > 0)

	// Wait for the scheduler to execute us
	go func() {
		// Block until our dependencies have been executed
		wg.Wait()

		// Ensure we unblock our dependencies
		defer func() {
			t.l.Lock()
			for _, w := range t.waiters {
				w.Done()
			}
			t.waiters = nil
			t.executed = true
			t.l.Unlock()
			e.outstanding.Done()
		}()

		// Execute task once we aren't too busy
		e.sem <- struct{}{}
		defer func() { <-e.sem }()

		// Stop early if executor is stopped
		if e.err.Load() != nil {
			return
		}
		if err := t.f(); err != nil {
			e.err.CompareAndSwap(nil, err)
			return
		}
	}()
}

func (e *Executor) record(blocked bool) {
	if e.metrics == nil {
		return
	}
	if blocked {
		e.metrics.RecordBlocked()
	} else {
		e.metrics.RecordExecutable()
	}
}

func (e *Executor) Stop() {
	e.err.CompareAndSwap(nil, ErrStopped)
}

// Wait returns as soon as all enqueued [f] are executed.
//
// You should not call [Run] after [Wait] is called.
func (e *Executor) Wait() error {
	e.outstanding.Wait()
	return e.err.Load()
}
