// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"

	"github.com/ava-labs/avalanchego/utils/buffer"
	"github.com/ava-labs/avalanchego/utils/set"
)

var ErrInvalidWindow = errors.New("window must be greater than 0")

// Recent remembers the [window] newest distinct values in insertion order
// and answers membership queries over them.
//
// Recent is not thread-safe and requires the caller synchronize usage.
type Recent[T comparable] struct {
	order   buffer.Deque[T]
	members set.Set[T]
	window  int
}

func NewRecent[T comparable](window int) (*Recent[T], error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}
	return &Recent[T]{
		order:   buffer.NewUnboundedDeque[T](window + 1), // +1 so we never resize
		members: set.NewSet[T](window),
		window:  window,
	}, nil
}

// Insert records v as the newest value. Values already present are left
// where they are. When the window is full the oldest value is forgotten
// and returned.
func (r *Recent[T]) Insert(v T) (T, bool) {
	var evicted T
	if r.members.Contains(v) {
		return evicted, false
	}
	ok := false
	if r.order.Len() == r.window {
		evicted, ok = r.order.PopLeft()
		r.members.Remove(evicted)
	}
	r.order.PushRight(v)
	r.members.Add(v)
	return evicted, ok
}

func (r *Recent[T]) Contains(v T) bool {
	return r.members.Contains(v)
}

// Last returns the newest value, or false if nothing was inserted.
func (r *Recent[T]) Last() (T, bool) {
	return r.order.PeekRight()
}

// Items returns the values from oldest to newest.
func (r *Recent[T]) Items() []T {
	return r.order.List()
}

func (r *Recent[T]) Len() int {
	return r.order.Len()
}
