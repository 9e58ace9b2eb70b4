// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/program"
)

// StateLen is the size of a counter account:
//
//	[0]    is_initialized (0x00 false, nonzero true)
//	[1:5]  count, little-endian uint32
const StateLen = consts.ByteLen + consts.Uint32Len

// State is the counter persisted in a program-owned account.
type State struct {
	IsInitialized bool
	Count         uint32
}

// Unpack decodes a counter account. A zeroed buffer is a valid,
// uninitialized counter.
func Unpack(b []byte) (*State, error) {
	if len(b) != StateLen {
		return nil, fmt.Errorf("%w: expected %d bytes but got %d", program.ErrInvalidAccountData, StateLen, len(b))
	}
	return &State{
		IsInitialized: b[0] != 0,
		Count:         binary.LittleEndian.Uint32(b[consts.ByteLen:]),
	}, nil
}

// Pack returns the canonical encoding of s.
func (s *State) Pack() []byte {
	b := make([]byte, StateLen)
	s.put(b)
	return b
}

// PackInto overwrites dst with the encoding of s.
func (s *State) PackInto(dst []byte) error {
	if len(dst) != StateLen {
		return fmt.Errorf("%w: expected %d bytes but got %d", program.ErrInvalidAccountData, StateLen, len(dst))
	}
	s.put(dst)
	return nil
}

func (s *State) put(b []byte) {
	if s.IsInitialized {
		b[0] = 1
	} else {
		b[0] = 0
	}
	binary.LittleEndian.PutUint32(b[consts.ByteLen:], s.Count)
}
