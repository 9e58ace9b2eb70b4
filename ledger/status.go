// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"errors"
	"fmt"

	"github.com/ava-labs/countervm/program"
)

type TxState uint8

const (
	Pending TxState = iota
	// Succeeded and Failed transactions were included and paid their fee.
	Succeeded
	Failed
	// Dropped transactions were never executed.
	Dropped
)

var txStateNames = []string{"pending", "succeeded", "failed", "dropped"}

func (s TxState) String() string {
	if int(s) < len(txStateNames) {
		return txStateNames[s]
	}
	return "unknown"
}

func (s TxState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TxState) UnmarshalText(b []byte) error {
	for i, name := range txStateNames {
		if name == string(b) {
			*s = TxState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown transaction state %q", b)
}

// Final reports whether the state will no longer change.
func (s TxState) Final() bool {
	return s != Pending
}

type Status struct {
	State  TxState `json:"state"`
	Height uint64  `json:"height"`
	Fee    uint64  `json:"fee"`

	// Set when the transaction failed or was dropped. Code is the
	// program.Error of the failure, or 0 when the failure was not a
	// program error.
	Instruction int    `json:"instruction"`
	Code        uint32 `json:"code"`
	Message     string `json:"message"`
}

func failedStatus(state TxState, height uint64, fee uint64, instruction int, err error) *Status {
	s := &Status{
		State:       state,
		Height:      height,
		Fee:         fee,
		Instruction: instruction,
		Message:     err.Error(),
	}
	var perr program.Error
	if errors.As(err, &perr) {
		s.Code = perr.Code()
	}
	return s
}

// Err rebuilds the failure of a transaction so it can be matched with
// errors.Is. It is nil unless the transaction failed or was dropped.
func (s *Status) Err() error {
	if s.State != Failed && s.State != Dropped {
		return nil
	}
	if perr, ok := program.FromCode(s.Code); ok {
		return fmt.Errorf("%w: instruction %d: %s", perr, s.Instruction, s.Message)
	}
	return fmt.Errorf("transaction %s: %s", s.State, s.Message)
}
