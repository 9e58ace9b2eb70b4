// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "fmt"

// Error is the kind of a program failure. Codes are stable so a failure can
// cross the RPC boundary and be matched with errors.Is on the other side.
type Error uint32

const (
	ErrInvalidArgument Error = iota + 1
	ErrInvalidInstructionData
	ErrInvalidAccountData
	ErrAccountAlreadyInitialized
	ErrNotEnoughAccountKeys
	ErrIncorrectProgramID
	ErrArithmeticOverflow
	ErrMissingRequiredSignature
	ErrInsufficientFunds
	ErrAccountDataTooSmall
	ErrExternalAccountDataModified
	ErrReadonlyDataModified
	ErrUnbalancedInstruction
	ErrAccountAlreadyInUse
	ErrUnsupportedProgramID
	ErrInsufficientFundsForRent
)

var errorNames = map[Error]string{
	ErrInvalidArgument:             "invalid argument",
	ErrInvalidInstructionData:      "invalid instruction data",
	ErrInvalidAccountData:          "invalid account data",
	ErrAccountAlreadyInitialized:   "account already initialized",
	ErrNotEnoughAccountKeys:        "not enough account keys",
	ErrIncorrectProgramID:          "incorrect program id",
	ErrArithmeticOverflow:          "arithmetic overflow",
	ErrMissingRequiredSignature:    "missing required signature",
	ErrInsufficientFunds:           "insufficient funds",
	ErrAccountDataTooSmall:         "account data too small",
	ErrExternalAccountDataModified: "instruction modified data of an account it does not own",
	ErrReadonlyDataModified:        "instruction modified a readonly account",
	ErrUnbalancedInstruction:       "sum of account balances changed",
	ErrAccountAlreadyInUse:         "account already in use",
	ErrUnsupportedProgramID:        "unsupported program id",
	ErrInsufficientFundsForRent:    "insufficient funds for rent",
}

func (e Error) Error() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("program error %d", uint32(e))
}

// Code returns the wire code of e.
func (e Error) Code() uint32 {
	return uint32(e)
}

// FromCode maps a wire code back to a known [Error].
func FromCode(code uint32) (Error, bool) {
	e := Error(code)
	_, ok := errorNames[e]
	return e, ok
}
