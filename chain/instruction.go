// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/ava-labs/countervm/codec"

// AccountMeta references an account an instruction reads or writes.
type AccountMeta struct {
	Address    codec.Address `json:"address"`
	IsSigner   bool          `json:"isSigner"`
	IsWritable bool          `json:"isWritable"`
}

// Instruction invokes ProgramID with an ordered list of accounts and an
// opaque payload interpreted by the program.
type Instruction struct {
	ProgramID codec.Address `json:"programID"`
	Accounts  []AccountMeta `json:"accounts"`
	Data      []byte        `json:"data"`
}
