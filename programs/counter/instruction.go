// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"fmt"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/program"
)

// Opcode is the first byte of a counter instruction.
type Opcode uint8

const (
	OpInitialize Opcode = iota
	OpIncrement
	OpDecrement
)

func (o Opcode) String() string {
	switch o {
	case OpInitialize:
		return "initialize"
	case OpIncrement:
		return "increment"
	case OpDecrement:
		return "decrement"
	default:
		return fmt.Sprintf("opcode(%d)", uint8(o))
	}
}

// ParseInstruction decodes the opcode of an instruction payload. Bytes after
// the opcode are ignored.
func ParseInstruction(data []byte) (Opcode, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty payload", program.ErrInvalidInstructionData)
	}
	op := Opcode(data[0])
	switch op {
	case OpInitialize, OpIncrement, OpDecrement:
		return op, nil
	default:
		return 0, fmt.Errorf("%w: unknown opcode %d", program.ErrInvalidInstructionData, data[0])
	}
}

func newInstruction(programID codec.Address, counter codec.Address, op Opcode) chain.Instruction {
	return chain.Instruction{
		ProgramID: programID,
		Accounts: []chain.AccountMeta{
			{Address: counter, IsWritable: true},
		},
		Data: []byte{byte(op)},
	}
}

func NewInitializeInstruction(programID codec.Address, counter codec.Address) chain.Instruction {
	return newInstruction(programID, counter, OpInitialize)
}

func NewIncrementInstruction(programID codec.Address, counter codec.Address) chain.Instruction {
	return newInstruction(programID, counter, OpIncrement)
}

func NewDecrementInstruction(programID codec.Address, counter codec.Address) chain.Instruction {
	return newInstruction(programID, counter, OpDecrement)
}
