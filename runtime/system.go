// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/near/borsh-go"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/program"
)

const (
	SystemCreateAccount uint8 = iota
	SystemTransfer
)

const (
	// MaxPermittedDataLength bounds the space a single account may allocate.
	MaxPermittedDataLength = 10 * units.MiB

	systemInstructionLen = consts.ByteLen + 2*consts.Uint64Len + codec.AddressLen
)

// SystemProgramID owns every account that has not been assigned to a
// program.
var SystemProgramID = codec.CreateAddress(codec.SystemID, ids.Empty)

var _ program.Program = (*SystemProgram)(nil)

// SystemInstruction is the payload of a system program instruction. Space
// and Owner are ignored by transfers.
type SystemInstruction struct {
	Kind     uint8
	Lamports uint64
	Space    uint64
	Owner    codec.Address
}

func ParseSystemInstruction(data []byte) (*SystemInstruction, error) {
	if len(data) != systemInstructionLen {
		return nil, fmt.Errorf("%w: system instruction has %d bytes", program.ErrInvalidInstructionData, len(data))
	}
	ix := new(SystemInstruction)
	if err := borsh.Deserialize(ix, data); err != nil {
		return nil, fmt.Errorf("%w: %w", program.ErrInvalidInstructionData, err)
	}
	return ix, nil
}

// SystemProgram creates accounts and moves lamports between system-owned
// accounts.
type SystemProgram struct {
	log  logging.Logger
	rent Rent
}

func NewSystemProgram(log logging.Logger, rent Rent) *SystemProgram {
	return &SystemProgram{log: log, rent: rent}
}

func (*SystemProgram) ID() codec.Address {
	return SystemProgramID
}

func (s *SystemProgram) Process(_ context.Context, c *program.Context) error {
	ix, err := ParseSystemInstruction(c.Data)
	if err != nil {
		return err
	}
	switch ix.Kind {
	case SystemCreateAccount:
		return s.createAccount(c, ix)
	case SystemTransfer:
		return s.transfer(c, ix)
	default:
		return fmt.Errorf("%w: unknown system instruction %d", program.ErrInvalidInstructionData, ix.Kind)
	}
}

func (s *SystemProgram) createAccount(c *program.Context, ix *SystemInstruction) error {
	from, err := c.NextAccount()
	if err != nil {
		return err
	}
	to, err := c.NextAccount()
	if err != nil {
		return err
	}
	if !from.IsSigner || !to.IsSigner {
		return program.ErrMissingRequiredSignature
	}
	if !from.IsWritable || !to.IsWritable {
		return fmt.Errorf("%w: create account requires writable accounts", program.ErrInvalidArgument)
	}
	if len(to.Data) > 0 || to.Lamports > 0 || to.Owner != SystemProgramID {
		return fmt.Errorf("%w: %s", program.ErrAccountAlreadyInUse, to.Address)
	}
	if ix.Space > MaxPermittedDataLength {
		return fmt.Errorf("%w: space %d exceeds %d", program.ErrInvalidArgument, ix.Space, MaxPermittedDataLength)
	}
	if minBalance := s.rent.MinimumBalance(ix.Space); ix.Lamports < minBalance {
		return fmt.Errorf("%w: %d < %d", program.ErrInsufficientFundsForRent, ix.Lamports, minBalance)
	}
	if err := debit(from, ix.Lamports); err != nil {
		return err
	}
	to.Lamports = ix.Lamports
	to.Data = make([]byte, ix.Space)
	to.Owner = ix.Owner
	s.log.Debug("created account",
		zap.Stringer("address", to.Address),
		zap.Stringer("owner", ix.Owner),
		zap.Uint64("space", ix.Space),
		zap.Uint64("lamports", ix.Lamports),
	)
	return nil
}

func (s *SystemProgram) transfer(c *program.Context, ix *SystemInstruction) error {
	from, err := c.NextAccount()
	if err != nil {
		return err
	}
	to, err := c.NextAccount()
	if err != nil {
		return err
	}
	if !from.IsSigner {
		return program.ErrMissingRequiredSignature
	}
	if !from.IsWritable || !to.IsWritable {
		return fmt.Errorf("%w: transfer requires writable accounts", program.ErrInvalidArgument)
	}
	if err := debit(from, ix.Lamports); err != nil {
		return err
	}
	to.Lamports += ix.Lamports
	s.log.Debug("transferred",
		zap.Stringer("from", from.Address),
		zap.Stringer("to", to.Address),
		zap.Uint64("lamports", ix.Lamports),
	)
	return nil
}

// debit removes lamports from a system-owned wallet.
func debit(from *program.AccountInfo, lamports uint64) error {
	if len(from.Data) > 0 {
		return fmt.Errorf("%w: %s carries data", program.ErrInvalidArgument, from.Address)
	}
	if from.Lamports < lamports {
		return fmt.Errorf("%w: have %d, need %d", program.ErrInsufficientFunds, from.Lamports, lamports)
	}
	from.Lamports -= lamports
	return nil
}

// NewCreateAccountInstruction funds [to] from [from], allocates [space]
// zeroed bytes and assigns it to [owner]. Both accounts must sign.
func NewCreateAccountInstruction(from, to codec.Address, lamports, space uint64, owner codec.Address) chain.Instruction {
	return newSystemInstruction(
		&SystemInstruction{Kind: SystemCreateAccount, Lamports: lamports, Space: space, Owner: owner},
		chain.AccountMeta{Address: from, IsSigner: true, IsWritable: true},
		chain.AccountMeta{Address: to, IsSigner: true, IsWritable: true},
	)
}

func NewTransferInstruction(from, to codec.Address, lamports uint64) chain.Instruction {
	return newSystemInstruction(
		&SystemInstruction{Kind: SystemTransfer, Lamports: lamports},
		chain.AccountMeta{Address: from, IsSigner: true, IsWritable: true},
		chain.AccountMeta{Address: to, IsWritable: true},
	)
}

func newSystemInstruction(ix *SystemInstruction, accounts ...chain.AccountMeta) chain.Instruction {
	data, err := borsh.Serialize(*ix)
	if err != nil {
		// A fixed-size struct of integers and arrays always serializes.
		panic(err)
	}
	return chain.Instruction{
		ProgramID: SystemProgramID,
		Accounts:  accounts,
		Data:      data,
	}
}
