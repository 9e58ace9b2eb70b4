// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/program"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ program.Program = (*Processor)(nil)

// Processor is the counter program. It relies on the host to serialize
// invocations against the same account.
type Processor struct {
	log logging.Logger
	id  codec.Address
}

// New returns the counter program deployed under programID.
func New(log logging.Logger, programID codec.Address) *Processor {
	return &Processor{log: log, id: programID}
}

func (p *Processor) ID() codec.Address {
	return p.id
}

func (p *Processor) Process(_ context.Context, c *program.Context) error {
	op, err := ParseInstruction(c.Data)
	if err != nil {
		return err
	}
	account, err := c.NextAccount()
	if err != nil {
		return err
	}
	if account.Owner != p.id {
		return fmt.Errorf("%w: account %s is owned by %s", program.ErrIncorrectProgramID, account.Address, account.Owner)
	}

	switch op {
	case OpInitialize:
		return p.initialize(account)
	case OpIncrement:
		return p.increment(account)
	case OpDecrement:
		return p.decrement(account)
	default:
		// ParseInstruction only returns known opcodes.
		return fmt.Errorf("%w: unknown opcode %d", program.ErrInvalidInstructionData, op)
	}
}

func (p *Processor) initialize(account *program.AccountInfo) error {
	s, err := Unpack(account.Data)
	if err != nil {
		return err
	}
	if s.IsInitialized {
		return program.ErrAccountAlreadyInitialized
	}
	s.IsInitialized = true
	s.Count = 0
	if err := s.PackInto(account.Data); err != nil {
		return err
	}
	p.log.Debug("counter initialized",
		zap.Stringer("account", account.Address),
	)
	return nil
}

func (p *Processor) increment(account *program.AccountInfo) error {
	s, err := Unpack(account.Data)
	if err != nil {
		return err
	}
	next, err := smath.Add(s.Count, 1)
	if err != nil {
		return fmt.Errorf("%w: %w", program.ErrArithmeticOverflow, err)
	}
	s.Count = next
	if err := s.PackInto(account.Data); err != nil {
		return err
	}
	p.log.Debug("counter incremented",
		zap.Stringer("account", account.Address),
		zap.Uint32("count", s.Count),
	)
	return nil
}

func (p *Processor) decrement(account *program.AccountInfo) error {
	s, err := Unpack(account.Data)
	if err != nil {
		return err
	}
	if s.Count == 0 {
		return fmt.Errorf("%w: cannot decrement below zero", program.ErrInvalidArgument)
	}
	next, err := smath.Sub(s.Count, 1)
	if err != nil {
		return fmt.Errorf("%w: %w", program.ErrArithmeticOverflow, err)
	}
	s.Count = next
	if err := s.PackInto(account.Data); err != nil {
		return err
	}
	p.log.Debug("counter decremented",
		zap.Stringer("account", account.Address),
		zap.Uint32("count", s.Count),
	)
	return nil
}
