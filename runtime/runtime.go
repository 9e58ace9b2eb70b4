// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/lockmap"
	"github.com/ava-labs/countervm/program"
	"github.com/ava-labs/countervm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type Config struct {
	LamportsPerSignature uint64 `json:"lamportsPerSignature"`
	Rent                 Rent   `json:"rent"`
}

func NewDefaultConfig() Config {
	return Config{
		LamportsPerSignature: 5_000,
		Rent:                 DefaultRent(),
	}
}

// Runtime executes transactions against account state on behalf of the
// registered programs.
//
// Every account a transaction references is locked for the duration of
// its execution (write locks for writable accounts), so Execute may be
// called concurrently and a program never observes a concurrent writer of
// its accounts.
type Runtime struct {
	log     logging.Logger
	config  Config
	tracer  trace.Tracer
	metrics *metrics
	locks   *lockmap.Lockmap

	programsL sync.RWMutex
	programs  map[codec.Address]program.Program
}

// New returns a Runtime with the system program registered.
func New(log logging.Logger, config Config, tracer trace.Tracer, r prometheus.Registerer) (*Runtime, error) {
	m, err := newMetrics(r)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{
		log:      log,
		config:   config,
		tracer:   tracer,
		metrics:  m,
		locks:    lockmap.New(1_024),
		programs: make(map[codec.Address]program.Program),
	}
	if err := rt.Register(NewSystemProgram(log, config.Rent)); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *Runtime) Register(p program.Program) error {
	r.programsL.Lock()
	defer r.programsL.Unlock()

	id := p.ID()
	if _, ok := r.programs[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProgram, id)
	}
	r.programs[id] = p
	r.log.Info("registered program", zap.Stringer("programID", id))
	return nil
}

func (r *Runtime) Program(id codec.Address) (program.Program, bool) {
	r.programsL.RLock()
	defer r.programsL.RUnlock()

	p, ok := r.programs[id]
	return p, ok
}

func (r *Runtime) Rent() Rent {
	return r.config.Rent
}

// Fee is the amount debited from the fee payer of tx.
func (r *Runtime) Fee(tx *chain.Transaction) uint64 {
	return r.config.LamportsPerSignature * uint64(len(tx.Signers()))
}

// Result is the outcome of a transaction that paid its fee.
type Result struct {
	Fee uint64
	// Err is the failure of instruction [Instruction]. When set, no
	// account other than the fee payer's balance was changed.
	Err         error
	Instruction int
}

func (r *Result) Success() bool {
	return r.Err == nil
}

// Execute runs the instructions of tx in order and commits the outcome to
// db in one batch. Either every instruction's changes are written or, on
// the first failure, none are. The fee is charged in both cases.
//
// A returned error means tx was not executed at all: the fee payer could
// not pay or state could not be read or written.
func (r *Runtime) Execute(ctx context.Context, db state.Database, tx *chain.Transaction) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "Runtime.Execute", oteltrace.WithAttributes(
		attribute.Int("instructions", len(tx.Message.Instructions)),
		attribute.Stringer("feePayer", tx.Message.FeePayer),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		r.metrics.execution.Observe(float64(time.Since(start)))
	}()

	keys := tx.StateKeys()
	unlock := r.lock(keys)
	defer unlock()

	mu := state.NewSimpleMutable(db)
	result, err := r.execute(ctx, mu, keys, tx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !result.Success() {
		span.RecordError(result.Err)
	}
	if err := mu.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Runtime) execute(ctx context.Context, mu state.Mutable, keys state.Keys, tx *chain.Transaction) (*Result, error) {
	accounts, err := r.load(ctx, mu, tx)
	if err != nil {
		return nil, err
	}
	fee := r.Fee(tx)
	payer := accounts[tx.Message.FeePayer]
	if payer.Lamports < fee {
		return nil, fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFee, tx.Message.FeePayer, payer.Lamports, fee)
	}
	payer.Lamports -= fee
	charged := payer.clone()
	r.metrics.feesCharged.Add(float64(fee))

	signers := set.NewSet[codec.Address](len(tx.Signatures))
	for _, signer := range tx.Signers() {
		if tx.IsSigner(signer) {
			signers.Add(signer)
		}
	}

	result := &Result{Fee: fee, Instruction: -1}
	for i, ix := range tx.Message.Instructions {
		err := r.process(ctx, accounts, keys, signers, ix)
		if err != nil {
			r.metrics.instructions.WithLabelValues("failure").Inc()
			r.log.Debug("instruction failed",
				zap.Int("index", i),
				zap.Stringer("programID", ix.ProgramID),
				zap.Error(err),
			)
			result.Err = err
			result.Instruction = i
			break
		}
		r.metrics.instructions.WithLabelValues("success").Inc()
	}

	if !result.Success() {
		r.metrics.txsFailed.Inc()
		return result, PutAccount(ctx, mu, tx.Message.FeePayer, charged)
	}
	for addr, a := range accounts {
		if !keys[string(state.AccountKey(addr))].Has(state.Write) {
			continue
		}
		if err := PutAccount(ctx, mu, addr, a); err != nil {
			return nil, err
		}
	}
	r.metrics.txsSucceeded.Inc()
	return result, nil
}

func (r *Runtime) lock(keys state.Keys) func() {
	sorted := keys.Sorted()
	for _, k := range sorted {
		if keys[k].Has(state.Write) {
			r.locks.Lock(k)
		} else {
			r.locks.RLock(k)
		}
	}
	return func() {
		for i := len(sorted) - 1; i >= 0; i-- {
			k := sorted[i]
			if keys[k].Has(state.Write) {
				r.locks.Unlock(k)
			} else {
				r.locks.RUnlock(k)
			}
		}
	}
}

func (*Runtime) load(ctx context.Context, im state.Immutable, tx *chain.Transaction) (map[codec.Address]*Account, error) {
	accounts := make(map[codec.Address]*Account)
	get := func(addr codec.Address) error {
		if _, ok := accounts[addr]; ok {
			return nil
		}
		a, err := GetAccount(ctx, im, addr)
		if err != nil {
			return err
		}
		accounts[addr] = a
		return nil
	}
	if err := get(tx.Message.FeePayer); err != nil {
		return nil, err
	}
	for _, ix := range tx.Message.Instructions {
		for _, meta := range ix.Accounts {
			if err := get(meta.Address); err != nil {
				return nil, err
			}
		}
	}
	return accounts, nil
}

// process invokes a single instruction on copies of its accounts and, if
// the program succeeds and obeyed the host rules, applies the copies to
// [accounts].
func (r *Runtime) process(
	ctx context.Context,
	accounts map[codec.Address]*Account,
	keys state.Keys,
	signers set.Set[codec.Address],
	ix chain.Instruction,
) error {
	p, ok := r.Program(ix.ProgramID)
	if !ok {
		return fmt.Errorf("%w: %s", program.ErrUnsupportedProgramID, ix.ProgramID)
	}

	infos := make(map[codec.Address]*program.AccountInfo, len(ix.Accounts))
	c := &program.Context{
		ProgramID: ix.ProgramID,
		Accounts:  make([]*program.AccountInfo, len(ix.Accounts)),
		Data:      ix.Data,
	}
	for i, meta := range ix.Accounts {
		info, ok := infos[meta.Address]
		if !ok {
			info = accounts[meta.Address].info(meta.Address)
			info.IsSigner = signers.Contains(meta.Address)
			info.IsWritable = keys[string(state.AccountKey(meta.Address))].Has(state.Write)
			infos[meta.Address] = info
		}
		c.Accounts[i] = info
	}

	if err := p.Process(ctx, c); err != nil {
		return err
	}
	if err := verifyChanges(ix.ProgramID, accounts, infos); err != nil {
		return err
	}
	for addr, info := range infos {
		a := accounts[addr]
		a.Owner = info.Owner
		a.Lamports = info.Lamports
		a.Data = info.Data
	}
	return nil
}

// verifyChanges enforces what a program may do to the accounts it was
// handed:
//   - readonly accounts are unchanged
//   - only the owner may change data, reassign or debit an account
//   - no account changes its executable flag
//   - lamports are conserved
func verifyChanges(
	programID codec.Address,
	accounts map[codec.Address]*Account,
	infos map[codec.Address]*program.AccountInfo,
) error {
	var before, after uint64
	for addr, info := range infos {
		pre := accounts[addr]
		dataChanged := !bytes.Equal(pre.Data, info.Data)
		changed := dataChanged ||
			pre.Lamports != info.Lamports ||
			pre.Owner != info.Owner ||
			pre.Executable != info.Executable
		if changed && !info.IsWritable {
			return fmt.Errorf("%w: %s", program.ErrReadonlyDataModified, addr)
		}
		if pre.Executable != info.Executable {
			return fmt.Errorf("%w: executable flag of %s", program.ErrExternalAccountDataModified, addr)
		}
		if pre.Owner != programID && (dataChanged || pre.Owner != info.Owner || info.Lamports < pre.Lamports) {
			return fmt.Errorf("%w: %s is owned by %s", program.ErrExternalAccountDataModified, addr, pre.Owner)
		}

		var err error
		if before, err = smath.Add(before, pre.Lamports); err != nil {
			return fmt.Errorf("%w: %w", program.ErrArithmeticOverflow, err)
		}
		if after, err = smath.Add(after, info.Lamports); err != nil {
			return fmt.Errorf("%w: %w", program.ErrArithmeticOverflow, err)
		}
	}
	if before != after {
		return fmt.Errorf("%w: %d before, %d after", program.ErrUnbalancedInstruction, before, after)
	}
	return nil
}
