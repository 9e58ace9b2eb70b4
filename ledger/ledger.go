// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/executor"
	"github.com/ava-labs/countervm/programs/counter"
	"github.com/ava-labs/countervm/runtime"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/utils"

	oteltrace "go.opentelemetry.io/otel/trace"
)

type Block struct {
	Height    uint64   `json:"height"`
	Parent    ids.ID   `json:"parent"`
	Blockhash ids.ID   `json:"blockhash"`
	Txs       []ids.ID `json:"txs"`
}

type mempoolTx struct {
	id ids.ID
	tx *chain.Transaction
}

// Ledger accepts transactions into a mempool and periodically executes
// them in blocks. Each block produces a new blockhash; transactions must
// reference one of the most recent blockhashes to be accepted.
type Ledger struct {
	log     logging.Logger
	config  Config
	db      state.Database
	tracer  trace.Tracer
	rt      *runtime.Runtime
	metrics *metrics
	faucet  ed25519.PrivateKey

	// Held for the duration of BuildBlock
	buildL sync.Mutex

	l        sync.RWMutex
	mempool  []*mempoolTx
	statuses map[ids.ID]*Status
	recent   *utils.Recent[ids.ID]

	height atomic.Uint64
}

// New opens the ledger stored in db, writing genesis if db is empty.
func New(
	ctx context.Context,
	log logging.Logger,
	config Config,
	db state.Database,
	tracer trace.Tracer,
	r prometheus.Registerer,
) (*Ledger, error) {
	if config.RecentBlockhashes < 1 || config.BlockInterval <= 0 {
		return nil, fmt.Errorf("%w: recentBlockhashes and blockInterval must be positive", ErrInvalidConfig)
	}
	if config.MempoolSize < 1 || config.MaxBlockTransactions < 1 {
		return nil, fmt.Errorf("%w: mempoolSize and maxBlockTransactions must be positive", ErrInvalidConfig)
	}
	rt, err := runtime.New(log, config.runtimeConfig(), tracer, r)
	if err != nil {
		return nil, err
	}
	if err := rt.Register(counter.New(log, config.CounterProgramID)); err != nil {
		return nil, err
	}
	faucet, err := ed25519.PrivateKeyFromSeed(hashing.ComputeHash256([]byte(config.FaucetSeed)))
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(r)
	if err != nil {
		return nil, err
	}
	recent, err := utils.NewRecent[ids.ID](config.RecentBlockhashes)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		log:      log,
		config:   config,
		db:       db,
		tracer:   tracer,
		rt:       rt,
		metrics:  m,
		faucet:   faucet,
		statuses: make(map[ids.ID]*Status),
		recent:   recent,
	}
	if err := l.initialize(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) initialize(ctx context.Context) error {
	rawHeight, err := l.db.Get(state.HeightKey())
	switch {
	case err == nil:
		if len(rawHeight) != consts.Uint64Len {
			return fmt.Errorf("%w: height has %d bytes", ErrInvalidGenesis, len(rawHeight))
		}
		rawBlockhash, err := l.db.Get(state.BlockhashKey())
		if err != nil {
			return err
		}
		blockhash, err := ids.ToID(rawBlockhash)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidGenesis, err)
		}
		l.height.Store(binary.BigEndian.Uint64(rawHeight))
		l.pushBlockhash(blockhash)
		l.log.Info("loaded ledger",
			zap.Uint64("height", l.height.Load()),
			zap.Stringer("blockhash", blockhash),
		)
		return nil
	case errors.Is(err, database.ErrNotFound):
	default:
		return err
	}

	mu := state.NewSimpleMutable(l.db)
	if err := runtime.PutAccount(ctx, mu, l.faucet.Address(), &runtime.Account{
		Owner:    runtime.SystemProgramID,
		Lamports: l.config.GenesisLamports,
	}); err != nil {
		return err
	}
	for _, id := range []codec.Address{runtime.SystemProgramID, l.config.CounterProgramID} {
		if err := runtime.PutAccount(ctx, mu, id, &runtime.Account{
			Owner:      runtime.SystemProgramID,
			Lamports:   1,
			Executable: true,
		}); err != nil {
			return err
		}
	}
	blockhash := ids.ID(hashing.ComputeHash256Array([]byte(consts.Name + " genesis")))
	if err := writeMetadata(ctx, mu, 0, blockhash); err != nil {
		return err
	}
	if err := mu.Commit(ctx); err != nil {
		return err
	}
	l.pushBlockhash(blockhash)
	l.log.Info("wrote genesis",
		zap.Stringer("blockhash", blockhash),
		zap.Stringer("faucet", l.faucet.Address()),
		zap.Stringer("counterProgramID", l.config.CounterProgramID),
	)
	return nil
}

func writeMetadata(ctx context.Context, mu state.Mutable, height uint64, blockhash ids.ID) error {
	rawHeight := make([]byte, consts.Uint64Len)
	binary.BigEndian.PutUint64(rawHeight, height)
	if err := mu.Insert(ctx, state.HeightKey(), rawHeight); err != nil {
		return err
	}
	return mu.Insert(ctx, state.BlockhashKey(), blockhash[:])
}

// pushBlockhash must be called with [l.l] held or before the ledger is
// shared.
func (l *Ledger) pushBlockhash(blockhash ids.ID) {
	if evicted, ok := l.recent.Insert(blockhash); ok {
		l.log.Debug("blockhash expired", zap.Stringer("blockhash", evicted))
	}
}

// Submit queues tx for the next block. Signatures are checked when the
// block is built.
func (l *Ledger) Submit(ctx context.Context, tx *chain.Transaction) (ids.ID, error) {
	_, span := l.tracer.Start(ctx, "Ledger.Submit")
	defer span.End()

	b, err := tx.Bytes()
	if err != nil {
		return ids.Empty, err
	}
	if len(b) > consts.MaxTxSize {
		return ids.Empty, fmt.Errorf("%w: %d > %d", chain.ErrTransactionTooBig, len(b), consts.MaxTxSize)
	}
	if len(tx.Message.Instructions) == 0 {
		return ids.Empty, chain.ErrNoInstructions
	}
	id := ids.ID(hashing.ComputeHash256Array(b))

	l.l.Lock()
	defer l.l.Unlock()

	if !l.recent.Contains(tx.Message.Blockhash) {
		return ids.Empty, fmt.Errorf("%w: %s", ErrBlockhashNotFound, tx.Message.Blockhash)
	}
	if _, ok := l.statuses[id]; ok {
		return ids.Empty, fmt.Errorf("%w: %s", ErrDuplicateTransaction, id)
	}
	if len(l.mempool) >= l.config.MempoolSize {
		return ids.Empty, ErrMempoolFull
	}
	l.mempool = append(l.mempool, &mempoolTx{id: id, tx: tx})
	l.statuses[id] = &Status{State: Pending, Instruction: -1}
	l.metrics.txsSubmitted.Inc()
	l.metrics.mempoolSize.Set(float64(len(l.mempool)))
	span.SetAttributes(attribute.Stringer("txID", id))
	return id, nil
}

// SubmitBytes parses a signed transaction and submits it.
func (l *Ledger) SubmitBytes(ctx context.Context, b []byte) (ids.ID, error) {
	tx, err := chain.UnmarshalTx(b)
	if err != nil {
		return ids.Empty, err
	}
	return l.Submit(ctx, tx)
}

// BuildBlock executes up to MaxBlockTransactions transactions from the
// mempool and advances the blockhash. Blocks may be empty.
//
// Transactions run concurrently unless they touch the same account, in
// which case they run in mempool order.
//
// If state cannot be read or written, the transactions that did not commit
// are dropped with ErrBlockExecution and the block is still sealed with the
// ones that did, so every drained transaction reaches a final status. The
// storage error is then returned.
func (l *Ledger) BuildBlock(ctx context.Context) (*Block, error) {
	l.buildL.Lock()
	defer l.buildL.Unlock()

	ctx, span := l.tracer.Start(ctx, "Ledger.BuildBlock")
	defer span.End()

	start := time.Now()
	defer func() {
		l.metrics.buildBlock.Observe(float64(time.Since(start)))
	}()

	l.l.Lock()
	n := min(len(l.mempool), l.config.MaxBlockTransactions)
	txs := l.mempool[:n]
	l.mempool = append([]*mempoolTx(nil), l.mempool[n:]...)
	parent, _ := l.recent.Last()
	l.l.Unlock()

	height := l.height.Load() + 1
	span.SetAttributes(
		attribute.Int("txs", n),
		attribute.Int64("height", int64(height)),
	)
	statuses := make([]*Status, n)

	if err := l.verifySignatures(ctx, txs, statuses, height); err != nil {
		return nil, err
	}

	l.l.RLock()
	for i, mtx := range txs {
		if statuses[i] == nil && !l.recent.Contains(mtx.tx.Message.Blockhash) {
			statuses[i] = failedStatus(Dropped, height, 0, -1, ErrBlockhashNotFound)
		}
	}
	l.l.RUnlock()

	e := executor.New(n, l.config.ExecutionCores, l.metrics.executor)
	for i, mtx := range txs {
		if statuses[i] != nil {
			continue
		}
		i, mtx := i, mtx
		e.Run(mtx.tx.StateKeys(), func() error {
			result, err := l.rt.Execute(ctx, l.db, mtx.tx)
			switch {
			case errors.Is(err, runtime.ErrInsufficientFee):
				statuses[i] = failedStatus(Dropped, height, 0, -1, err)
			case err != nil:
				return err
			case result.Success():
				statuses[i] = &Status{State: Succeeded, Height: height, Fee: result.Fee, Instruction: -1}
			default:
				statuses[i] = failedStatus(Failed, height, result.Fee, result.Instruction, result.Err)
			}
			return nil
		})
	}
	execErr := e.Wait()
	if execErr != nil {
		l.log.Error("block execution failed",
			zap.Uint64("height", height),
			zap.Error(execErr),
		)
		dropped := fmt.Errorf("%w: %w", ErrBlockExecution, execErr)
		for i := range statuses {
			if statuses[i] == nil {
				statuses[i] = failedStatus(Dropped, height, 0, -1, dropped)
			}
		}
	}

	included := make([]ids.ID, 0, n)
	for i, mtx := range txs {
		switch statuses[i].State {
		case Succeeded:
			l.metrics.txsSucceeded.Inc()
			included = append(included, mtx.id)
		case Failed:
			l.metrics.txsFailed.Inc()
			included = append(included, mtx.id)
		default:
			l.metrics.txsDropped.Inc()
		}
	}
	blk := &Block{
		Height:    height,
		Parent:    parent,
		Blockhash: computeBlockhash(parent, height, included),
		Txs:       included,
	}
	mu := state.NewSimpleMutable(l.db)
	metaErr := writeMetadata(ctx, mu, height, blk.Blockhash)
	if metaErr == nil {
		metaErr = mu.Commit(ctx)
	}
	if metaErr != nil {
		// The in-memory chain still advances; the next block rewrites the
		// metadata.
		l.log.Error("failed to persist block metadata",
			zap.Uint64("height", height),
			zap.Error(metaErr),
		)
	}

	l.l.Lock()
	for i, mtx := range txs {
		l.statuses[mtx.id] = statuses[i]
	}
	l.pushBlockhash(blk.Blockhash)
	l.height.Store(height)
	l.metrics.mempoolSize.Set(float64(len(l.mempool)))
	l.l.Unlock()

	if err := errors.Join(execErr, metaErr); err != nil {
		return nil, err
	}
	l.metrics.blocksBuilt.Inc()
	if n > 0 {
		l.log.Debug("built block",
			zap.Uint64("height", height),
			zap.Stringer("blockhash", blk.Blockhash),
			zap.Int("txs", n),
			zap.Int("included", len(included)),
		)
	}
	return blk, nil
}

func (l *Ledger) verifySignatures(ctx context.Context, txs []*mempoolTx, statuses []*Status, height uint64) error {
	_, span := l.tracer.Start(ctx, "Ledger.verifySignatures", oteltrace.WithAttributes(
		attribute.Int("txs", len(txs)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		l.metrics.waitSignatures.Observe(float64(time.Since(start)))
	}()

	g := errgroup.Group{}
	g.SetLimit(max(l.config.VerificationCores, 1))
	for i, mtx := range txs {
		i, mtx := i, mtx
		g.Go(func() error {
			if err := mtx.tx.Verify(); err != nil {
				statuses[i] = failedStatus(Dropped, height, 0, -1, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func computeBlockhash(parent ids.ID, height uint64, txs []ids.ID) ids.ID {
	size := consts.IDLen + consts.Uint64Len + len(txs)*consts.IDLen
	p := wrappers.Packer{Bytes: make([]byte, 0, size), MaxSize: size}
	p.PackFixedBytes(parent[:])
	p.PackLong(height)
	for _, id := range txs {
		p.PackFixedBytes(id[:])
	}
	return ids.ID(hashing.ComputeHash256Array(p.Bytes))
}

// Run builds a block every BlockInterval until ctx is canceled.
func (l *Ledger) Run(ctx context.Context) error {
	t := time.NewTicker(l.config.BlockInterval)
	defer t.Stop()

	l.log.Info("producing blocks", zap.Duration("interval", l.config.BlockInterval))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := l.BuildBlock(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

func (l *Ledger) LatestBlockhash() ids.ID {
	l.l.RLock()
	defer l.l.RUnlock()

	last, _ := l.recent.Last()
	return last
}

func (l *Ledger) Height() uint64 {
	return l.height.Load()
}

func (l *Ledger) GetAccount(ctx context.Context, addr codec.Address) (*runtime.Account, error) {
	return runtime.GetAccount(ctx, state.NewReader(l.db), addr)
}

func (l *Ledger) GetBalance(ctx context.Context, addr codec.Address) (uint64, error) {
	a, err := l.GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}
	return a.Lamports, nil
}

func (l *Ledger) MinimumBalanceForRentExemption(space uint64) uint64 {
	return l.rt.Rent().MinimumBalance(space)
}

func (l *Ledger) Status(id ids.ID) (*Status, error) {
	l.l.RLock()
	defer l.l.RUnlock()

	s, ok := l.statuses[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, id)
	}
	c := *s
	return &c, nil
}

func (l *Ledger) Faucet() codec.Address {
	return l.faucet.Address()
}

func (l *Ledger) CounterProgramID() codec.Address {
	return l.config.CounterProgramID
}

// RequestAirdrop submits a transfer from the faucet to [to].
func (l *Ledger) RequestAirdrop(ctx context.Context, to codec.Address, lamports uint64) (ids.ID, error) {
	if lamports > l.config.FaucetLamports {
		return ids.Empty, fmt.Errorf("%w: %d > %d", ErrAirdropTooLarge, lamports, l.config.FaucetLamports)
	}
	tx := chain.NewTx(
		l.LatestBlockhash(),
		l.faucet.Address(),
		runtime.NewTransferInstruction(l.faucet.Address(), to, lamports),
	)
	if err := tx.Sign(l.faucet); err != nil {
		return ids.Empty, err
	}
	id, err := l.Submit(ctx, tx)
	if err != nil {
		return ids.Empty, err
	}
	l.log.Info("airdrop requested",
		zap.Stringer("to", to),
		zap.Uint64("lamports", lamports),
		zap.Stringer("txID", id),
	)
	return id, nil
}
