// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/programs/counter"
	"github.com/ava-labs/countervm/runtime"
)

type Config struct {
	PollInterval   time.Duration `json:"pollInterval"`
	ConfirmTimeout time.Duration `json:"confirmTimeout"`
	// AirdropLamports is requested for a payer that cannot cover a
	// counter account and its fees.
	AirdropLamports uint64 `json:"airdropLamports"`
}

func NewConfig() Config {
	return Config{
		PollInterval:    250 * time.Millisecond,
		ConfirmTimeout:  30 * time.Second,
		AirdropLamports: consts.LamportsPerCoin,
	}
}

// Driver submits counter transactions on behalf of a payer and waits for
// them to be confirmed.
type Driver struct {
	log       logging.Logger
	config    Config
	client    Client
	programID codec.Address

	payer ed25519.PrivateKey
}

func New(log logging.Logger, config Config, client Client, programID codec.Address) *Driver {
	return &Driver{
		log:       log,
		config:    config,
		client:    client,
		programID: programID,
	}
}

// SetPayer uses [payer] for all following transactions.
func (d *Driver) SetPayer(payer ed25519.PrivateKey) {
	d.payer = payer
}

func (d *Driver) Payer() codec.Address {
	return d.payer.Address()
}

// EnsurePayer loads the payer from [path], creating it if the file does not
// exist, and airdrops to it if its balance cannot pay for a counter.
func (d *Driver) EnsurePayer(ctx context.Context, path string) (ed25519.PrivateKey, error) {
	payer, err := LoadKeyFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		payer, err = ed25519.GeneratePrivateKey()
		if err != nil {
			return ed25519.EmptyPrivateKey, err
		}
		if err := SaveKeyFile(path, payer); err != nil {
			return ed25519.EmptyPrivateKey, err
		}
		d.log.Info("created payer",
			zap.String("path", path),
			zap.Stringer("address", payer.Address()),
		)
	case err != nil:
		return ed25519.EmptyPrivateKey, err
	}
	d.payer = payer

	required, err := d.client.MinimumBalanceForRentExemption(ctx, counter.StateLen)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	balance, err := d.client.Balance(ctx, payer.Address())
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if balance > required {
		return payer, nil
	}
	d.log.Info("requesting airdrop",
		zap.Stringer("address", payer.Address()),
		zap.Uint64("balance", balance),
		zap.Uint64("lamports", d.config.AirdropLamports),
	)
	txID, err := d.client.RequestAirdrop(ctx, payer.Address(), d.config.AirdropLamports)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if _, err := d.Confirm(ctx, txID); err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	return payer, nil
}

// Confirm polls the status of [txID] until it is final. A transaction that
// failed or was dropped is returned as an error.
func (d *Driver) Confirm(ctx context.Context, txID ids.ID) (*ledger.Status, error) {
	ctx, cancel := context.WithTimeout(ctx, d.config.ConfirmTimeout)
	defer cancel()

	t := time.NewTicker(d.config.PollInterval)
	defer t.Stop()
	for {
		status, err := d.client.TxStatus(ctx, txID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", ErrConfirmTimeout, txID)
			}
			return nil, err
		}
		if status.State.Final() {
			d.log.Debug("transaction confirmed",
				zap.Stringer("txID", txID),
				zap.Stringer("state", status.State),
				zap.Uint64("height", status.Height),
			)
			if status.State == ledger.Dropped {
				return status, fmt.Errorf("%w: %w", ErrTransactionDropped, status.Err())
			}
			return status, status.Err()
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrConfirmTimeout, txID)
		}
	}
}

// SendAndConfirm signs [ixs] with the payer and [signers] against the
// latest blockhash, submits the transaction, and waits for it.
func (d *Driver) SendAndConfirm(ctx context.Context, signers []ed25519.PrivateKey, ixs ...chain.Instruction) (*ledger.Status, error) {
	if d.payer == ed25519.EmptyPrivateKey {
		return nil, ErrNoPayer
	}
	blockhash, err := d.client.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}
	tx := chain.NewTx(blockhash, d.payer.Address(), ixs...)
	if err := tx.Sign(append([]ed25519.PrivateKey{d.payer}, signers...)...); err != nil {
		return nil, err
	}
	txID, err := d.client.SubmitTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	return d.Confirm(ctx, txID)
}

// CreateCounter allocates a rent-exempt counter account for [counterKey]
// owned by the counter program and initializes it in the same transaction.
func (d *Driver) CreateCounter(ctx context.Context, counterKey ed25519.PrivateKey) (codec.Address, error) {
	lamports, err := d.client.MinimumBalanceForRentExemption(ctx, counter.StateLen)
	if err != nil {
		return codec.EmptyAddress, err
	}
	addr := counterKey.Address()
	if _, err := d.SendAndConfirm(ctx, []ed25519.PrivateKey{counterKey},
		runtime.NewCreateAccountInstruction(d.payer.Address(), addr, lamports, counter.StateLen, d.programID),
		counter.NewInitializeInstruction(d.programID, addr),
	); err != nil {
		return codec.EmptyAddress, err
	}
	d.log.Info("created counter", zap.Stringer("counter", addr))
	return addr, nil
}

func (d *Driver) Increment(ctx context.Context, addr codec.Address) error {
	_, err := d.SendAndConfirm(ctx, nil, counter.NewIncrementInstruction(d.programID, addr))
	return err
}

func (d *Driver) Decrement(ctx context.Context, addr codec.Address) error {
	_, err := d.SendAndConfirm(ctx, nil, counter.NewDecrementInstruction(d.programID, addr))
	return err
}

// Count reads the state of the counter at [addr].
func (d *Driver) Count(ctx context.Context, addr codec.Address) (*counter.State, error) {
	a, err := d.client.Account(ctx, addr)
	if err != nil {
		return nil, err
	}
	if a.Owner != d.programID {
		return nil, fmt.Errorf("%w: %s is owned by %s", ErrInvalidCounter, addr, a.Owner)
	}
	return counter.Unpack(a.Data)
}

// Demo creates a fresh counter, increments it twice, decrements it once,
// and returns the final state.
func (d *Driver) Demo(ctx context.Context) (*counter.State, error) {
	counterKey, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	addr, err := d.CreateCounter(ctx, counterKey)
	if err != nil {
		return nil, err
	}
	for _, step := range []func(context.Context, codec.Address) error{
		d.Increment,
		d.Increment,
		d.Decrement,
	} {
		if err := step(ctx, addr); err != nil {
			return nil, err
		}
	}
	s, err := d.Count(ctx, addr)
	if err != nil {
		return nil, err
	}
	d.log.Info("demo finished",
		zap.Stringer("counter", addr),
		zap.Bool("initialized", s.IsInitialized),
		zap.Uint32("count", s.Count),
	)
	return s, nil
}
