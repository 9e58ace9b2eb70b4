// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/runtime"
)

// DefaultCounterProgramID is where the counter program is deployed unless
// configured otherwise.
var DefaultCounterProgramID = codec.CreateAddress(codec.ProgramID, ids.ID{'c', 'o', 'u', 'n', 't', 'e', 'r'})

type Config struct {
	BlockInterval        time.Duration `json:"blockInterval"`
	MaxBlockTransactions int           `json:"maxBlockTransactions"`
	MempoolSize          int           `json:"mempoolSize"`
	// RecentBlockhashes is how many blocks back a transaction's blockhash
	// may be.
	RecentBlockhashes    int          `json:"recentBlockhashes"`
	LamportsPerSignature uint64       `json:"lamportsPerSignature"`
	Rent                 runtime.Rent `json:"rent"`

	// FaucetSeed derives the faucet key. The faucet is funded with
	// GenesisLamports and pays out at most FaucetLamports per airdrop.
	FaucetSeed      string `json:"faucetSeed"`
	GenesisLamports uint64 `json:"genesisLamports"`
	FaucetLamports  uint64 `json:"faucetLamports"`

	CounterProgramID codec.Address `json:"counterProgramID"`

	VerificationCores int `json:"verificationCores"`
	ExecutionCores    int `json:"executionCores"`
}

func NewConfig() Config {
	return Config{
		BlockInterval:        400 * time.Millisecond,
		MaxBlockTransactions: 1_024,
		MempoolSize:          4_096,
		RecentBlockhashes:    150,
		LamportsPerSignature: 5_000,
		Rent:                 runtime.DefaultRent(),
		FaucetSeed:           consts.Name + " faucet",
		GenesisLamports:      500_000_000 * consts.LamportsPerCoin,
		FaucetLamports:       10 * consts.LamportsPerCoin,
		CounterProgramID:     DefaultCounterProgramID,
		VerificationCores:    4,
		ExecutionCores:       4,
	}
}

func (c Config) runtimeConfig() runtime.Config {
	return runtime.Config{
		LamportsPerSignature: c.LamportsPerSignature,
		Rent:                 c.Rent,
	}
}
