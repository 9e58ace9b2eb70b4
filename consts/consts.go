// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Name is the service name used for the JSON-RPC namespace and tracing.
	Name = "countervm"

	IDLen      = 32
	ByteLen    = 1
	Uint32Len  = 4
	Uint64Len  = 8
	MaxUint8   = ^uint8(0)
	MaxUint32  = ^uint32(0)
	MaxUint64  = ^uint64(0)
	MaxUint    = ^uint(0)
	MaxInt     = int(MaxUint >> 1)
	MaxTxSize  = 1_232
	MaxSigners = 16

	// LamportsPerCoin is the number of base units in one coin.
	LamportsPerCoin uint64 = 1_000_000_000
	CoinDecimals           = 9

	MillisecondsPerSecond = 1000
)
