// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "github.com/ava-labs/countervm/codec"

// Layout
// 0x0/ (accounts)
//
//	-> [address] => account record
//
// 0x1/ (metadata)
//
//	-> height
//	-> blockhash
const (
	accountPrefix  byte = 0x0
	metadataPrefix byte = 0x1

	heightSuffix    byte = 0x0
	blockhashSuffix byte = 0x1
)

func AccountKey(addr codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = accountPrefix
	copy(k[1:], addr[:])
	return k
}

func HeightKey() []byte {
	return []byte{metadataPrefix, heightSuffix}
}

func BlockhashKey() []byte {
	return []byte{metadataPrefix, blockhashSuffix}
}
