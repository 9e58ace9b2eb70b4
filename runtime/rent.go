// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

// AccountStorageOverhead is charged on top of the data length of every
// account.
const AccountStorageOverhead = 128

// Rent prices account storage. An account holding at least
// MinimumBalance(len(data)) lamports is exempt.
type Rent struct {
	LamportsPerByteYear uint64 `json:"lamportsPerByteYear"`
	ExemptionThreshold  uint64 `json:"exemptionThreshold"` // years
}

func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3_480,
		ExemptionThreshold:  2,
	}
}

func (r Rent) MinimumBalance(space uint64) uint64 {
	return (AccountStorageOverhead + space) * r.LamportsPerByteYear * r.ExemptionThreshold
}
