// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/programs/counter"
	"github.com/ava-labs/countervm/utils"
)

func PrintStatus(label string, err error) {
	if err != nil {
		utils.Outf("⚠️ {{red}}%s failed:{{/}} %v\n", label, err)
		return
	}
	utils.Outf("✅ {{green}}%s{{/}}\n", label)
}

func PrintCounter(addr codec.Address, s *counter.State) {
	utils.Outf(
		"{{yellow}}counter:{{/}} %s {{yellow}}initialized:{{/}} %t {{yellow}}count:{{/}} %d\n",
		addr,
		s.IsInitialized,
		s.Count,
	)
}

func PrintBalance(addr codec.Address, lamports uint64) {
	utils.Outf(
		"{{yellow}}address:{{/}} %s {{yellow}}balance:{{/}} %s {{yellow}}lamports:{{/}} %d\n",
		addr,
		utils.FormatBalance(lamports),
		lamports,
	)
}
