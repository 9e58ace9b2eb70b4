// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"strconv"

	"github.com/ava-labs/avalanchego/utils/perms"

	"github.com/ava-labs/countervm/consts"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

var ErrInvalidBalance = errors.New("invalid balance")

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// FormatBalance renders lamports as coins.
func FormatBalance(lamports uint64) string {
	return fmt.Sprintf("%.9f", float64(lamports)/math.Pow10(consts.CoinDecimals))
}

// ParseBalance converts a coin amount into lamports.
func ParseBalance(bal string) (uint64, error) {
	f, err := strconv.ParseFloat(bal, 64)
	if err != nil {
		return 0, err
	}
	lamports := math.Round(f * math.Pow10(consts.CoinDecimals))
	if lamports < 0 || lamports > float64(consts.MaxUint64) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidBalance, bal)
	}
	return uint64(lamports), nil
}
