// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/driver"
	"github.com/ava-labs/countervm/utils"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the payer key",
}

var generateKeyCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new payer key",
	RunE: func(*cobra.Command, []string) error {
		_, err := os.Stat(keyPath)
		switch {
		case err == nil:
			if err := cli.ConfirmOverwrite(keyPath, force); err != nil {
				return err
			}
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
		key, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return err
		}
		if err := driver.SaveKeyFile(keyPath, key); err != nil {
			return err
		}
		utils.Outf("{{green}}created key:{{/}} %s {{green}}address:{{/}} %s\n", keyPath, key.Address())
		return nil
	},
}

var addressKeyCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the payer address",
	RunE: func(*cobra.Command, []string) error {
		key, err := driver.LoadKeyFile(keyPath)
		if err != nil {
			return err
		}
		utils.Outf("%s\n", key.Address())
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the balance of an address, or of the payer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var addr codec.Address
		if len(args) > 0 {
			var err error
			addr, err = cli.ParseAddress(args[0])
			if err != nil {
				return err
			}
		} else {
			key, err := driver.LoadKeyFile(keyPath)
			if err != nil {
				return err
			}
			addr = key.Address()
		}
		lamports, err := client.Balance(cmd.Context(), addr)
		if err != nil {
			return err
		}
		cli.PrintBalance(addr, lamports)
		return nil
	},
}

var airdropCmd = &cobra.Command{
	Use:   "airdrop <coins>",
	Short: "Request coins from the faucet for the payer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lamports, err := utils.ParseBalance(args[0])
		if err != nil {
			return err
		}
		key, err := driver.LoadKeyFile(keyPath)
		if err != nil {
			return err
		}
		txID, err := client.RequestAirdrop(cmd.Context(), key.Address(), lamports)
		if err != nil {
			return err
		}
		_, err = d.Confirm(cmd.Context(), txID)
		cli.PrintStatus("airdrop", err)
		if err != nil {
			return err
		}
		balance, err := client.Balance(cmd.Context(), key.Address())
		if err != nil {
			return err
		}
		cli.PrintBalance(key.Address(), balance)
		return nil
	},
}
