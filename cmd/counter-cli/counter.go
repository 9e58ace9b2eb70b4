// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/utils"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Create a counter, increment it twice, decrement it once, and show it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensurePayer(cmd); err != nil {
			return err
		}
		s, err := d.Demo(cmd.Context())
		cli.PrintStatus("demo", err)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}initialized:{{/}} %t {{green}}count:{{/}} %d\n", s.IsInitialized, s.Count)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create and initialize a new counter account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensurePayer(cmd); err != nil {
			return err
		}
		counterKey, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return err
		}
		addr, err := d.CreateCounter(cmd.Context(), counterKey)
		cli.PrintStatus("create", err)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}counter:{{/}} %s\n", addr)
		return nil
	},
}

var incrementCmd = &cobra.Command{
	Use:   "increment [counter]",
	Short: "Increment a counter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cli.AddressArg("counter", args)
		if err != nil {
			return err
		}
		if err := ensurePayer(cmd); err != nil {
			return err
		}
		err = d.Increment(cmd.Context(), addr)
		cli.PrintStatus("increment", err)
		return err
	},
}

var decrementCmd = &cobra.Command{
	Use:   "decrement [counter]",
	Short: "Decrement a counter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cli.AddressArg("counter", args)
		if err != nil {
			return err
		}
		if err := ensurePayer(cmd); err != nil {
			return err
		}
		err = d.Decrement(cmd.Context(), addr)
		cli.PrintStatus("decrement", err)
		return err
	},
}

var showCmd = &cobra.Command{
	Use:   "show [counter]",
	Short: "Show the state of a counter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cli.AddressArg("counter", args)
		if err != nil {
			return err
		}
		s, err := d.Count(cmd.Context(), addr)
		if err != nil {
			return err
		}
		cli.PrintCounter(addr, s)
		return nil
	},
}
