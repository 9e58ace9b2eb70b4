// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/driver"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/utils"
)

const defaultEndpoint = "http://127.0.0.1:8899"

var (
	endpoint       string
	keyPath        string
	programID      string
	pollInterval   time.Duration
	confirmTimeout time.Duration
	force          bool

	client *rpc.JSONRPCClient
	d      *driver.Driver

	rootCmd = &cobra.Command{
		Use:        "counter-cli",
		Short:      "Counter program CLI",
		SuggestFor: []string{"counter-cli", "countercli"},
	}
)

func defaultKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "id.json"
	}
	return filepath.Join(home, ".config", "countervm", "id.json")
}

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		demoCmd,
		createCmd,
		incrementCmd,
		decrementCmd,
		showCmd,
		balanceCmd,
		airdropCmd,
		keyCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&endpoint,
		"endpoint",
		defaultEndpoint,
		"node URI",
	)
	rootCmd.PersistentFlags().StringVar(
		&keyPath,
		"key",
		defaultKeyPath(),
		"payer key file (JSON array of 64 bytes)",
	)
	rootCmd.PersistentFlags().StringVar(
		&programID,
		"program",
		ledger.DefaultCounterProgramID.String(),
		"counter program ID",
	)
	rootCmd.PersistentFlags().DurationVar(
		&pollInterval,
		"poll-interval",
		driver.NewConfig().PollInterval,
		"status polling interval",
	)
	rootCmd.PersistentFlags().DurationVar(
		&confirmTimeout,
		"confirm-timeout",
		driver.NewConfig().ConfirmTimeout,
		"how long to wait for a transaction",
	)
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		id, err := codec.ToAddress(programID)
		if err != nil {
			return err
		}
		config := driver.NewConfig()
		config.PollInterval = pollInterval
		config.ConfirmTimeout = confirmTimeout
		client = rpc.NewJSONRPCClient(endpoint)
		d = driver.New(logging.NoLog{}, config, client, id)
		utils.Outf("{{yellow}}endpoint:{{/}} %s\n", endpoint)
		return nil
	}
	rootCmd.SilenceErrors = true

	// key
	generateKeyCmd.PersistentFlags().BoolVar(
		&force,
		"force",
		false,
		"overwrite an existing key without asking",
	)
	keyCmd.AddCommand(
		generateKeyCmd,
		addressKeyCmd,
	)
}

func Execute() error {
	return rootCmd.Execute()
}

// ensurePayer loads the payer key and funds it if needed.
func ensurePayer(cmd *cobra.Command) error {
	payer, err := d.EnsurePayer(cmd.Context(), keyPath)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}payer:{{/}} %s\n", payer.Address())
	return nil
}
