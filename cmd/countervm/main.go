// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/consts"
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:        consts.Name,
		Short:      "Counter ledger node",
		SuggestFor: []string{consts.Name},
		RunE:       runFunc,
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"path to a JSON config overlaid onto the defaults",
	)
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed %v\n", consts.Name, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func runFunc(cmd *cobra.Command, _ []string) error {
	config, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	loggingConfig, err := newLoggingConfig(config.LogDir, config.LogLevel, config.LogDisplay)
	if err != nil {
		return err
	}
	logFactory := newLogFactory(loggingConfig)
	defer logFactory.Close()
	log, err := logFactory.Make(consts.Name)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", config.Address())
	if err != nil {
		return err
	}
	return runNode(ctx, log, config, listener)
}
