// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"net"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/utils"
)

// openDatabase returns the pebble database under [config.DataDir] and its
// metrics, or an in-memory database if no directory is configured.
func openDatabase(config Config) (state.Database, prometheus.Gatherer, error) {
	if len(config.DataDir) == 0 {
		return state.NewMemoryDatabase(), nil, nil
	}
	dir, err := utils.InitSubDirectory(config.DataDir, "db")
	if err != nil {
		return nil, nil, err
	}
	db, registry, err := pebble.New(dir, config.PebbleConfig)
	if err != nil {
		return nil, nil, err
	}
	return db, registry, nil
}

// runNode serves the ledger over HTTP until [ctx] is canceled.
func runNode(ctx context.Context, log logging.Logger, config Config, listener net.Listener) error {
	tracer, err := trace.New(&config.TraceConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := tracer.Close(); err != nil {
			log.Warn("failed to close tracer", zap.Error(err))
		}
	}()

	if config.ContinuousProfilerConfig.Enabled {
		continuousProfiler := profiler.NewContinuous(
			config.ContinuousProfilerConfig.Dir,
			config.ContinuousProfilerConfig.Freq,
			config.ContinuousProfilerConfig.MaxNumFiles,
		)
		defer continuousProfiler.Shutdown()
		go continuousProfiler.Dispatch() //nolint:errcheck
	}

	db, dbGatherer, err := openDatabase(config)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	registry := prometheus.NewRegistry()
	gatherers := prometheus.Gatherers{registry}
	if dbGatherer != nil {
		gatherers = append(gatherers, dbGatherer)
	}

	l, err := ledger.New(ctx, log, config.Ledger, db, tracer, registry)
	if err != nil {
		return err
	}

	s := server.New(log, listener, config.HTTPConfig, config.AllowedOrigins, config.ShutdownTimeout)
	if err := rpc.Register(s, rpc.NewJSONRPCServer(log, tracer, l), gatherers); err != nil {
		return err
	}

	log.Info("starting node",
		zap.String("name", consts.Name),
		zap.Stringer("address", listener.Addr()),
		zap.Stringer("faucet", l.Faucet()),
		zap.Stringer("counterProgramID", l.CounterProgramID()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.Run(gctx)
	})
	g.Go(s.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("node stopped", zap.Uint64("height", l.Height()))
	return nil
}
