// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/countervm/executor"
)

var _ executor.Metrics = (*executorMetrics)(nil)

type metrics struct {
	blocksBuilt  prometheus.Counter
	txsSubmitted prometheus.Counter
	txsSucceeded prometheus.Counter
	txsFailed    prometheus.Counter
	txsDropped   prometheus.Counter
	mempoolSize  prometheus.Gauge

	waitSignatures metric.Averager
	buildBlock     metric.Averager

	executor *executorMetrics
}

type executorMetrics struct {
	blocked    prometheus.Counter
	executable prometheus.Counter
}

func (em *executorMetrics) RecordBlocked() {
	em.blocked.Inc()
}

func (em *executorMetrics) RecordExecutable() {
	em.executable.Inc()
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	waitSignatures, err := metric.NewAverager(
		"ledger_wait_signatures",
		"time spent verifying signatures while building a block",
		r,
	)
	if err != nil {
		return nil, err
	}
	buildBlock, err := metric.NewAverager(
		"ledger_build_block",
		"time spent building a block",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		waitSignatures: waitSignatures,
		buildBlock:     buildBlock,
		blocksBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "blocks_built",
			Help:      "number of blocks built",
		}),
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "txs_submitted",
			Help:      "number of transactions accepted into the mempool",
		}),
		txsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "txs_succeeded",
			Help:      "number of included transactions that succeeded",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "txs_failed",
			Help:      "number of included transactions that failed",
		}),
		txsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "txs_dropped",
			Help:      "number of transactions removed from the mempool without execution",
		}),
		mempoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ledger",
			Name:      "mempool_size",
			Help:      "number of transactions waiting in the mempool",
		}),
		executor: &executorMetrics{
			blocked: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ledger",
				Name:      "executor_blocked",
				Help:      "number of transactions that waited on a conflicting transaction",
			}),
			executable: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "ledger",
				Name:      "executor_executable",
				Help:      "number of transactions that executed without waiting",
			}),
		},
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.blocksBuilt),
		r.Register(m.txsSubmitted),
		r.Register(m.txsSucceeded),
		r.Register(m.txsFailed),
		r.Register(m.txsDropped),
		r.Register(m.mempoolSize),
		r.Register(m.executor.blocked),
		r.Register(m.executor.executable),
	)
	return m, errs.Err
}
