// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	instructions *prometheus.CounterVec
	txsSucceeded prometheus.Counter
	txsFailed    prometheus.Counter
	feesCharged  prometheus.Counter

	execution metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	execution, err := metric.NewAverager(
		"runtime_execution",
		"time spent executing a transaction",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		execution: execution,
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "instructions_total",
			Help:      "number of executed instructions by result",
		}, []string{"result"}),
		txsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "txs_succeeded",
			Help:      "number of transactions whose instructions all succeeded",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "txs_failed",
			Help:      "number of transactions rolled back by an instruction failure",
		}),
		feesCharged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "fees_charged",
			Help:      "lamports charged as transaction fees",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.instructions),
		r.Register(m.txsSucceeded),
		r.Register(m.txsFailed),
		r.Register(m.feesCharged),
	)
	return m, errs.Err
}
