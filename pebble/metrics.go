// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "pebble"
	metricsInterval = 10 * time.Second
)

// sampled is a gauge refreshed from [pebble.Metrics] every metricsInterval.
type sampled struct {
	gauge prometheus.Gauge
	read  func(*pebble.Metrics) float64
}

type metrics struct {
	stallStart time.Time
	writeStall metric.Averager

	getLatency   metric.Averager
	batchLatency metric.Averager
	batchSize    prometheus.Counter

	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge

	samples []sampled
}

func newSampled(name, help string, read func(*pebble.Metrics) float64) sampled {
	return sampled{
		gauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}),
		read: read,
	}
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	errs := wrappers.Errs{}
	averager := func(name, help string) metric.Averager {
		a, err := metric.NewAverager(namespace+"_"+name, help, r)
		errs.Add(err)
		return a
	}
	m := &metrics{
		writeStall:   averager("write_stall", "time spent waiting for disk write"),
		getLatency:   averager("read_latency", "time spent reading an account record"),
		batchLatency: averager("batch_latency", "time spent applying a block's account writes"),
		batchSize: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_bytes",
			Help:      "bytes written through batches",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions by input level",
		}, []string{"level"}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "number of active compactions",
		}),
		samples: []sampled{
			newSampled("tombstone_count", "approximate count of internal tombstones", func(pm *pebble.Metrics) float64 {
				return float64(pm.Keys.TombstoneCount)
			}),
			newSampled("obsolete_table_size", "bytes in tables no longer referenced by the db", func(pm *pebble.Metrics) float64 {
				return float64(pm.Table.ObsoleteSize)
			}),
			newSampled("obsolete_table_count", "tables no longer referenced by the db", func(pm *pebble.Metrics) float64 {
				return float64(pm.Table.ObsoleteCount)
			}),
			newSampled("zombie_table_size", "bytes in unreferenced tables still held by iterators", func(pm *pebble.Metrics) float64 {
				return float64(pm.Table.ZombieSize)
			}),
			newSampled("zombie_table_count", "unreferenced tables still held by iterators", func(pm *pebble.Metrics) float64 {
				return float64(pm.Table.ZombieCount)
			}),
			newSampled("obsolete_wal_size", "bytes in WAL files no longer needed", func(pm *pebble.Metrics) float64 {
				return float64(pm.WAL.ObsoletePhysicalSize)
			}),
			newSampled("obsolete_wal_count", "WAL files no longer needed", func(pm *pebble.Metrics) float64 {
				return float64(pm.WAL.ObsoleteFiles)
			}),
		},
	}
	errs.Add(
		r.Register(m.batchSize),
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
	)
	for _, s := range m.samples {
		errs.Add(r.Register(s.gauge))
	}
	return r, m, errs.Err
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.activeCompactions.Inc()
	level := "other"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.activeCompactions.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.stallStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.writeStall.Observe(float64(time.Since(db.metrics.stallStart)))
}

func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			pm := db.db.Metrics()
			for _, s := range db.metrics.samples {
				s.gauge.Set(s.read(pm))
			}
		case <-db.closing:
			return
		}
	}
}
