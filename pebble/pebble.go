// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/countervm/state"
)

const (
	blockSize      = 64 * units.KiB
	indexBlockSize = 256 * units.KiB
)

var (
	_ state.Database = (*Database)(nil)
	_ state.Batch    = (*batch)(nil)

	filterPolicy = bloom.FilterPolicy(10)
)

type Config struct {
	CacheSize                   int  `json:"cacheSize"`
	BytesPerSync                int  `json:"bytesPerSync"`
	WALBytesPerSync             int  `json:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int  `json:"memTableStopWritesThreshold"`
	MemTableSize                int  `json:"memTableSize"`
	MaxOpenFiles                int  `json:"maxOpenFiles"`
	ConcurrentCompactions       int  `json:"concurrentCompactions"`
	Sync                        bool `json:"sync"`
}

// NewDefaultConfig is sized for a single node holding account records.
func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   256 * units.MiB,
		BytesPerSync:                units.MiB,
		WALBytesPerSync:             units.MiB,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * units.MiB,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       runtime.NumCPU(),
	}
}

// Database is a [state.Database] backed by pebble.
type Database struct {
	db      *pebble.DB
	metrics *metrics

	sync *pebble.WriteOptions

	closeOnce sync.Once
	closing   chan struct{}
	closed    sync.WaitGroup
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// Defaults follow the pebble reference command
	// (cmd/pebble/db.go on the crl-release-23.1 branch).
	d := &Database{closing: make(chan struct{})}
	if cfg.Sync {
		d.sync = pebble.Sync
	} else {
		d.sync = pebble.NoSync
	}
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                uint64(cfg.MemTableSize),
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions: func() int {
			return cfg.ConcurrentCompactions
		},
		Levels: make([]pebble.LevelOptions, 7),
	}
	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = blockSize
		l.IndexBlockSize = indexBlockSize
		l.FilterPolicy = filterPolicy
		l.FilterType = pebble.TableFilter
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction

	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d.metrics = metrics
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}

	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db

	d.closed.Add(1)
	go func() {
		defer d.closed.Done()
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	defer func() {
		db.metrics.getLatency.Observe(float64(time.Since(start)))
	}()

	data, closer, err := db.db.Get(key)
	if err != nil {
		return nil, updateError(err)
	}
	ret := slices.Clone(data)
	return ret, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	return updateError(db.db.Set(key, value, db.sync))
}

func (db *Database) Delete(key []byte) error {
	return updateError(db.db.Delete(key, db.sync))
}

func (db *Database) NewBatch() state.Batch {
	return &batch{d: db, b: db.db.NewBatch()}
}

func (db *Database) Close() error {
	err := database.ErrClosed
	db.closeOnce.Do(func() {
		close(db.closing)
		db.closed.Wait()
		err = updateError(db.db.Close())
	})
	return err
}

type batch struct {
	d *Database
	b *pebble.Batch
}

func (b *batch) Put(key []byte, value []byte) error {
	return b.b.Set(key, value, b.d.sync)
}

func (b *batch) Delete(key []byte) error {
	return b.b.Delete(key, b.d.sync)
}

func (b *batch) Write() error {
	start := time.Now()
	size := b.b.Len()
	if err := b.d.db.Apply(b.b, b.d.sync); err != nil {
		return updateError(err)
	}
	b.d.metrics.batchLatency.Observe(float64(time.Since(start)))
	b.d.metrics.batchSize.Add(float64(size))
	return nil
}

func updateError(err error) error {
	switch {
	case errors.Is(err, pebble.ErrClosed):
		return database.ErrClosed
	case errors.Is(err, pebble.ErrNotFound):
		return database.ErrNotFound
	default:
		return err
	}
}
