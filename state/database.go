// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
)

var _ Database = (*avalancheDatabase)(nil)

// Batch is a set of writes applied atomically by Write.
type Batch interface {
	Put(key []byte, value []byte) error
	Delete(key []byte) error
	Write() error
}

// Database is the persistent store behind account state. Get returns
// [database.ErrNotFound] for missing keys.
type Database interface {
	Get(key []byte) ([]byte, error)
	NewBatch() Batch
	Close() error
}

type avalancheDatabase struct {
	db database.Database
}

// FromAvalanche adapts an avalanchego database.
func FromAvalanche(db database.Database) Database {
	return &avalancheDatabase{db: db}
}

// NewMemoryDatabase returns a Database backed by memdb.
func NewMemoryDatabase() Database {
	return FromAvalanche(memdb.New())
}

func (a *avalancheDatabase) Get(key []byte) ([]byte, error) {
	return a.db.Get(key)
}

func (a *avalancheDatabase) NewBatch() Batch {
	return a.db.NewBatch()
}

func (a *avalancheDatabase) Close() error {
	return a.db.Close()
}

// Reader exposes a Database as [Immutable].
type Reader struct {
	db Database
}

func NewReader(db Database) *Reader {
	return &Reader{db: db}
}

func (r *Reader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}
