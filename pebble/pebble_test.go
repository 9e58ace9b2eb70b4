// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/state"
)

const batchSize = 100_000

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func BenchmarkBatchInsertion(b *testing.B) {
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			// Setup DB
			b.StopTimer()
			tdir := b.TempDir()
			cfg := NewDefaultConfig()
			cfg.Sync = sync
			db, _, err := New(tdir, cfg)
			if err != nil {
				b.Fatal(err)
			}

			// Setup keys
			keys := make([][]byte, batchSize)
			for i := 0; i < batchSize; i++ {
				keys[i] = randBytes()
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				batch := db.NewBatch()
				for j := 0; j < batchSize; j++ {
					if err := batch.Put(keys[j], randBytes()); err != nil {
						b.Fatal(err)
					}
				}
				if err := batch.Write(); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			if err := db.Close(); err != nil {
				b.Fatal(err)
			}
			if err := os.RemoveAll(tdir); err != nil {
				b.Fatal(err)
			}
		})
	}
}

func TestDatabase(t *testing.T) {
	require := require.New(t)

	db, registry, err := New(t.TempDir(), NewDefaultConfig())
	require.NoError(err)
	require.NotNil(registry)

	_, err = db.Get([]byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(db.Put([]byte("a"), []byte{1}))
	v, err := db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte{1}, v)

	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("b"), []byte{2}))
	require.NoError(batch.Delete([]byte("a")))

	// Nothing is visible before the batch is written
	v, err = db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte{1}, v)

	require.NoError(batch.Write())
	_, err = db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
	v, err = db.Get([]byte("b"))
	require.NoError(err)
	require.Equal([]byte{2}, v)

	families, err := registry.Gather()
	require.NoError(err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(names["pebble_batch_bytes"])
	require.True(names["pebble_active_compactions"])

	require.NoError(db.Close())
	require.ErrorIs(db.Close(), database.ErrClosed)
}

func TestSimpleMutableCommit(t *testing.T) {
	require := require.New(t)

	db, _, err := New(t.TempDir(), NewDefaultConfig())
	require.NoError(err)
	defer db.Close()

	mu := state.NewSimpleMutable(db)
	require.NoError(mu.Insert(context.Background(), []byte("k"), []byte("v")))
	_, err = db.Get([]byte("k"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(mu.Commit(context.Background()))
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
}
