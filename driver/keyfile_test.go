// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package driver

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/crypto/ed25519"
)

func TestKeyFileRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "wallet", "id.json")
	key, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	require.NoError(SaveKeyFile(path, key))

	raw, err := os.ReadFile(path)
	require.NoError(err)
	require.Equal(byte('['), raw[0])

	loaded, err := LoadKeyFile(path)
	require.NoError(err)
	require.Equal(key, loaded)
}

func TestLoadKeyFileErrors(t *testing.T) {
	key, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	tampered := key
	tampered[ed25519.PrivateKeyLen-1] ^= 1

	tests := []struct {
		name     string
		contents func(t *testing.T, path string)
		err      error
	}{
		{
			name:     "missing",
			contents: func(*testing.T, string) {},
			err:      fs.ErrNotExist,
		},
		{
			name: "not json",
			contents: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("key"), 0o600))
			},
			err: ErrInvalidKeyFile,
		},
		{
			name: "short",
			contents: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("[1,2,3]"), 0o600))
			},
			err: ErrInvalidKeyFile,
		},
		{
			name: "out of range",
			contents: func(t *testing.T, path string) {
				values := make([]int, ed25519.PrivateKeyLen)
				values[0] = 256
				raw, err := json.Marshal(values)
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(path, raw, 0o600))
			},
			err: ErrInvalidKeyFile,
		},
		{
			name: "mismatched public key",
			contents: func(t *testing.T, path string) {
				require.NoError(t, SaveKeyFile(path, tampered))
			},
			err: ErrInvalidKeyFile,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "id.json")
			tt.contents(t, path)
			_, err := LoadKeyFile(path)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
