// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package driver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/perms"

	"github.com/ava-labs/countervm/crypto/ed25519"
)

const keyFileMode = 0o600

// LoadKeyFile reads a private key stored as a JSON array of its 64 bytes.
func LoadKeyFile(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return ed25519.EmptyPrivateKey, fmt.Errorf("%w: %w", ErrInvalidKeyFile, err)
	}
	if len(values) != ed25519.PrivateKeyLen {
		return ed25519.EmptyPrivateKey, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidKeyFile, ed25519.PrivateKeyLen, len(values))
	}
	b := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 0xff {
			return ed25519.EmptyPrivateKey, fmt.Errorf("%w: byte %d is %d", ErrInvalidKeyFile, i, v)
		}
		b[i] = byte(v)
	}
	key, err := ed25519.PrivateKeyFromBytes(b)
	if err != nil {
		return ed25519.EmptyPrivateKey, fmt.Errorf("%w: %w", ErrInvalidKeyFile, err)
	}
	return key, nil
}

// SaveKeyFile writes [key] to [path], creating parent directories.
func SaveKeyFile(path string, key ed25519.PrivateKey) error {
	if err := os.MkdirAll(filepath.Dir(path), perms.ReadWriteExecute); err != nil {
		return err
	}
	// Arrays, unlike byte slices, encode as a list of numbers.
	raw, err := json.Marshal(key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, keyFileMode)
}
