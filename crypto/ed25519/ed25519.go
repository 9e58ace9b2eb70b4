// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/hdevalence/ed25519consensus"

	"github.com/ava-labs/countervm/codec"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

// We use the ZIP-215 specification for ed25519 signature
// verification (https://zips.z.cash/zip-0215) because it provides
// an explicit validity criteria for signatures and supports batch
// verification.
const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// PrivateKeySeedLen is defined because ed25519.PrivateKey
	// is formatted as privateKey = seed|publicKey. We use this const
	// to extract the publicKey below.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize

	MinBatchSize = 4
)

var (
	EmptyPublicKey  = PublicKey{}
	EmptyPrivateKey = PrivateKey{}
	EmptySignature  = Signature{}
)

// GeneratePrivateKey returns a Ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// PrivateKeyFromSeed deterministically derives a key from a 32 byte seed.
func PrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != PrivateKeySeedLen {
		return EmptyPrivateKey, fmt.Errorf("%w: seed must be %d bytes", ErrInvalidPrivateKey, PrivateKeySeedLen)
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// PrivateKeyFromBytes checks that b is a well formed private key, i.e.
// the trailing public key matches the seed.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return EmptyPrivateKey, ErrInvalidPrivateKey
	}
	k, err := PrivateKeyFromSeed(b[:PrivateKeySeedLen])
	if err != nil {
		return EmptyPrivateKey, err
	}
	if PrivateKey(b) != k {
		return EmptyPrivateKey, ErrInvalidPrivateKey
	}
	return k, nil
}

// PublicKey returns a PublicKey associated with the Ed25519 PrivateKey p.
// The PublicKey is the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

// Address returns the account address controlled by p.
func (p PrivateKey) Address() codec.Address {
	return p.PublicKey().Address()
}

// Address returns the account address of p.
func (p PublicKey) Address() codec.Address {
	return codec.CreateAddress(codec.ED25519ID, ids.ID(p))
}

// String returns the hex encoding of p.
func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

// PublicKeyFromAddress returns the key embedded in an ED25519 address.
func PublicKeyFromAddress(a codec.Address) (PublicKey, error) {
	if a.TypeID() != codec.ED25519ID {
		return EmptyPublicKey, ErrInvalidPublicKey
	}
	return PublicKey(a.ID()), nil
}

// Sign returns a valid signature for msg using pk.
func Sign(msg []byte, pk PrivateKey) Signature {
	sig := ed25519.Sign(pk[:], msg)
	return Signature(sig)
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

type Batch struct {
	bv ed25519consensus.BatchVerifier
}

func NewBatch(size int) *Batch {
	return &Batch{bv: ed25519consensus.NewPreallocatedBatchVerifier(size)}
}

func (b *Batch) Add(msg []byte, p PublicKey, s Signature) {
	b.bv.Add(p[:], msg, s[:])
}

func (b *Batch) Verify() bool {
	return b.bv.Verify()
}

func (b *Batch) VerifyAsync() func() error {
	return func() error {
		if !b.Verify() {
			return ErrInvalidSignature
		}
		return nil
	}
}
