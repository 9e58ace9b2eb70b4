// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
)

var (
	TestPrivateKey = PrivateKey(
		[PrivateKeyLen]byte{
			32, 241, 118, 222, 210, 13, 164, 128, 3, 18,
			109, 215, 176, 215, 168, 171, 194, 181, 4, 11,
			253, 199, 173, 240, 107, 148, 127, 190, 48, 164,
			12, 48, 115, 50, 124, 153, 59, 53, 196, 150, 168,
			143, 151, 235, 222, 128, 136, 161, 9, 40, 139, 85,
			182, 153, 68, 135, 62, 166, 45, 235, 251, 246, 69, 7,
		},
	)
	TestPublicKey = []byte{
		115, 50, 124, 153, 59, 53, 196, 150, 168, 143, 151, 235,
		222, 128, 136, 161, 9, 40, 139, 85, 182, 153, 68, 135,
		62, 166, 45, 235, 251, 246, 69, 7,
	}
)

func TestGeneratePrivateKeyDifferent(t *testing.T) {
	require := require.New(t)
	const numKeysToGenerate int = 10

	m := make(map[PrivateKey]bool)
	for i := 0; i < numKeysToGenerate; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)
		require.NotEqual(EmptyPrivateKey, priv)
		require.False(m[priv], "Duplicate PrivateKey generated")
		m[priv] = true
	}
}

func TestPublicKeyValid(t *testing.T) {
	require := require.New(t)
	var expectedPubKey PublicKey
	copy(expectedPubKey[:], TestPublicKey)
	require.Equal(expectedPubKey, TestPrivateKey.PublicKey())
}

func TestPrivateKeyFromBytes(t *testing.T) {
	require := require.New(t)

	k, err := PrivateKeyFromBytes(TestPrivateKey[:])
	require.NoError(err)
	require.Equal(TestPrivateKey, k)

	corrupted := TestPrivateKey
	corrupted[PrivateKeyLen-1]++
	_, err = PrivateKeyFromBytes(corrupted[:])
	require.ErrorIs(err, ErrInvalidPrivateKey)

	_, err = PrivateKeyFromBytes(TestPrivateKey[:10])
	require.ErrorIs(err, ErrInvalidPrivateKey)
}

func TestAddressRoundTrip(t *testing.T) {
	require := require.New(t)

	addr := TestPrivateKey.Address()
	require.Equal(codec.ED25519ID, addr.TypeID())

	pk, err := PublicKeyFromAddress(addr)
	require.NoError(err)
	require.Equal(TestPrivateKey.PublicKey(), pk)

	_, err = PublicKeyFromAddress(codec.CreateAddress(codec.ProgramID, addr.ID()))
	require.ErrorIs(err, ErrInvalidPublicKey)
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)
	msg := []byte("msg")

	sig := Sign(msg, TestPrivateKey)
	require.True(Verify(msg, TestPrivateKey.PublicKey(), sig))
	require.False(Verify([]byte("other"), TestPrivateKey.PublicKey(), sig))
}

func TestBatchVerify(t *testing.T) {
	for _, size := range []int{1, MinBatchSize, 2 * MinBatchSize} {
		t.Run(strconv.Itoa(size), func(t *testing.T) {
			require := require.New(t)
			batch := NewBatch(size)
			for i := 0; i < size; i++ {
				priv, err := GeneratePrivateKey()
				require.NoError(err)
				msg := []byte(strconv.Itoa(i))
				batch.Add(msg, priv.PublicKey(), Sign(msg, priv))
			}
			require.NoError(batch.VerifyAsync()())
		})
	}

	require := require.New(t)
	batch := NewBatch(1)
	batch.Add([]byte("a"), TestPrivateKey.PublicKey(), Sign([]byte("b"), TestPrivateKey))
	require.ErrorIs(batch.VerifyAsync()(), ErrInvalidSignature)
}
